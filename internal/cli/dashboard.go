package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// Dashboard panel indices.
const (
	panelRenders = iota
	panelRecipes
	panelToolchain
	panelCount
)

type dashboardModel struct {
	activePanel int
	width       int
	height      int

	// Data.
	metricsData *metricsSnapshot
	recipes     []recipeSnapshot
	toolchain   *toolchainSnapshot

	// State.
	loading bool
	err     error
}

type metricsSnapshot struct {
	rendersStarted   int
	rendersCompleted int
	rendersFailed    int
	framesRendered   int
	profilesCaptured int
	eventCount       int
}

type recipeSnapshot struct {
	name  string
	alias string
	runs  int
}

type toolchainSnapshot struct {
	ffmpegPath    string
	ffmpegVersion string
	libDir        string
	err           error
}

// dashboardDataMsg carries loaded data back to the model.
type dashboardDataMsg struct {
	metrics   *metricsSnapshot
	recipes   []recipeSnapshot
	toolchain *toolchainSnapshot
	err       error
}

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(1, 2)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			MarginBottom(1)

	countGood = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	countWarn = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	countBad  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newDashboardModel() dashboardModel {
	return dashboardModel{
		activePanel: panelRenders,
		loading:     true,
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return loadDashboardData
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.activePanel = (m.activePanel + 1) % panelCount
			return m, nil
		case "shift+tab":
			m.activePanel = (m.activePanel - 1 + panelCount) % panelCount
			return m, nil
		case "r":
			m.loading = true
			return m, loadDashboardData
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dashboardDataMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.metricsData = msg.metrics
		m.recipes = msg.recipes
		m.toolchain = msg.toolchain
		m.err = nil
		return m, nil
	}

	return m, nil
}

func (m dashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	title := titleStyle.Render(" Kinema Dashboard ")
	help := helpStyle.Render("tab: switch panel | r: refresh | q: quit")

	if m.loading {
		return fmt.Sprintf("%s\n\n  Loading data...\n\n%s", title, help)
	}

	if m.err != nil {
		return fmt.Sprintf("%s\n\n  Error: %s\n\n%s", title, m.err, help)
	}

	rendersPanel := m.renderRendersPanel()
	recipesPanel := m.renderRecipesPanel()
	toolchainPanel := m.renderToolchainPanel()

	// Available width for panels after accounting for margins.
	availableWidth := m.width - 2

	var body string
	if availableWidth > 120 {
		// Horizontal layout: three columns.
		colWidth := availableWidth / 3
		rendersPanel = m.applyPanelStyle(panelRenders, rendersPanel, colWidth-4)
		recipesPanel = m.applyPanelStyle(panelRecipes, recipesPanel, colWidth-4)
		toolchainPanel = m.applyPanelStyle(panelToolchain, toolchainPanel, colWidth-4)
		body = lipgloss.JoinHorizontal(lipgloss.Top, rendersPanel, recipesPanel, toolchainPanel)
	} else {
		// Vertical layout: stacked.
		panelWidth := availableWidth - 4
		if panelWidth < 20 {
			panelWidth = 20
		}
		rendersPanel = m.applyPanelStyle(panelRenders, rendersPanel, panelWidth)
		recipesPanel = m.applyPanelStyle(panelRecipes, recipesPanel, panelWidth)
		toolchainPanel = m.applyPanelStyle(panelToolchain, toolchainPanel, panelWidth)
		body = lipgloss.JoinVertical(lipgloss.Left, rendersPanel, recipesPanel, toolchainPanel)
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s", title, body, help)
}

func (m dashboardModel) applyPanelStyle(panel int, content string, width int) string {
	style := panelStyle
	if m.activePanel == panel {
		style = activePanelStyle
	}
	return style.Width(width).Render(content)
}

func (m dashboardModel) renderRendersPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Renders (7d)"))
	b.WriteString("\n")

	if m.metricsData == nil {
		b.WriteString("  No metrics available.")
		return b.String()
	}

	md := m.metricsData
	b.WriteString(countGood.Render(fmt.Sprintf("  %-14s %d", "completed", md.rendersCompleted)))
	b.WriteString("\n")
	if md.rendersStarted > md.rendersCompleted+md.rendersFailed {
		b.WriteString(countWarn.Render(fmt.Sprintf("  %-14s %d", "running", md.rendersStarted-md.rendersCompleted-md.rendersFailed)))
		b.WriteString("\n")
	}
	if md.rendersFailed > 0 {
		b.WriteString(countBad.Render(fmt.Sprintf("  %-14s %d", "failed", md.rendersFailed)))
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("  %-14s %d\n", "frames", md.framesRendered))
	b.WriteString(fmt.Sprintf("  %-14s %d\n", "profiles", md.profilesCaptured))
	b.WriteString(fmt.Sprintf("\n  Events: %d", md.eventCount))

	return b.String()
}

func (m dashboardModel) renderRecipesPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Recipes"))
	b.WriteString("\n")

	if len(m.recipes) == 0 {
		b.WriteString("  No recipes found.")
		return b.String()
	}

	for _, r := range m.recipes {
		name := r.name
		if r.alias != "" {
			name += " (" + r.alias + ")"
		}
		b.WriteString(fmt.Sprintf("  %-18s %d run(s)\n", name, r.runs))
	}

	return b.String()
}

func (m dashboardModel) renderToolchainPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Toolchain"))
	b.WriteString("\n")

	tc := m.toolchain
	if tc == nil {
		b.WriteString("  Not probed.")
		return b.String()
	}
	if tc.err != nil {
		b.WriteString(countBad.Render("  ffmpeg: " + tc.err.Error()))
		return b.String()
	}

	b.WriteString(fmt.Sprintf("  %-10s %s\n", "ffmpeg", tc.ffmpegPath))
	b.WriteString(fmt.Sprintf("  %-10s %s\n", "version", tc.ffmpegVersion))
	if tc.libDir != "" {
		b.WriteString(fmt.Sprintf("  %-10s %s\n", "codec libs", tc.libDir))
	} else {
		b.WriteString(countWarn.Render("  codec libs unresolved"))
	}

	return b.String()
}

func loadDashboardData() tea.Msg {
	msg := dashboardDataMsg{}

	runCounts := map[string]int{}
	if MetricsCalc != nil {
		metrics, err := MetricsCalc.Calculate(time.Now().UTC().AddDate(0, 0, -7))
		if err != nil {
			msg.err = err
			return msg
		}
		msg.metrics = &metricsSnapshot{
			rendersStarted:   metrics.RendersStarted,
			rendersCompleted: metrics.RendersCompleted,
			rendersFailed:    metrics.RendersFailed,
			framesRendered:   metrics.FramesRendered,
			profilesCaptured: metrics.ProfilesCaptured,
			eventCount:       metrics.EventCount,
		}
		runCounts = metrics.RecipesByName
	}

	if Recipes != nil {
		list, err := Recipes.List(BasePath)
		if err == nil {
			for _, r := range list {
				alias := ""
				if len(r.Aliases) > 0 {
					alias = r.Aliases[0]
				}
				msg.recipes = append(msg.recipes, recipeSnapshot{
					name:  r.Name,
					alias: alias,
					runs:  runCounts[r.Name],
				})
			}
		}
	}

	if Codec != nil && Config != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		disc, err := Codec.Discover(ctx, Config.FFmpegPath)
		tc := &toolchainSnapshot{err: err}
		if err == nil {
			tc.ffmpegPath = disc.Path
			tc.ffmpegVersion = disc.Version
			tc.libDir = disc.LibDir
		}
		msg.toolchain = tc
	}

	return msg
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive render and recipe dashboard",
	Long: `Open an interactive terminal dashboard showing recent render activity,
recipe usage, and the state of the media toolchain.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		p := tea.NewProgram(newDashboardModel(), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
