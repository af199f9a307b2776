package cli

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kinemalab/kinema/internal/integration"
)

// Style definitions.
var (
	doctorTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")).
				MarginBottom(1)

	doctorOKStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	doctorWarnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	doctorFailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	doctorKeyStyle  = lipgloss.NewStyle().Faint(true).Width(14)
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the rendering toolchain",
	Long: `Check that the media toolchain is usable: locates ffmpeg, probes its
version, and resolves the codec runtime library directory. These are the
paths exported to recipe subprocesses as KINEMA_FFMPEG and
KINEMA_CODEC_LIBDIR.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		fmt.Println(doctorTitleStyle.Render("kinema doctor"))

		fmt.Printf("%s %s/%s, %d CPUs\n",
			doctorKeyStyle.Render("platform:"),
			runtime.GOOS, runtime.GOARCH, runtime.NumCPU())

		if Config != nil {
			fmt.Printf("%s %dx%d @ %d fps\n",
				doctorKeyStyle.Render("canvas:"),
				Config.Width, Config.Height, Config.FPS)
		}

		disc, err := Codec.Discover(cmd.Context(), Config.FFmpegPath)
		if err != nil {
			if errors.Is(err, integration.ErrFFmpegNotFound) {
				fmt.Printf("%s %s\n",
					doctorKeyStyle.Render("ffmpeg:"),
					doctorFailStyle.Render("not found"))
				return err
			}
			return err
		}

		fmt.Printf("%s %s\n",
			doctorKeyStyle.Render("ffmpeg:"),
			doctorOKStyle.Render(fmt.Sprintf("%s (%s, via %s)", disc.Path, disc.Version, disc.Source)))

		if disc.LibDir != "" {
			fmt.Printf("%s %s\n",
				doctorKeyStyle.Render("codec libs:"),
				doctorOKStyle.Render(disc.LibDir))
		} else {
			fmt.Printf("%s %s\n",
				doctorKeyStyle.Render("codec libs:"),
				doctorWarnStyle.Render("not resolved (pkg-config or libavcodec missing)"))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
