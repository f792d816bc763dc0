package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"geoplot/internal/tui"
)

var viewCmd = &cobra.Command{
	Use:   "view [FILE...]",
	Short: "Browse datasets interactively on a terminal map",
	Long: `Opens an interactive viewer: pan and zoom the site map, inspect the
nearest site, and browse each dataset's extended header items. With no
arguments the viewer starts with a file picker over the current directory.`,
	RunE: func(_ *cobra.Command, args []string) error {
		var m tea.Model
		if len(args) > 0 {
			m = tui.NewWithPaths(args)
		} else {
			m = tui.New()
		}
		_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
