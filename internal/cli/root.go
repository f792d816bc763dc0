package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
)

type logWriter struct {
	writer io.Writer
}

func (w *logWriter) Write(bytes []byte) (int, error) {
	return fmt.Fprintf(w.writer, "%s %s", time.Now().Format("2006-01-02 15:04:05"), string(bytes))
}

func init() {
	log.SetFlags(0)
	log.SetOutput(&logWriter{writer: os.Stderr})
}

var rootCmd = &cobra.Command{
	Use:   "geoplot",
	Short: "plot extended CSV datasets and locate them on a map",
	Long: `
geoplot plots the data series of one or more extended CSV files alongside a
map locating each dataset's site, either as a point marker or as a bounding
box, depending on which coordinate metadata the file carries.
`,
	SilenceUsage: true,
}

var Version = "dev"

// Execute runs the CLI. Errors are printed to stderr by cobra and turn into
// a non-zero exit code.
func Execute(version string) {
	Version = version
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
