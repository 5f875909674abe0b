package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rr-sim/rr-sim/sim/workload"
)

// validateCmd checks an input file without simulating it
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Report invalid lines in a process description file",
	Run: func(cmd *cobra.Command, args []string) {
		if inputPath == "" {
			logrus.Fatalf("--input is required")
		}
		res, err := workload.LoadFile(inputPath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := writeValidation(os.Stdout, res); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// writeValidation prints one message per invalid line followed by a count line.
func writeValidation(w io.Writer, res *workload.ParseResult) error {
	for _, l := range res.Invalid {
		if _, err := fmt.Fprintf(w, "line %d: %s\n", l.LineNo, l.Message()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d valid processes, %d invalid lines\n", len(res.Specs), len(res.Invalid))
	return err
}
