package commands

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/panyam/vecalc/loader"
	"github.com/spf13/cobra"
)

var errCheckFailed = errors.New("check failed")

var checkCmd = &cobra.Command{
	Use:   "check [expression...]",
	Short: "Parses and type checks an expression without running it",
	Long: `The check command compiles an expression (or a --file document, including its
inputs) and lists every problem found. On success it prints the number of
statements and the registers the program reads and writes.`,
	Example: `  vecalc check 'oa = a * b; oA = A * oa'
  vecalc check -f scene.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadDocument(args)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		l := loader.NewLoader(nil)
		l.MaxErrors = 20
		prog, _, err := l.Compile(doc)
		if err != nil {
			for _, p := range loader.Problems(err) {
				color.New(color.FgRed).Fprintln(out, p)
			}
			return errCheckFailed
		}
		color.New(color.FgGreen).Fprintf(out, "ok: %d statement(s)\n", len(prog.Statements))
		fmt.Fprintln(out, prog.Usage)
		return nil
	},
}

func init() {
	AddCommand(checkCmd)
}
