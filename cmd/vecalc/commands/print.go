package commands

import (
	"fmt"

	"github.com/panyam/vecalc/decl"
	"github.com/panyam/vecalc/parser"
	"github.com/panyam/vecalc/runtime"
	"github.com/spf13/cobra"
)

var (
	treeFlag bool
	exprFlag bool
)

var printCmd = &cobra.Command{
	Use:   "print [expression...]",
	Short: "Print the canonical form of an expression",
	Long: `Parses an expression and prints it back fully parenthesized, which is also the
form a program is compared by. With --tree the typed syntax tree is printed
too. With --expr each argument is a bare expression that is evaluated with
all registers at zero.`,
	Example: `  vecalc print 'oa = a + b * c'
  vecalc print --tree 'oA = a < 1 ? A : -A'
  vecalc print --expr 'atan2(1, 0)' 'normalize(vec3f(3, 0, 4))'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if exprFlag {
			return printExprs(cmd, args)
		}
		doc, err := loadDocument(args)
		if err != nil {
			return err
		}
		prog, err := parser.ParseLines(doc.Expression)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, prog)
		if treeFlag {
			fmt.Fprint(out, decl.Dump(prog))
		}
		return nil
	},
}

func printExprs(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	eval := runtime.NewEvaluator(nil)
	if config.HasSeed {
		eval.Rand = runtime.NewLockedRand(config.Seed)
	}
	regs := runtime.NewRegisterFile()
	for _, arg := range args {
		e, err := parser.ParseExpr(arg)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s : %s = %v\n", e, e.Type(), eval.Value(e, regs))
		if treeFlag {
			fmt.Fprint(out, decl.Dump(e))
		}
	}
	return nil
}

func init() {
	printCmd.Flags().BoolVar(&treeFlag, "tree", false, "Also print the syntax tree")
	printCmd.Flags().BoolVar(&exprFlag, "expr", false, "Treat arguments as bare expressions and evaluate them")
	AddCommand(printCmd)
}
