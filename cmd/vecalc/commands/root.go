package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/panyam/vecalc/loader"
	"github.com/panyam/vecalc/runtime"
	"github.com/spf13/cobra"
)

var (
	envFile    string
	logLevel   string
	docPath    string
	jsonOutput bool

	// Settings after env and flags are merged, filled before any command runs.
	config Config
)

var rootCmd = &cobra.Command{
	Use:   "vecalc",
	Short: "vecalc compiles and evaluates per-element scalar and vector expressions",
	Long: `vecalc runs small calculator programs such as "oa = a * (0.5 + b) / c" once per
element of their input arrays. Shorter inputs hold their last value, and only
the outputs a program assigns are produced.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "Env file to load settings from")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error or off (default: VECALC_LOG_LEVEL or warn)")
	rootCmd.PersistentFlags().StringVarP(&docPath, "file", "f", "", "Path to a YAML calculator document")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print results as JSON (default: VECALC_FORMAT=json)")
}

// AddCommand allows adding subcommands from other files.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(envFile, cmd.Flags().Changed("env"))
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		if cfg.LogLevel, err = runtime.ParseLogLevel(logLevel); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("json") {
		cfg.JSON = jsonOutput
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed, cfg.HasSeed = seed, true
	}

	runtime.SetLogHandler(NewPrettyHandler(cmd.ErrOrStderr(), PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{Level: slog.LevelDebug},
	}))
	runtime.SetLogLevel(cfg.LogLevel)
	config = cfg
	return nil
}

// loadDocument builds a document from --file, with expression arguments
// replacing the document's expression when given.
func loadDocument(args []string) (*loader.Document, error) {
	doc := &loader.Document{Path: "<command line>"}
	if docPath != "" {
		var err error
		if doc, err = loader.NewLoader(nil).LoadFile(docPath); err != nil {
			return nil, err
		}
	}
	if len(args) > 0 {
		doc.Expression = args
	}
	if len(doc.Expression) == 0 {
		return nil, fmt.Errorf("no expression given: pass it as arguments or with --file")
	}
	return doc, nil
}
