package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nconklindev/shopmigrate/internal/config"
	"github.com/nconklindev/shopmigrate/internal/converter"
	"github.com/nconklindev/shopmigrate/internal/logger"
	"github.com/nconklindev/shopmigrate/internal/report"
	"github.com/nconklindev/shopmigrate/internal/ui"
	"github.com/nconklindev/shopmigrate/internal/verify"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var errVerifyFailed = errors.New("verification found problems")

// globalOptions are the flags shared by every command.
type globalOptions struct {
	configPath string
	vendor     string
	limit      int
	maxVariant int
	outDelim   string
	bom        bool
	logLevel   string
	logFormat  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts globalOptions

	root := &cobra.Command{
		Use:           "shopmigrate",
		Short:         "Convert a store product export into a product import file",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, &opts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "YAML config file (default: built-in settings)")
	pf.StringVar(&opts.vendor, "vendor", "", "Vendor written into every product")
	pf.IntVar(&opts.limit, "limit", 0, "Read at most this many data rows (0 = all)")
	pf.IntVar(&opts.maxVariant, "max-variants", 0, "Rows per output group, 1-90")
	pf.StringVar(&opts.outDelim, "output-delimiter", "", "Output field delimiter")
	pf.BoolVar(&opts.bom, "bom", false, "Prefix the output with a UTF-8 byte order mark")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&opts.logFormat, "log-format", "", "Log format: text or json")

	root.AddCommand(
		newConvertCmd(&opts),
		newPreviewCmd(&opts),
		newVerifyCmd(&opts),
		newTUICmd(&opts),
		newConfigCmd(),
	)
	return root
}

// loadConfig reads the config file, if any, and applies flags the user set.
func loadConfig(cmd *cobra.Command, opts *globalOptions) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("vendor") {
		cfg.Store.Vendor = opts.vendor
	}
	if flags.Changed("limit") {
		cfg.Input.Limit = opts.limit
	}
	if flags.Changed("max-variants") {
		cfg.Grouping.MaxVariants = opts.maxVariant
	}
	if flags.Changed("output-delimiter") {
		cfg.Output.Delimiter = opts.outDelim
	}
	if flags.Changed("bom") {
		cfg.Output.BOM = opts.bom
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = opts.logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newConvertCmd(opts *globalOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Convert an export (CSV or XLSX) into an import CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			log := logger.NewLogger(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)

			input := args[0]
			if output == "" {
				output = converter.OutputPath(input, cfg.Output.Suffix)
			}

			result, err := converter.Convert(input, output, converter.Options{Config: cfg, Logger: log}, nil)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), report.Summary(result))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: <input><suffix>.csv)")
	return cmd
}

func newPreviewCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "preview FILE",
		Short: "Show how the columns of an export would be imported",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			p, err := converter.Inspect(args[0], cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d rows, %s headers\n\n", p.File, p.Rows, p.Language)
			fmt.Fprint(out, report.Preview(p))
			return nil
		},
	}
}

func newVerifyCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "verify FILE",
		Short: "Check an import file for malformed rows, duplicate handles and oversized groups",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			r, err := verify.File(args[0], verify.Options{
				Delimiter:   cfg.OutputComma(),
				MaxVariants: cfg.Grouping.MaxVariants,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			t := report.NewTable()
			t.AddRow("File", r.File)
			t.AddRow("Rows", fmt.Sprint(r.Rows))
			t.AddRow("Products", fmt.Sprint(r.Products))
			t.AddRow("Handles", fmt.Sprint(r.Handles))
			fmt.Fprint(out, t.Render())

			for _, m := range r.Mismatches {
				fmt.Fprintf(out, "line %d: %d fields, header has %d\n", m.Line, m.Got, m.Want)
			}
			for _, d := range r.Duplicates {
				fmt.Fprintf(out, "handle %q used by %d products\n", d.Handle, d.Count)
			}
			for _, o := range r.Oversized {
				fmt.Fprintf(out, "handle %q has %d variant rows (max %d)\n", o.Handle, o.Variants, cfg.Grouping.MaxVariants)
			}

			if !r.OK() {
				return errVerifyFailed
			}
			fmt.Fprintln(out, "OK")
			return nil
		},
	}
}

func newTUICmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Pick and convert a file interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}
}

func runTUI(cmd *cobra.Command, opts *globalOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(ui.InitialModel(cfg, logger.Discard()), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration files",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init PATH",
		Short: "Write the default configuration to PATH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); err == nil {
				return fmt.Errorf("%s already exists", args[0])
			}
			if err := config.Default().SaveConfig(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	})
	return cmd
}
