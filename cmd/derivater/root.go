package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/njchilds90/derivater"
	"github.com/njchilds90/derivater/internal/config"
	"github.com/njchilds90/derivater/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// app carries what the subcommands share once the root command has run.
type app struct {
	configPath string
	logLevel   string
	dev        bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "derivater",
		Short: "Symbolic simplification and differentiation",
		Long: `derivater canonicalizes, differentiates and rewrites symbolic expressions.

Expressions are objects such as {"type": "symbol", "name": "x"}, given inline,
with --file, or on stdin, as JSON or YAML.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Logging.Level = a.logLevel
			}
			if cmd.Flags().Changed("dev") {
				cfg.Logging.Development = a.dev
			}
			logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
			if err != nil {
				return err
			}
			a.cfg, a.logger = cfg, logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&a.dev, "dev", false, "Human-readable development logging")

	rootCmd.AddCommand(
		newSimplifyCmd(a),
		newExpandCmd(a),
		newDerivativeCmd(a),
		newReplaceCmd(a),
		newNumberCmd(a),
		newServeCmd(a),
		newMCPCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// inputFlags are shared by every command that reads one expression.
type inputFlags struct {
	file   string
	format string
	output string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Read the expression from a file ('-' for stdin)")
	cmd.Flags().StringVar(&f.format, "format", "json", "Input format: json or yaml")
	cmd.Flags().StringVarP(&f.output, "output", "o", "text", "Output format: text or json")
}

// readExpr reads the expression from the first argument, --file or stdin,
// in that order.
func (f *inputFlags) readExpr(cmd *cobra.Command, args []string) (derivater.Expr, error) {
	var data []byte
	switch {
	case len(args) > 0:
		data = []byte(args[0])
	case f.file != "" && f.file != "-":
		b, err := os.ReadFile(f.file)
		if err != nil {
			return nil, fmt.Errorf("failed to read expression: %w", err)
		}
		data = b
	default:
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read expression: %w", err)
		}
		data = b
	}
	return parseExpr(data, f.format)
}

func parseExpr(data []byte, format string) (derivater.Expr, error) {
	switch strings.ToLower(format) {
	case "json":
		return derivater.ParseJSON(data)
	case "yaml", "yml":
		return derivater.FromYAML(data)
	}
	return nil, fmt.Errorf("unknown format %q (want json or yaml)", format)
}

func (f *inputFlags) write(cmd *cobra.Command, e derivater.Expr) error {
	switch f.output {
	case "text":
		_, err := fmt.Fprintln(cmd.OutOrStdout(), e.String())
		return err
	case "json":
		s, err := derivater.ToJSON(e)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
		return err
	}
	return fmt.Errorf("unknown output %q (want text or json)", f.output)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of derivater",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "derivater version %s\n", strings.TrimSpace(version))
		},
	}
}
