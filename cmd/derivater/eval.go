package main

import (
	"fmt"

	"github.com/njchilds90/derivater"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSimplifyCmd(a *app) *cobra.Command {
	var in inputFlags
	cmd := &cobra.Command{
		Use:   "simplify [expr]",
		Short: "Print the canonical form of an expression",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := in.readExpr(cmd, args)
			if err != nil {
				return err
			}
			return in.write(cmd, derivater.Simplify(e))
		},
	}
	in.register(cmd)
	return cmd
}

func newExpandCmd(a *app) *cobra.Command {
	var in inputFlags
	cmd := &cobra.Command{
		Use:   "expand [expr]",
		Short: "Distribute products over sums",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := in.readExpr(cmd, args)
			if err != nil {
				return err
			}
			return in.write(cmd, derivater.Expand(e))
		},
	}
	in.register(cmd)
	return cmd
}

func newDerivativeCmd(a *app) *cobra.Command {
	var (
		in  inputFlags
		wrt string
		n   int
	)
	cmd := &cobra.Command{
		Use:   "derivative [expr]",
		Short: "Differentiate an expression with respect to a symbol",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if n < 0 {
				return fmt.Errorf("--n must be >= 0, got %d", n)
			}
			e, err := in.readExpr(cmd, args)
			if err != nil {
				return err
			}
			a.logger.Debug("differentiating", zap.Stringer("expr", e), zap.String("var", wrt), zap.Int("n", n))
			d, err := derivater.DerivativeN(e, derivater.S(wrt), n)
			if err != nil {
				return err
			}
			return in.write(cmd, d)
		},
	}
	in.register(cmd)
	cmd.Flags().StringVar(&wrt, "var", "x", "Symbol to differentiate with respect to")
	cmd.Flags().IntVarP(&n, "n", "n", 1, "Number of derivatives")
	return cmd
}

func newReplaceCmd(a *app) *cobra.Command {
	var (
		in        inputFlags
		old, repl string
	)
	cmd := &cobra.Command{
		Use:   "replace [expr]",
		Short: "Substitute every occurrence of --old with --new",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := in.readExpr(cmd, args)
			if err != nil {
				return err
			}
			oldExpr, err := parseExpr([]byte(old), in.format)
			if err != nil {
				return fmt.Errorf("--old: %w", err)
			}
			newExpr, err := parseExpr([]byte(repl), in.format)
			if err != nil {
				return fmt.Errorf("--new: %w", err)
			}
			out, err := derivater.Replace(e, oldExpr, newExpr)
			if err != nil {
				return err
			}
			return in.write(cmd, out)
		},
	}
	in.register(cmd)
	cmd.Flags().StringVar(&old, "old", "", "Pattern expression")
	cmd.Flags().StringVar(&repl, "new", "", "Replacement expression")
	_ = cmd.MarkFlagRequired("old")
	_ = cmd.MarkFlagRequired("new")
	return cmd
}

func newNumberCmd(a *app) *cobra.Command {
	var (
		in     inputFlags
		approx bool
	)
	cmd := &cobra.Command{
		Use:   "number [expr]",
		Short: "Evaluate a numeric expression exactly (or approximately with --approx)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := in.readExpr(cmd, args)
			if err != nil {
				return err
			}
			if approx {
				f, err := derivater.Approximate(e)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%.10g\n", f)
				return nil
			}
			r, err := derivater.ToExactNumber(e)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), r.RatString())
			return nil
		},
	}
	in.register(cmd)
	cmd.Flags().BoolVar(&approx, "approx", false, "Evaluate in floating point")
	return cmd
}
