package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"tributo/internal/payroll"
	"tributo/internal/service"
)

func newReconcileCmd(root *rootOptions) *cobra.Command {
	var tolerance string

	cmd := &cobra.Command{
		Use:   "reconcile <payroll.json|->",
		Short: "Check stored payslip totals against their line items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			tol, err := payroll.ParseTolerance(tolerance)
			if err != nil {
				return err
			}

			svc := service.NewPayrollService(payroll.NewReconciler(tol), root.logger(cmd))
			res, err := svc.Reconcile(body)
			if err != nil {
				return err
			}
			if err := root.writeJSON(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			if !res.IsValid {
				return fmt.Errorf("payslip does not reconcile: %d error(s)", len(res.Errors))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&tolerance, "tolerance", payroll.DefaultTolerance.String(), "largest accepted difference between stored and computed totals")
	return cmd
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
