package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ndewijer/RemitWise-Backend/internal/api/request"
	"github.com/ndewijer/RemitWise-Backend/internal/validation"
)

var compareCmd = &cobra.Command{
	Use:   "compare AMOUNT FROM TO",
	Short: "Run one comparison and print the result as JSON",
	Example: `  remitwise compare 1000 EUR USD
  remitwise compare 250 gbp inr -v`,
	Args: cobra.ExactArgs(3),
	RunE: runCompare,
}

func runCompare(cmd *cobra.Command, args []string) error {
	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", args[0], err)
	}

	req := request.ComparisonRequest{Amount: amount, FromCurrency: args[1], ToCurrency: args[2]}
	if err := validation.ValidateComparisonRequest(req); err != nil {
		return err
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.services.Comparison.FetchForClient(cmd.Context(), "", req.Amount, req.FromCurrency, req.ToCurrency)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}
