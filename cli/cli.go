// ABOUTME: Shared output and validation helpers for the CLI subcommands
// ABOUTME: Commands print to stdout; tests swap the writer
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	stdout   io.Writer = os.Stdout
	validate           = validator.New()
)

func printf(format string, a ...any) {
	_, _ = fmt.Fprintf(stdout, format, a...)
}

func outln(a ...any) {
	_, _ = fmt.Fprintln(stdout, a...)
}

func newTable(header, rule string) *tabwriter.Writer {
	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, header)
	_, _ = fmt.Fprintln(w, rule)
	return w
}

func parseAmount(flagName, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	// Accept what the tables print back, e.g. "$1,250.00".
	clean := strings.ReplaceAll(strings.TrimPrefix(strings.TrimSpace(s), "$"), ",", "")
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s: %w", flagName, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("--%s must not be negative", flagName)
	}
	return d, nil
}

func dollars(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
