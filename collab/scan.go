// ABOUTME: Parsing of AI receipt scans into expense fields
// ABOUTME: Accepts a bare JSON object or one wrapped in a markdown code fence
package collab

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ScanPrompt asks the model to extract one expense from receipt text.
const ScanPrompt = `Extract the expense from this receipt. Reply with only a JSON object with keys
"description", "vendor", "category", "amount" (number) and "date" (YYYY-MM-DD).

Receipt:
`

// ScannedExpense is the model's view of a receipt.
type ScannedExpense struct {
	Description string          `json:"description"`
	Vendor      string          `json:"vendor"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
}

// ParseScan extracts the first JSON object in text.
func ParseScan(text string) (ScannedExpense, error) {
	var scan ScannedExpense

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return scan, fmt.Errorf("%w: no JSON object", ErrMalformedScan)
	}

	if err := json.Unmarshal([]byte(text[start:end+1]), &scan); err != nil {
		return scan, fmt.Errorf("%w: %v", ErrMalformedScan, err)
	}
	if scan.Description == "" && scan.Vendor == "" {
		return scan, fmt.Errorf("%w: missing description", ErrMalformedScan)
	}
	if scan.Amount.IsNegative() {
		return scan, fmt.Errorf("%w: negative amount %s", ErrMalformedScan, scan.Amount)
	}
	return scan, nil
}
