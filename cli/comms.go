// ABOUTME: Integration, email and AI CLI commands
// ABOUTME: Collaborator failures print a message instead of aborting the command
package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/harperreed/echoes/models"
	"github.com/harperreed/echoes/state"
)

// IntegrationsCommand lists integrations and their status.
func IntegrationsCommand(st *state.State, _ []string) error {
	integrations := st.Integrations.List()
	if len(integrations) == 0 {
		outln("No integrations found")
		return nil
	}

	w := newTable("ID\tNAME\tCATEGORY\tSTATUS\tLAST SYNC", "--\t----\t--------\t------\t---------")
	for _, in := range integrations {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", in.ID, in.Name, dashIfEmpty(in.Category), in.Status, dashIfEmpty(in.LastSync))
	}
	return w.Flush()
}

// ConnectCommand connects (or registers) an integration.
func ConnectCommand(st *state.State, args []string) error {
	fs := flag.NewFlagSet("connect", flag.ExitOnError)
	name := fs.String("name", "", "Display name for a new integration")
	category := fs.String("category", "", "Category for a new integration")
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: connect [--name N] [--category C] <id>")
	}

	in := st.ConnectIntegration(models.Integration{ID: fs.Arg(0), Name: *name, Category: *category})
	printf("✓ Connected %s\n", displayName(in))
	return nil
}

// DisconnectCommand disconnects an integration.
func DisconnectCommand(st *state.State, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: disconnect <id>")
	}
	if !st.DisconnectIntegration(args[0]) {
		printf("No integration with ID %s\n", args[0])
		return nil
	}
	printf("✓ Disconnected %s\n", args[0])
	return nil
}

// TriggerCommand fires an action on a connected integration.
func TriggerCommand(st *state.State, args []string) error {
	fs := flag.NewFlagSet("trigger", flag.ExitOnError)
	data := fs.String("data", "", "JSON object payload")
	_ = fs.Parse(args)

	if fs.NArg() != 2 {
		return fmt.Errorf("usage: trigger [--data JSON] <integration> <action>")
	}

	var payload map[string]any
	if *data != "" {
		if err := json.Unmarshal([]byte(*data), &payload); err != nil {
			return fmt.Errorf("--data must be a JSON object: %w", err)
		}
	}

	if !st.TriggerIntegrationAction(context.Background(), fs.Arg(0), fs.Arg(1), payload) {
		printf("✗ %s %s failed\n", fs.Arg(0), fs.Arg(1))
		return nil
	}
	printf("✓ %s %s triggered\n", fs.Arg(0), fs.Arg(1))
	return nil
}

// SendEmailCommand sends an email through the configured provider.
func SendEmailCommand(st *state.State, args []string) error {
	fs := flag.NewFlagSet("send-email", flag.ExitOnError)
	to := fs.String("to", "", "Recipient address (required)")
	subject := fs.String("subject", "", "Subject line")
	body := fs.String("body", "", "Message body")
	_ = fs.Parse(args)

	if *to == "" {
		return fmt.Errorf("--to is required")
	}

	if !st.SendEmail(context.Background(), *to, *subject, *body) {
		printf("✗ Email to %s was not sent\n", *to)
		return nil
	}
	printf("✓ Email sent to %s\n", *to)
	return nil
}

// AskCommand sends a prompt to the AI assistant, spending one credit on
// metered plans.
func AskCommand(st *state.State, args []string) error {
	prompt := strings.TrimSpace(strings.Join(args, " "))
	if prompt == "" {
		return fmt.Errorf("usage: ask <prompt>")
	}

	out, err := st.Generate(context.Background(), prompt)
	if err != nil {
		return err
	}

	outln(out.Text)
	if len(out.Sources) > 0 {
		outln()
		outln("Sources:")
		for _, src := range out.Sources {
			printf("  - %s (%s)\n", src.Title, src.URI)
		}
	}
	return nil
}

// ScanCommand extracts an expense from receipt text, read from a file
// argument or from the remaining words.
func ScanCommand(st *state.State, args []string) error {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	file := fs.String("file", "", "Read receipt text from a file")
	_ = fs.Parse(args)

	receipt := strings.Join(fs.Args(), " ")
	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			return fmt.Errorf("failed to read receipt: %w", err)
		}
		receipt = string(data)
	}
	if strings.TrimSpace(receipt) == "" {
		return fmt.Errorf("usage: scan [--file path] [receipt text]")
	}

	exp, err := st.ScanExpense(context.Background(), receipt)
	if err != nil {
		return err
	}
	printf("✓ Expense recorded: %s %s (%s)\n", exp.Description, dollars(exp.Amount), exp.Category)
	return nil
}

func displayName(in models.Integration) string {
	if in.Name != "" {
		return in.Name
	}
	return in.ID
}
