// ABOUTME: Entry point for the echoes workspace MCP server and CLI
// ABOUTME: Loads config, opens the storage backend, wires collaborators and routes commands
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/harperreed/echoes/charm"
	"github.com/harperreed/echoes/cli"
	"github.com/harperreed/echoes/collab"
	"github.com/harperreed/echoes/config"
	"github.com/harperreed/echoes/db"
	"github.com/harperreed/echoes/logging"
	"github.com/harperreed/echoes/models"
	"github.com/harperreed/echoes/persist"
	"github.com/harperreed/echoes/state"
	"go.uber.org/zap"
)

const version = "0.2.0"

type command func(*state.State, []string) error

var commands = map[string]command{
	"add-deal":       cli.AddDealCommand,
	"list-deals":     cli.ListDealsCommand,
	"move-deal":      cli.MoveDealCommand,
	"delete-deal":    cli.DeleteDealCommand,
	"pipeline":       cli.PipelineCommand,
	"add-contact":    cli.AddContactCommand,
	"list-contacts":  cli.ListContactsCommand,
	"delete-contact": cli.DeleteContactCommand,
	"list-companies": cli.ListCompaniesCommand,
	"add-invoice":    cli.AddInvoiceCommand,
	"list-invoices":  cli.ListInvoicesCommand,
	"add-expense":    cli.AddExpenseCommand,
	"summary":        cli.SummaryCommand,
	"modules":        cli.ModulesCommand,
	"toggle-module":  cli.ToggleModuleCommand,
	"theme":          cli.ThemeCommand,
	"accent":         cli.AccentCommand,
	"plan":           cli.PlanCommand,
	"checkout":       cli.CheckoutCommand,
	"integrations":   cli.IntegrationsCommand,
	"connect":        cli.ConnectCommand,
	"disconnect":     cli.DisconnectCommand,
	"trigger":        cli.TriggerCommand,
	"send-email":     cli.SendEmailCommand,
	"ask":            cli.AskCommand,
	"scan":           cli.ScanCommand,
}

func main() {
	showVersion := flag.Bool("version", false, "Show version and exit")
	configDir := flag.String("config", "", "Directory containing config.toml")
	backend := flag.String("backend", "", "Storage backend override (charm, sqlite, redis, memory)")
	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("echoes version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	var searchPaths []string
	if *configDir != "" {
		searchPaths = append(searchPaths, *configDir)
	}
	cfg, err := config.Load(searchPaths...)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *backend != "" {
		cfg.Storage.Backend = *backend
		if err := cfg.Validate(); err != nil {
			log.Fatalf("Invalid config: %v", err)
		}
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger, args[0], args[1:]); err != nil {
		logger.Error("command failed", zap.String("command", args[0]), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger, name string, args []string) error {
	kv, charmClient, closeKV, err := openKV(cfg)
	if err != nil {
		return err
	}
	defer closeKV()

	if name == "sync" {
		if charmClient == nil {
			return fmt.Errorf("sync requires the charm storage backend (current: %s)", cfg.Storage.Backend)
		}
		return charm.SyncCommand(charmClient, args)
	}

	store := persist.New(kv, persist.WithPrefix(cfg.Storage.Prefix), persist.WithLogger(logger))
	opts, err := collaborators(cfg, logger)
	if err != nil {
		return err
	}
	st := state.New(store, append(opts, state.WithLogger(logger))...)
	defer func() {
		if err := st.Flush(); err != nil {
			logger.Warn("flush on exit failed", zap.Error(err))
		}
	}()

	if name == "mcp" {
		logger.Info("starting MCP server", zap.String("backend", cfg.Storage.Backend))
		return cli.MCPCommand(st, version)
	}

	cmd, ok := commands[name]
	if !ok {
		printUsage()
		return fmt.Errorf("unknown command: %s", name)
	}
	return cmd(st, args)
}

// openKV returns the configured backend. The charm client is also returned
// so the sync command can reach it.
func openKV(cfg *config.Config) (persist.KV, *charm.Client, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		database, err := db.OpenDatabase(cfg.Storage.Path)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		return db.NewKV(database), nil, func() { _ = database.Close() }, nil

	case config.BackendRedis:
		r, err := persist.NewRedisKV(persist.RedisConfig{
			Addr:     cfg.Storage.Redis.Addr,
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		return r, nil, func() { _ = r.Close() }, nil

	case config.BackendMemory:
		return persist.NewMemoryKV(), nil, func() {}, nil

	default:
		c, err := charm.Open(charm.FromStorage(cfg.Storage))
		if err != nil {
			return nil, nil, nil, err
		}
		return c, c, func() { _ = c.Close() }, nil
	}
}

// collaborators builds the real transports the config enables. Anything
// left unset falls back to its simulated counterpart inside state.New.
func collaborators(cfg *config.Config, logger *zap.Logger) ([]state.Option, error) {
	var opts []state.Option
	ctx := context.Background()

	if !cfg.AI.Simulate {
		gen, err := collab.NewGeminiGenerator(ctx, cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			return nil, err
		}
		opts = append(opts, state.WithAIGenerator(gen))
	}

	if !cfg.Stripe.Simulate {
		proc, err := collab.NewStripeProcessor(collab.StripeConfig{
			SecretKey:     cfg.Stripe.SecretKey,
			Currency:      cfg.Stripe.Currency,
			PaymentMethod: cfg.Stripe.PaymentMethod,
		}, logger)
		if err != nil {
			return nil, err
		}
		opts = append(opts, state.WithPaymentProcessor(proc))
	}

	if !cfg.Email.Simulate {
		router := &collab.EmailRouter{
			Providers: map[string]collab.EmailSender{
				models.EmailProviderSMTP:     collab.NewSMTPSender(),
				models.EmailProviderSendGrid: collab.NewSendGridSender(cfg.Email.Timeout),
			},
			Default: collab.NewSimulatedEmailSender(),
		}

		token, err := collab.LoadToken(collab.TokenPath())
		if err == nil {
			oauthCfg := collab.NewOAuthConfig(cfg.Google.ClientID, cfg.Google.ClientSecret)
			gmailSender, err := collab.NewGmailSender(ctx, oauthCfg, token)
			if err != nil {
				return nil, err
			}
			router.Providers[models.EmailProviderGmail] = gmailSender
		} else {
			logger.Debug("gmail token unavailable, gmail provider disabled", zap.Error(err))
		}
		opts = append(opts, state.WithEmailSender(router))
	}

	return opts, nil
}

func printUsage() {
	fmt.Printf(`echoes v%s - business workspace

USAGE:
  echoes [global flags] <command> [flags] [args]

GLOBAL FLAGS:
  --version              Show version and exit
  --config <dir>         Directory containing config.toml
  --backend <name>       Storage backend (charm, sqlite, redis, memory)

SERVER:
  echoes mcp             Start MCP server over stdio

CRM:
  add-deal               --title --company [--value --stage --tags]
  list-deals             [--stage --company]
  move-deal              --stage <stage> <id>
  delete-deal <id>
  pipeline               Deal count and value per stage
  add-contact            --name [--email --phone --company --role --status]
  list-contacts          [--query]
  delete-contact <id>
  list-companies

FINANCE:
  add-invoice            --client --amount [--status --date]
  list-invoices          [--status]
  add-expense            --description --amount [--category --vendor --date]
  summary                Revenue, outstanding, expenses and net

WORKSPACE:
  modules                List enabled modules
  toggle-module <name>
  theme [--toggle]
  accent [color]
  plan                   Show plan and AI credits
  checkout <plan>        Switch to Starter, Pro or Business

COMMUNICATION:
  integrations           List integrations
  connect [--name --category] <id>
  disconnect <id>
  trigger [--data JSON] <id> <action>
  send-email             --to [--subject --body]

AI:
  ask <prompt>           Ask the assistant (1 credit on Starter)
  scan [--file path]     Extract an expense from receipt text

SYNC (charm backend):
  sync status|now|wipe|auto

`, version)
}
