package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jmcrae/debitdesk/db"
	"github.com/jmcrae/debitdesk/pkg/cache"
	"github.com/jmcrae/debitdesk/pkg/config"
	"github.com/jmcrae/debitdesk/pkg/http"
	"github.com/jmcrae/debitdesk/pkg/selection"
	"github.com/jmcrae/debitdesk/pkg/services"
	"github.com/jmcrae/debitdesk/pkg/ui"
)

var (
	overridesPath string
	rootCmd       *cobra.Command
)

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Error().Err(err).Msg("Error getting home directory")
		os.Exit(1)
	}

	defaultOverridesPath := filepath.Join(homeDir, ".debitdesk", "overrides.db")

	// Initialize configuration
	if err := config.InitGlobalConfig("config.yaml"); err != nil {
		// Only print a warning if the file doesn't exist, as GetConfig will create it later
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Msg("Failed to load configuration")
			log.Warn().Msg("A default configuration will be used")
		}
	}

	rootCmd = &cobra.Command{
		Use:   "debitdesk",
		Short: "A CLI tool for reconciling Direct Debit mandates and collecting invoices",
		Long: `A CLI tool that links Direct Debit mandates to ledger customers,
tracks invoice selections and submits grouped payment requests.`,
	}

	rootCmd.PersistentFlags().StringVar(&overridesPath, "overrides", defaultOverridesPath, "Path to the local link-override database")

	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive REPL",
		Long:  `Start an interactive REPL for executing commands.`,
		Run: func(cmd *cobra.Command, args []string) {
			runREPL(initReplState(cmd.Context()))
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show the current configuration",
		Long:  `Show the current configuration loaded from config.yaml.`,
		Run: func(cmd *cobra.Command, args []string) {
			showConfig()
		},
	}

	rootCmd.AddCommand(replCmd, configCmd)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

func initReplState(ctx context.Context) *replState {
	database, err := db.New(resolveOverridesPath())
	if err != nil {
		log.Error().Err(err).Msg("Error opening override database")
		os.Exit(1)
	}

	backendOpts, err := config.GetBackendOptions()
	if err != nil {
		log.Error().Err(err).Msg("Error getting backend options from config")
		log.Error().Msg("Please set the backend base URL in config.yaml")
		os.Exit(1)
	}

	client := http.NewBackendClient(backendOpts.BaseURL, backendOpts.Token, config.IsDebug())
	entityCache := cache.New(nil)
	queries := services.NewQueries(client, entityCache)
	sel := selection.NewModel()

	return &replState{
		ctx:       ctx,
		db:        database,
		queries:   queries,
		linker:    services.NewMandateLinker(client, database, queries),
		collector: services.NewPaymentCollector(client, sel, queries),
		selection: sel,
		search:    services.NewCustomerSearch(queries, printSearchResults),
		notices:   services.NewNoticeCenter(),
		view:      ui.Initial(),
	}
}

func resolveOverridesPath() string {
	cfg, err := config.GetConfig()
	if err == nil && cfg.OverridesPath != "" {
		return cfg.OverridesPath
	}
	return overridesPath
}

type replState struct {
	ctx       context.Context
	db        db.DBInterface
	queries   *services.Queries
	linker    *services.MandateLinker
	collector *services.PaymentCollector
	selection *selection.Model
	search    *services.CustomerSearch
	notices   *services.NoticeCenter
	view      ui.State
}

func runREPL(state *replState) {
	fmt.Println("Welcome to the debitdesk REPL!")
	fmt.Println("Type 'exit' or 'quit' to exit, 'help' for commands.")
	fmt.Println()

	// Close the database once you are done
	defer state.db.Close()

	if err := state.db.Initialize(); err != nil {
		log.Error().Err(err).Msg("Error initializing override database")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(state.ctx)
	defer cancel()
	state.queries.StartStatsRefresh(ctx)
	state.queries.Cache().StartSweeper(ctx, cache.DefaultSweepInterval)

	// Start REPL
	scanner := bufio.NewScanner(os.Stdin)

	for {
		state.printNotices()
		fmt.Printf("[%s]> ", state.view.Tab)

		if !scanner.Scan() {
			break
		}

		line := scanner.Text()
		trimmedLine := strings.TrimSpace(line)

		if trimmedLine == "" {
			continue
		}

		if trimmedLine == "exit" || trimmedLine == "quit" {
			break
		}

		if trimmedLine == "help" {
			printHelp()
			continue
		}

		if trimmedLine == "config" {
			showConfig()
			continue
		}

		state.dispatch(trimmedLine)
	}

	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("Error reading input")
	}
}

func (r *replState) dispatch(line string) {
	switch {
	case strings.HasPrefix(line, "tab"):
		r.switchTab(line)
	case strings.HasPrefix(line, "invoices"):
		r.listInvoices(line)
	case strings.HasPrefix(line, "select-all"):
		r.selectAll()
	case strings.HasPrefix(line, "select"):
		r.toggleSelection(line)
	case strings.HasPrefix(line, "clear"):
		r.clearSelection()
	case strings.HasPrefix(line, "batch"):
		r.previewBatch()
	case strings.HasPrefix(line, "submit"):
		r.submitBatch()
	case strings.HasPrefix(line, "mandates"):
		r.listMandates(line)
	case strings.HasPrefix(line, "suggest"):
		r.suggestLinks()
	case strings.HasPrefix(line, "link"):
		r.linkMandate(line)
	case strings.HasPrefix(line, "unlink"):
		r.unlinkMandate(line)
	case strings.HasPrefix(line, "sync-statuses"):
		r.syncStatuses()
	case strings.HasPrefix(line, "sync"):
		r.syncMandates()
	case strings.HasPrefix(line, "payments"):
		r.listPayments(line)
	case strings.HasPrefix(line, "cancel"):
		r.cancelPayment(line)
	case strings.HasPrefix(line, "stats"):
		r.showStats()
	case strings.HasPrefix(line, "customers"):
		r.listCustomers()
	case strings.HasPrefix(line, "search"):
		r.searchCustomers(line)
	default:
		fmt.Println("Unknown command. Type 'help' for a list of commands.")
	}
}

func (r *replState) printNotices() {
	for _, notice := range r.notices.Active() {
		prefix := "OK"
		if notice.Level == services.NoticeError {
			prefix = "ERROR"
		}
		fmt.Printf("  [%s] %s\n", prefix, notice.Message)
	}
}

func (r *replState) switchTab(line string) {
	parts := strings.Fields(line)
	if len(parts) < 2 {
		fmt.Println("Usage: tab <invoices|mandates|payments>")
		return
	}
	switch parts[1] {
	case "invoices", "i":
		r.view = r.view.SwitchTab(ui.TabInvoices)
	case "mandates", "m":
		r.view = r.view.SwitchTab(ui.TabMandates)
	case "payments", "p":
		r.view = r.view.SwitchTab(ui.TabPayments)
	default:
		fmt.Println("Unknown tab. Available tabs: invoices, mandates, payments")
	}
}

func printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  tab <invoices|mandates|payments>  switch view")
	fmt.Println("  invoices [date]                   list due invoices (optionally for an advance date)")
	fmt.Println("  select <account[:reference]>      toggle an invoice or a whole customer")
	fmt.Println("  select-all                        select every invoice with a mandate")
	fmt.Println("  clear                             clear the selection")
	fmt.Println("  batch                             preview the grouped payment requests")
	fmt.Println("  submit                            submit the selected invoices for collection")
	fmt.Println("  mandates [unlinked]               list mandates")
	fmt.Println("  suggest                           propose customers for unlinked mandates")
	fmt.Println("  link <mandateId> <account>        link a mandate to a ledger account")
	fmt.Println("  unlink <mandateId>                remove a mandate link")
	fmt.Println("  sync                              sync mandates from the provider")
	fmt.Println("  customers                         list eligible customers")
	fmt.Println("  search <name>                     search eligible customers by name")
	fmt.Println("  payments [status]                 list payment requests")
	fmt.Println("  cancel <requestId>                cancel a payment request")
	fmt.Println("  sync-statuses                     pull payment status updates")
	fmt.Println("  stats                             show collection stats")
	fmt.Println("  config                            show the current configuration")
}

func showConfig() {
	cfg, err := config.GetConfig()
	if err != nil {
		log.Error().Err(err).Msg("Error loading configuration")
		return
	}

	fmt.Println("Current configuration:")
	fmt.Printf("  Backend URL: %s\n", cfg.Backend.BaseURL)
	if cfg.Backend.Token != "" {
		fmt.Println("  Token: (set)")
	} else {
		fmt.Println("  Token: (not set)")
	}
	fmt.Printf("  Currency: %s\n", cfg.Currency)
	fmt.Printf("  Debug: %t\n", cfg.Debug)
}
