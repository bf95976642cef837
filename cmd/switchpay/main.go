package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"

	"github.com/switchpay/switchpay-go/internal/api"
	"github.com/switchpay/switchpay-go/internal/config"
	"github.com/switchpay/switchpay-go/internal/credentials"
	"github.com/switchpay/switchpay-go/internal/domain"
	"github.com/switchpay/switchpay-go/internal/metrics"
	"github.com/switchpay/switchpay-go/internal/poller"
	"github.com/switchpay/switchpay-go/internal/service"
	"github.com/switchpay/switchpay-go/internal/storage"
	"github.com/switchpay/switchpay-go/pkg/logger"
)

const usage = `Usage: switchpay <command> [flags]

Commands:
  submit    submit a new transaction
  list      fetch and print the transaction list
  metrics   print client-side KPIs and the backend aggregate
  simulate  post a simulated webhook status update
  export    write the transaction list to a CSV file
  watch     poll the backend and print live KPIs
`

type app struct {
	cfg          *config.Config
	logger       *logger.Logger
	gateway      *api.Client
	transactions *service.TransactionService
	submitter    *service.Submitter
	simulator    *service.WebhookSimulator
	exporter     *service.CSVExporter
}

func newApp() *app {
	cfg := config.Load()
	log := logger.New(cfg.Logging.Level)

	gateway := api.New(cfg.Client.BaseURL, log)
	snapshot := storage.NewSnapshotStore()
	transactions := service.NewTransactionService(gateway, snapshot, log)
	creds := credentials.NewStore(cfg.Client.CredentialsPath)

	refresh := func(ctx context.Context) {
		// Refresh already logs its own failure; the submission stays
		// successful either way.
		_ = transactions.Refresh(ctx)
	}

	return &app{
		cfg:          cfg,
		logger:       log,
		gateway:      gateway,
		transactions: transactions,
		submitter:    service.NewSubmitter(gateway, creds, refresh, log),
		simulator:    service.NewWebhookSimulator(gateway, log),
		exporter:     service.NewCSVExporter(log),
	}
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	a := newApp()
	defer a.logger.Sync()

	ctx := context.Background()

	var err error
	switch os.Args[1] {
	case "submit":
		err = a.runSubmit(ctx, os.Args[2:])
	case "list":
		err = a.runList(ctx)
	case "metrics":
		err = a.runMetrics(ctx)
	case "simulate":
		err = a.runSimulate(ctx, os.Args[2:])
	case "export":
		err = a.runExport(ctx, os.Args[2:])
	case "watch":
		err = a.runWatch(ctx)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) runSubmit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("submit", flag.ExitOnError)
	amountStr := fs.String("amount", "", "transaction amount (required)")
	currency := fs.String("currency", "", "currency code, e.g. EUR (required)")
	country := fs.String("country", "", "country code, e.g. FR (required)")
	device := fs.String("device", "web", "device: web or mobile")
	apiKey := fs.String("api-key", "", "API key (persisted for later runs)")
	fs.Parse(args)

	// The CLI is the input surface: amount must parse to a number here,
	// before anything leaves the process.
	amount, err := strconv.ParseFloat(*amountStr, 64)
	if err != nil {
		return fmt.Errorf("%w: amount %q is not a number", domain.ErrInvalidDraft, *amountStr)
	}

	key := *apiKey
	if key != "" {
		if err := a.submitter.SetAPIKey(ctx, key); err != nil {
			return err
		}
	} else {
		key, err = a.submitter.APIKey(ctx)
		if err != nil {
			return err
		}
		if key == "" {
			return domain.ErrMissingAPIKey
		}
	}

	draft := domain.Draft{
		Amount:   amount,
		Currency: *currency,
		Country:  *country,
		Device:   *device,
	}

	if err := a.submitter.Submit(ctx, &draft, key); err != nil {
		return err
	}

	fmt.Println("Transaction submitted")
	return nil
}

func (a *app) runList(ctx context.Context) error {
	if err := a.transactions.Refresh(ctx); err != nil {
		return err
	}

	printTransactions(a.transactions.List())
	return nil
}

func (a *app) runMetrics(ctx context.Context) error {
	if err := a.transactions.Refresh(ctx); err != nil {
		return err
	}

	printSummary(metrics.Aggregate(a.transactions.List()))

	serverMetrics, err := a.gateway.FetchMetrics(ctx)
	if err != nil {
		// The backend aggregate is best-effort decoration over the
		// client-side KPIs.
		fmt.Printf("\nbackend metrics unavailable: %v\n", err)
		return nil
	}

	fmt.Printf("\nBackend aggregate:\n")
	fmt.Printf("  total transactions: %d\n", serverMetrics.TotalTransactions)
	fmt.Printf("  total volume:       %.2f\n", serverMetrics.TotalVolume)
	for psp, n := range serverMetrics.TransactionsByPSP {
		fmt.Printf("  %-10s %d\n", psp+":", n)
	}
	return nil
}

func (a *app) runSimulate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	txID := fs.String("tx", "", "transaction id (required)")
	fs.Parse(args)

	if *txID == "" {
		return fmt.Errorf("tx is required")
	}

	ack, err := a.simulator.Simulate(ctx, *txID)
	if err != nil {
		return err
	}

	fmt.Printf("Webhook accepted: %s -> %s (run list to see it applied)\n", ack.TxID, ack.Status)
	return nil
}

func (a *app) runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("o", service.DefaultExportFilename, "output file")
	fs.Parse(args)

	if err := a.transactions.Refresh(ctx); err != nil {
		return err
	}

	return a.exporter.ExportFile(ctx, *out, a.transactions.List())
}

func (a *app) runWatch(ctx context.Context) error {
	p := poller.New(a.cfg.Client.PollInterval, func(ctx context.Context) {
		a.transactions.RefreshBestEffort(ctx)
		printSummary(metrics.Aggregate(a.transactions.List()))
	}, a.logger)

	p.Start(ctx)
	defer p.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	return nil
}

func printTransactions(transactions []domain.Transaction) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tAMOUNT\tCURRENCY\tCOUNTRY\tPSP\tSTATUS")
	for _, tx := range transactions {
		id := tx.ID
		if len(id) > 8 {
			id = id[:8]
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			id, tx.Amount, tx.Currency, tx.Country, tx.PSP, tx.Status)
	}
	w.Flush()
}

func printSummary(s metrics.Summary) {
	fmt.Printf("count=%d success=%d fail=%d volume=%.2f success_rate=%d%%\n",
		s.Count, s.SuccessCount, s.FailCount, s.TotalAmount, s.SuccessRatePercent)
}
