package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"cryptomarkets-service/internal/application"
	"cryptomarkets-service/internal/bootstrap"
	"cryptomarkets-service/internal/config"
	"cryptomarkets-service/internal/domain"
	"cryptomarkets-service/internal/export"
	"cryptomarkets-service/internal/infrastructure/logx"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const (
	flagPages       = "pages"
	flagPerPage     = "per-page"
	flagVsCurrency  = "vs-currency"
	flagColumns     = "columns"
	flagOutput      = "output"
	flagMaxAttempts = "max-attempts"
	flagProvider    = "provider"
)

const appName = "cryptomarkets-export"

func init() { _ = godotenv.Load() }

func main() {
	if err := newApp(config.Load()).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "\nError: %v\n", err)
		os.Exit(1)
	}
}

func newApp(cfg config.Config) *cli.App {
	app := cli.NewApp()
	app.Name = appName
	app.Usage = "Fetch the market listing once and write it as CSV"
	app.Flags = []cli.Flag{
		&cli.IntFlag{Name: flagPages, Value: cfg.Pages, Usage: "Number of pages to aggregate"},
		&cli.IntFlag{Name: flagPerPage, Value: cfg.PerPage, Usage: "Records per page"},
		&cli.StringFlag{Name: flagVsCurrency, Value: cfg.VsCurrency, Usage: "Quote currency"},
		&cli.StringSliceFlag{Name: flagColumns, Aliases: []string{"c"}, Usage: "Columns to export, all when empty"},
		&cli.StringFlag{Name: flagOutput, Aliases: []string{"o"}, Value: export.FileName, Usage: "Output `FILE`, - for stdout"},
		&cli.IntFlag{Name: flagMaxAttempts, Value: cfg.RetryMaxAttempts, Usage: "Attempts per page before giving up"},
		&cli.StringFlag{Name: flagProvider, Value: cfg.Provider, Usage: "Market data provider: coingecko or fake"},
	}
	app.Action = func(c *cli.Context) error {
		return run(c, cfg)
	}
	app.Commands = []*cli.Command{
		{
			Name:   "columns",
			Usage:  "List the exportable columns",
			Action: listColumns,
		},
	}
	return app
}

func run(c *cli.Context, cfg config.Config) error {
	log := logx.L()
	ctx, cancel := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg.Pages = c.Int(flagPages)
	cfg.PerPage = c.Int(flagPerPage)
	cfg.VsCurrency = c.String(flagVsCurrency)
	cfg.Provider = c.String(flagProvider)
	// A one-shot export must terminate.
	cfg.RetryForever = false
	cfg.RetryMaxAttempts = c.Int(flagMaxAttempts)

	q, err := bootstrap.ProvideMarketQuery(cfg)
	if err != nil {
		return err
	}
	client := bootstrap.ProvideHTTPClient(cfg, bootstrap.ProvideRetryPolicy(cfg), log)
	p, err := bootstrap.ProvideMarketProvider(cfg, client)
	if err != nil {
		return err
	}

	raw, err := application.Aggregate(ctx, p, q, log)
	if err != nil {
		return err
	}
	records := application.Normalize(raw)
	if len(records) == 0 {
		return application.ErrEmptyDataset
	}

	cols := domain.SelectColumns(c.StringSlice(flagColumns))
	out, closeOut, err := openOutput(c.String(flagOutput))
	if err != nil {
		return err
	}
	if err := writeAndClose(out, closeOut, cols, records); err != nil {
		return err
	}
	log.Info("export.done",
		zap.String("key", q.Key()),
		zap.Int("records", len(records)),
		zap.String("output", c.String(flagOutput)),
	)
	return nil
}

// writeAndClose reports a failed close too, since buffered file data may only
// fail to reach disk there.
func writeAndClose(w io.Writer, closeFn func() error, cols []domain.Column, records []domain.MarketRecord) error {
	werr := export.WriteCSV(w, cols, records)
	cerr := closeFn()
	if werr != nil {
		return fmt.Errorf("write csv: %w", werr)
	}
	if cerr != nil {
		return fmt.Errorf("close output: %w", cerr)
	}
	return nil
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func listColumns(_ *cli.Context) error {
	for _, col := range domain.Columns {
		fmt.Println(col.Name)
	}
	return nil
}
