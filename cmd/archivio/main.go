package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/alexanderramin/archivio/internal/cli"
	"github.com/alexanderramin/archivio/internal/config"
	"github.com/alexanderramin/archivio/internal/db"
	"github.com/alexanderramin/archivio/internal/repository"
	"github.com/alexanderramin/archivio/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// configFlag pulls --config out of the arguments before cobra runs, since
// the App has to be wired from the loaded configuration first.
func configFlag(args []string) string {
	fs := pflag.NewFlagSet("archivio", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	path := fs.String("config", "", "")
	_ = fs.Parse(args)
	return *path
}

func run() error {
	cfg, err := config.Load(configFlag(os.Args[1:]))
	if err != nil {
		return err
	}
	logger := cfg.NewLogger(os.Stderr)

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	nodeRepo := repository.NewSQLiteArchiveRepo(database)
	partyRepo := repository.NewSQLitePartyRepo(database)
	generalRepo := repository.NewSQLiteGeneralDocumentRepo(database)
	invoiceRepo := repository.NewSQLiteInvoiceRepo(database)
	indexRepo := repository.NewSQLiteDocumentIndexRepo(database)
	configRepo := repository.NewSQLiteDeadlineConfigRepo(database)
	notificationRepo := repository.NewSQLiteNotificationRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	opts := []service.Option{
		service.WithLogger(logger),
		service.WithObserver(service.NewLogUseCaseObserver(logger)),
	}

	// Wire services
	deadlineSvc := service.NewDeadlineService(indexRepo, configRepo, uow, cfg.Defaults.Thresholds(), opts...)
	notificationSvc := service.NewNotificationService(notificationRepo, deadlineSvc, uow, opts...)
	importSvc := service.NewImportService(uow, opts...)

	app := &cli.App{
		Archive:       service.NewArchiveService(nodeRepo, indexRepo, opts...),
		Documents:     service.NewDocumentService(nodeRepo, partyRepo, generalRepo, invoiceRepo, indexRepo, uow, cfg.SearchLimit, opts...),
		Parties:       service.NewPartyService(partyRepo, opts...),
		Deadlines:     deadlineSvc,
		Notifications: notificationSvc,
		Import:        importSvc,

		ScanNotifications: notificationSvc,
		ImportSeed:        importSvc,

		Config: cfg,
		Logger: logger,
	}

	// Banner and prompts only make sense on a terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Debug("starting", "db", cfg.DBPath, "config", cfg.ConfigFile)

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}
