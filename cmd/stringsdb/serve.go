package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"stringsdb/internal/config"
	"stringsdb/internal/entries"
	"stringsdb/internal/eventbus"
	"stringsdb/internal/logging"
	"stringsdb/internal/server"
	"stringsdb/internal/store"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the strings REST API",
		Long: `Serve exposes the strings database over HTTP:

  GET  /strings?filter=&sort=&page=&size=   search with pagination
  GET  /strings/{id}                        fetch one entry
  POST /strings                             save {"value": "..."}
  GET  /openapi.yaml                        API description

Entries are stored in SQLite unless --memory is given.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	cmd.Flags().String("addr", "", "listen address (default :8080)")
	cmd.Flags().String("db", "", "SQLite database path (default stringsdb.db)")
	cmd.Flags().Bool("memory", false, "keep entries in memory only")

	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("server.db_path", cmd.Flags().Lookup("db"))
	_ = viper.BindPFlag("server.memory", cmd.Flags().Lookup("memory"))
	return cmd
}

func openStore(cfg *config.Config) (store.StringStore, error) {
	if cfg.Server.Memory {
		return store.NewMemoryStringStore(), nil
	}
	return store.OpenSQLite(cfg.Server.DBPath)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.New(viper.GetBool("verbose"))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	bus := eventbus.New(logger)
	defer bus.Close()

	svc := entries.NewService(st, bus, logger, entries.Options{SanitizeHTML: cfg.Server.SanitizeHTML})
	handler, err := server.NewHandler(svc, logger)
	if err != nil {
		return err
	}
	srv := server.New(cfg.Server.Addr, handler, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	events := make(chan eventbus.DomainEvent, 64)
	enqueue := func(e eventbus.DomainEvent) {
		select {
		case events <- e:
		default:
			logger.Warn("event channel full, dropping event", zap.String("type", string(e.Type())))
		}
	}
	bus.Subscribe(eventbus.EventEntrySaved, enqueue)
	bus.Subscribe(eventbus.EventSearchPerformed, enqueue)
	bus.Subscribe(eventbus.EventError, enqueue)

	logger.Info("starting server",
		zap.String("addr", cfg.Server.Addr),
		zap.Bool("memory", cfg.Server.Memory),
		zap.String("db", cfg.Server.DBPath))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return srv.Run(egCtx)
	})
	eg.Go(func() error {
		logEvents(egCtx, logger.Named("events"), events)
		return nil
	})
	return eg.Wait()
}

// logEvents writes domain events to the log until ctx is done
func logEvents(ctx context.Context, logger *zap.Logger, events <-chan eventbus.DomainEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case e := <-events:
			switch ev := e.(type) {
			case eventbus.EntrySavedEvent:
				logger.Info("entry saved", zap.Int64("id", ev.Entry.ID), zap.Int("length", len([]rune(ev.Entry.Value))))
			case eventbus.SearchPerformedEvent:
				logger.Debug("search performed",
					zap.String("filter", ev.Filter),
					zap.Int("page", ev.Page),
					zap.Int("size", ev.Size),
					zap.Int64("matches", ev.Matches))
			case eventbus.ErrorEvent:
				logger.Warn(ev.Message, zap.Error(ev.Err))
			}
		}
	}
}
