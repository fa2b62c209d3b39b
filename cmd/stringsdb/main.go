// Package main is the entry point for the stringsdb CLI. With no arguments it
// starts the terminal front-end; subcommands add and search strings from the
// shell or run the REST backend.
package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"stringsdb/internal/api"
	"stringsdb/internal/config"
	"stringsdb/internal/eventbus"
	"stringsdb/internal/logging"
	"stringsdb/internal/ui"
)

// version is set at build time via ldflags.
var version = "dev"

// uiLogFile receives the terminal UI's log, since the UI owns the terminal.
const uiLogFile = "stringsdb.log"

// newRootCmd builds the command tree. Flags are bound to the global viper
// instance, so each tree starts from a reset viper.
func newRootCmd() *cobra.Command {
	viper.Reset()
	initViper()

	root := &cobra.Command{
		Use:   "stringsdb",
		Short: "A collection of random strings by random visitors",
		Long: `stringsdb stores short strings submitted by visitors and lets anyone search
them with paginated results.

Run without arguments to open the interactive front-end. The add and search
subcommands talk to the same REST API from the shell, and serve runs the API.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         runUI,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default: $XDG_CONFIG_HOME/stringsdb/config.toml)")
	flags.String("api-url", "", "base URL of the strings REST API")
	flags.Int("page-size", 0, "results per search page")
	flags.BoolP("verbose", "v", false, "enable debug logging")

	_ = viper.BindPFlag("api_url", flags.Lookup("api-url"))
	_ = viper.BindPFlag("page_size", flags.Lookup("page-size"))
	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))

	root.AddCommand(newAddCmd(), newSearchCmd(), newServeCmd(), newVersionCmd())
	return root
}

func initViper() {
	viper.SetEnvPrefix("STRINGSDB")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
}

// loadConfig reads the TOML config file, creating it with defaults when it
// does not exist, then applies flag and environment overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var svc config.ConfigService
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		svc = config.NewConfigServiceAt(path)
	} else {
		svc = config.NewConfigService()
	}

	cfg, err := svc.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", svc.Path(), err)
	}
	applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyOverrides copies every value set by flag or environment onto cfg
func applyOverrides(cfg *config.Config) {
	if viper.IsSet("api_url") {
		cfg.APIURL = viper.GetString("api_url")
	}
	if viper.IsSet("page_size") {
		cfg.PageSize = viper.GetInt("page_size")
	}
	if viper.IsSet("timeout") {
		cfg.Timeout = config.Duration{Duration: viper.GetDuration("timeout")}
	}
	if viper.IsSet("server.addr") {
		cfg.Server.Addr = viper.GetString("server.addr")
	}
	if viper.IsSet("server.db_path") {
		cfg.Server.DBPath = viper.GetString("server.db_path")
	}
	if viper.IsSet("server.memory") {
		cfg.Server.Memory = viper.GetBool("server.memory")
	}
	if viper.IsSet("server.sanitize_html") {
		cfg.Server.SanitizeHTML = viper.GetBool("server.sanitize_html")
	}
}

func newClient(cfg *config.Config, logger *zap.Logger) *api.Client {
	return api.NewClient(cfg.APIURL, cfg.Timeout.Duration, logger)
}

func runUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.NewFile(uiLogFile, viper.GetBool("verbose"))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	bus := eventbus.New(logger)
	defer bus.Close()

	model := ui.NewModel(newClient(cfg, logger), bus, cfg, logger)
	p := tea.NewProgram(model, tea.WithAltScreen())
	model.SetProgram(p)

	// Set up event forwarding to UI
	forward := func(e eventbus.DomainEvent) { p.Send(ui.EventMsg{Event: e}) }
	bus.Subscribe(eventbus.EventEntrySaved, forward)
	bus.Subscribe(eventbus.EventSearchPerformed, forward)
	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.ErrorEvent); ok {
			logger.Warn(ev.Message, zap.Error(ev.Err))
		}
		forward(e)
	})

	logger.Info("starting ui", zap.String("api_url", cfg.APIURL), zap.Int("page_size", cfg.PageSize))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
