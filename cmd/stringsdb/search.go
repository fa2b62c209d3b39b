package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"stringsdb/internal/api"
	"stringsdb/internal/domain"
	"stringsdb/internal/logging"
	"stringsdb/internal/ui/components"
)

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [filter]",
		Short: "Search strings in the database",
		Long: `Search prints one page of strings containing the filter, sorted by value.
Without a filter every string matches.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSearch,
	}
	cmd.Flags().Int("page", 1, "page to show, starting at 1")
	cmd.Flags().String("format", "table", "output format: table, json or yaml")
	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := logging.New(viper.GetBool("verbose"))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	page, _ := cmd.Flags().GetInt("page")
	if page < 1 {
		return fmt.Errorf("--page must be at least 1")
	}
	format, _ := cmd.Flags().GetString("format")

	var filter string
	if len(args) == 1 {
		filter = args[0]
	}

	result, err := newClient(cfg, logger).SearchStrings(context.Background(), api.SearchParams{
		Filter: filter,
		Sort:   components.ResultSort,
		Page:   page - 1,
		Size:   cfg.PageSize,
	})
	if err != nil {
		return err
	}
	return writePage(cmd.OutOrStdout(), format, result)
}

// writePage prints a result page in the requested format
func writePage(w io.Writer, format string, page domain.Page) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(page); err != nil {
			return err
		}
		return enc.Close()
	case "table":
		if len(page.Content) == 0 {
			_, err := fmt.Fprintln(w, "No results found")
			return err
		}
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("ID", "VALUE")
		for _, e := range page.Content {
			t.Row(strconv.FormatInt(e.ID, 10), e.Value)
		}
		_, err := fmt.Fprintf(w, "%s\npage %d of %d, %d total\n", t.Render(), page.Number+1, page.TotalPages, page.TotalElements)
		return err
	default:
		return fmt.Errorf("unknown format %q (want table, json or yaml)", format)
	}
}
