package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"stringsdb/internal/logging"
	"stringsdb/internal/ui/components"
)

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [value]",
		Short: "Save a string to the database",
		Long: `Add saves one string through the REST API. Without an argument it asks for
the value interactively.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAdd,
	}
}

func runAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := logging.New(viper.GetBool("verbose"))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var value string
	if len(args) == 1 {
		value = args[0]
	} else {
		prompt := &survey.Input{Message: "Type your new string:"}
		if err := survey.AskOne(prompt, &value, survey.WithValidator(notBlank)); err != nil {
			return err
		}
	}
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s", components.EmptyValueMessage)
	}

	entry, err := newClient(cfg, logger).SaveString(context.Background(), value)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (id %d)\n", components.SavedMessage, entry.ID)
	return nil
}

// notBlank rejects empty and whitespace-only answers
func notBlank(ans interface{}) error {
	if s, ok := ans.(string); ok && strings.TrimSpace(s) != "" {
		return nil
	}
	return fmt.Errorf("%s", components.EmptyValueMessage)
}
