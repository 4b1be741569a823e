package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kompisbot/kompis"
	"github.com/kompisbot/kompis/internal/config"
	"github.com/kompisbot/kompis/internal/validator"
	"github.com/kompisbot/kompis/pkg/domain"
	"github.com/kompisbot/kompis/pkg/kommun"
	"github.com/kompisbot/kompis/pkg/topics"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the conversation graph for consistency",
	Long:  `Loads every conversation file and reports node references that point nowhere.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		if err := runValidate(configPath); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Conversation graph is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// noopMessenger satisfies the messenger port for offline commands.
type noopMessenger struct{}

func (noopMessenger) Send(context.Context, *domain.Payload) (domain.SentMessage, error) {
	return domain.SentMessage{}, nil
}

func (noopMessenger) Edit(context.Context, *domain.Payload) error { return nil }

func runValidate(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	index, err := kommun.LoadFile(cfg.Flows.Kommuner)
	if err != nil {
		return fmt.Errorf("load municipality index: %w", err)
	}

	// A discarding messenger is enough: validation never sends anything.
	bot, err := kompis.New(noopMessenger{},
		kompis.WithClassifier(topics.NewClassifier()),
		kompis.WithMunicipalityIndex(index),
		kompis.WithFlows(cfg.Flows.Paths...),
		kompis.WithConfirmRejectNode(cfg.Dialog.ConfirmRejectNode),
	)
	if err != nil {
		return err
	}

	issues := validator.Check(bot.Registry())
	if len(issues) > 0 {
		for _, issue := range issues {
			fmt.Println(" -", issue)
		}
		return fmt.Errorf("%d broken reference(s)", len(issues))
	}
	return nil
}
