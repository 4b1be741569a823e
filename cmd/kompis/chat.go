package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kompisbot/kompis/internal/cli"
	"github.com/kompisbot/kompis/internal/config"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the bot on your terminal",
	Long:  `Runs the conversation engine locally with an in-memory session, useful for authoring and debugging conversation files.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")

		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		// The shell always runs against the in-memory backend; the chat
		// lives and dies with the process.
		cfg.Session.Backend = config.BackendMemory

		messenger := cli.NewConsoleMessenger(os.Stdout)
		rt, err := cli.BuildBot(cfg, messenger, nil)
		if err != nil {
			fmt.Printf("Error initializing kompis: %v\n", err)
			os.Exit(1)
		}
		defer rt.Close()

		if err := cli.RunChat(rt.Bot, os.Stdin, os.Stdout); err != nil {
			fmt.Printf("Chat error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
