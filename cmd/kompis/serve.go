package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	httpadapter "github.com/kompisbot/kompis/internal/adapters/http"
	"github.com/kompisbot/kompis/internal/cli"
	"github.com/kompisbot/kompis/internal/config"
	"github.com/kompisbot/kompis/pkg/adapters/telegram"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the webhook server",
	Long:  `Starts the bot server: the messaging platform posts updates to /webhook and each one advances its chat's conversation.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		addr, _ := cmd.Flags().GetString("addr")

		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		if cmd.Flags().Changed("addr") {
			cfg.Server.Addr = addr
		}
		if err := cfg.Validate(); err != nil {
			fmt.Printf("Invalid config: %v\n", err)
			os.Exit(1)
		}

		registry := prometheus.NewRegistry()
		messenger := telegram.NewClient(cfg.Telegram.Token)

		rt, err := cli.BuildBot(cfg, messenger, registry)
		if err != nil {
			fmt.Printf("Error initializing kompis: %v\n", err)
			os.Exit(1)
		}
		defer rt.Close()

		handler := httpadapter.NewHandler(rt.Bot, rt.Logger, registry)
		srv := &http.Server{
			Addr:    cfg.Server.Addr,
			Handler: handler,
		}

		serverErrors := make(chan error, 1)
		go func() {
			fmt.Printf("Starting Kompis server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Kompis server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on")
}
