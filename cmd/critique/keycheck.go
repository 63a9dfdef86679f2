package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/bryanwahyu/critique/internal/config"
	"github.com/bryanwahyu/critique/internal/domain/critique"
	"github.com/bryanwahyu/critique/internal/infra/ai"
)

var configPath string

var keycheckCmd = &cobra.Command{
	Use:   "keycheck",
	Short: "Check which provider models the configured keys can use",
	Long: `Send a minimal request to every configured model, in fallback order.

Keys come from the config file and the ANTHROPIC_API_KEY / OPENAI_API_KEY
environment variables. A rejected key skips that provider's other models.`,
	Args: cobra.NoArgs,
	RunE: runKeycheck,
}

func init() {
	keycheckCmd.Flags().StringVar(&configPath, "config", envOr("CONFIG_PATH", "config.yaml"), "Path to config file")
}

func runKeycheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if len(ai.Probers(cfg.AI, nil)) == 0 {
		return fmt.Errorf("no provider key configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	httpClient := &http.Client{Timeout: cfg.AI.Timeout()}
	available := 0
	ai.CheckKeys(ctx, cfg.AI, httpClient, func(r critique.ProbeResult) {
		if r.Status == critique.ProbeAvailable {
			available++
		}
		printProbe(os.Stdout, r)
	})

	if available == 0 {
		return fmt.Errorf("no model is reachable with the configured keys")
	}
	fmt.Fprintf(os.Stdout, "\n%d model(s) available\n", available)
	return nil
}
