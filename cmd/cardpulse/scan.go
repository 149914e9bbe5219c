package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/cardpulse/internal/capture"
	"github.com/jonathan/cardpulse/internal/extraction"
	"github.com/jonathan/cardpulse/internal/llm"
	"github.com/jonathan/cardpulse/internal/pipeline"
)

var scanCmd = &cobra.Command{
	Use:   "scan <image-file>",
	Short: "Scan a business card image file",
	Long:  `Read a card photo from disk, extract its contact fields with the vision model, and add the contact to the local collection.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable (or api_key in config) is required")
	}

	img, err := capture.FromFile(args[0])
	if err != nil {
		return err
	}

	ctx := context.Background()
	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	scanner := pipeline.NewScanner(extraction.NewGateway(client, scanTimeout(cfg)), st, successReset(cfg))

	card, err := scanner.Scan(ctx, img)
	if err != nil {
		return fmt.Errorf("%s (%w)", pipeline.UserErrorMessage, err)
	}

	printCard(cmd, card)
	return nil
}
