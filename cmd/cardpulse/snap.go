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

var snapCameraURL string

var snapCmd = &cobra.Command{
	Use:   "snap",
	Short: "Capture a card from a live camera stream",
	Long:  `Open the configured MJPEG camera stream, grab one still frame, and scan it. The stream is released once the frame is captured or on any failure.`,
	RunE:  runSnap,
}

func init() {
	snapCmd.Flags().StringVar(&snapCameraURL, "camera-url", "", "MJPEG camera stream URL (overrides config)")
	rootCmd.AddCommand(snapCmd)
}

func runSnap(cmd *cobra.Command, _ []string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}
	if snapCameraURL != "" {
		cfg.CameraURL = snapCameraURL
	}
	if cfg.CameraURL == "" {
		return fmt.Errorf("--camera-url (or camera_url in config) is required")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable (or api_key in config) is required")
	}

	ctx := context.Background()

	cam := capture.NewCamera(cfg.CameraURL)
	if err := cam.Open(ctx); err != nil {
		return err
	}
	// Live mode ends here on every path
	defer func() { _ = cam.Close() }()

	img, err := cam.Snapshot(ctx)
	if err != nil {
		return err
	}

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
