package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jonathan/cardpulse/internal/observability"
	"github.com/jonathan/cardpulse/internal/types"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List scanned contacts, newest first",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	printer := observability.NewPrinter(cmd.OutOrStdout())
	printer.PrintCollection(st.List())
	return nil
}

func printCard(cmd *cobra.Command, card types.BusinessCard) {
	observability.NewPrinter(cmd.OutOrStdout()).PrintCard(card)
}
