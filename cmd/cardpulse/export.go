package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cardpulse/internal/vcard"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <card-id>",
	Short: "Export a contact as a vCard file",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output path (defaults to <name>.vcf)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
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

	card, ok := st.Get(args[0])
	if !ok {
		return fmt.Errorf("card not found: %s", args[0])
	}

	out := exportOut
	if out == "" {
		out = vcard.Filename(card)
	}

	if err := os.WriteFile(out, []byte(vcard.Marshal(card)), 0o644); err != nil {
		return fmt.Errorf("failed to write vCard: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
	return nil
}
