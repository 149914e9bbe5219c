package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete <card-id>",
	Short: "Delete a scanned contact",
	Long:  `Delete a contact from the collection. Deletion is immediate and irreversible, so it must be confirmed with --yes.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	deleteCmd.Flags().BoolVar(&deleteYes, "yes", false, "Confirm the deletion")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	if !deleteYes {
		return fmt.Errorf("deletion is irreversible; re-run with --yes to confirm")
	}

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

	removed, err := st.Remove(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	if removed {
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "No card with ID %s\n", args[0])
	}
	return nil
}
