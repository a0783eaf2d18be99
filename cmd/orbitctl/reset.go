package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/orbitshare/orbit-api/internal/domain/admin"
)

var resetConfirmed bool

var resetCmd = &cobra.Command{
	Use:               "reset",
	Short:             "Clear the metadata registry and delete every stored file",
	Args:              cobra.NoArgs,
	PersistentPreRunE: openRegistries,
	RunE:              runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&resetConfirmed, "yes", false, "Confirm the reset")
}

func runReset(cmd *cobra.Command, _ []string) error {
	if !resetConfirmed {
		return errors.New("refusing to reset without --yes")
	}
	svc := admin.NewService(fileRegistry, galleryRegistry, objectStore, nil)
	result, err := svc.Reset(getContext(), "orbitctl")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, formatSuccess(fmt.Sprintf("Cleared %d record(s), removed %d file(s)", result.RecordsCleared, len(result.Removed))))
	if result.Partial() {
		fmt.Fprintln(out, formatWarning(fmt.Sprintf("Could not remove %v", result.Failed)))
	}
	return nil
}
