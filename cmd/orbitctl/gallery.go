package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var pruneOlderThan time.Duration

var galleryCmd = &cobra.Command{
	Use:               "gallery",
	Aliases:           []string{"galleries"},
	Short:             "Work with shared gallery snapshots",
	PersistentPreRunE: openRegistries,
}

var galleryListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List snapshot ids",
	Args:    cobra.NoArgs,
	RunE:    runGalleryList,
}

var galleryShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a snapshot as JSON without counting a view",
	Args:  cobra.ExactArgs(1),
	RunE:  runGalleryShow,
}

var galleryPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove snapshots older than --older-than (defaults to GALLERY_EXPIRY)",
	Args:  cobra.NoArgs,
	RunE:  runGalleryPrune,
}

func init() {
	galleryPruneCmd.Flags().DurationVar(&pruneOlderThan, "older-than", 0, "Maximum snapshot age, e.g. 720h")

	galleryCmd.AddCommand(galleryListCmd)
	galleryCmd.AddCommand(galleryShowCmd)
	galleryCmd.AddCommand(galleryPruneCmd)
}

func runGalleryList(cmd *cobra.Command, _ []string) error {
	ids, err := galleryRegistry.List(getContext())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, id := range ids {
		fmt.Fprintln(out, id)
	}
	fmt.Fprintln(out, formatMuted(fmt.Sprintf("%d galler(ies)", len(ids))))
	return nil
}

func runGalleryShow(cmd *cobra.Command, args []string) error {
	snap, err := galleryRegistry.GetByID(getContext(), args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

func runGalleryPrune(cmd *cobra.Command, _ []string) error {
	maxAge := pruneOlderThan
	if maxAge <= 0 {
		maxAge = appConfig.GalleryExpiry
	}
	removed, err := galleryRegistry.PruneOlderThan(getContext(), time.Now().Add(-maxAge))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatSuccess(fmt.Sprintf("Pruned %d galler(ies) older than %s", len(removed), maxAge)))
	return nil
}
