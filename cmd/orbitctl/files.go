package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/orbitshare/orbit-api/internal/domain/files"
)

var filesCmd = &cobra.Command{
	Use:               "files",
	Short:             "Work with the metadata registry",
	PersistentPreRunE: openRegistries,
}

var filesListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List registered files",
	Args:    cobra.NoArgs,
	RunE:    runFilesList,
}

var filesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a record and its stored files",
	Args:  cobra.ExactArgs(1),
	RunE:  runFilesDelete,
}

func init() {
	filesCmd.AddCommand(filesListCmd)
	filesCmd.AddCommand(filesDeleteCmd)
}

func runFilesList(cmd *cobra.Command, _ []string) error {
	records, err := files.NewService(fileRegistry, objectStore, nil).List(getContext())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, formatMuted("No files registered"))
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tSIZE\tUPLOADED")
	for _, rec := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			rec.ID, rec.Name, rec.MimeType, rec.SizeBytes, rec.UploadedAt.Format(files.TimestampLayout))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(out, formatMuted(fmt.Sprintf("%d file(s)", len(records))))
	return nil
}

func runFilesDelete(cmd *cobra.Command, args []string) error {
	result, err := files.NewService(fileRegistry, objectStore, nil).Delete(getContext(), args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if result.Partial() {
		fmt.Fprintln(out, formatWarning(fmt.Sprintf("Deleted %s but could not remove %v", result.Record.ID, result.Failed)))
		return nil
	}
	fmt.Fprintln(out, formatSuccess("Deleted "+result.Record.ID))
	return nil
}
