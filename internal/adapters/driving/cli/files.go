package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wordstats/internal/core/domain"
)

var filesCmd = &cobra.Command{
	Use:   "files [id]",
	Short: "List uploaded files",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFiles,
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a file's text",
	Long:  `Print the content of a file. DOCX files are shown as their extracted text.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var downloadCmd = &cobra.Command{
	Use:   "download <id>",
	Short: "Save a file's original bytes",
	Args:  cobra.ExactArgs(1),
	RunE:  runDownload,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a file and its word counts",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

// downloadOutput is the -o flag of download.
var downloadOutput string

func init() {
	downloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", "",
		`Output path, "-" for stdout (default: the file's name)`)

	rootCmd.AddCommand(filesCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(deleteCmd)
}

func runFiles(cmd *cobra.Command, args []string) error {
	if fileService == nil {
		return errNotConfigured
	}

	var (
		files []domain.File
		err   error
	)
	if len(args) == 1 {
		id, perr := parseFileID(args[0])
		if perr != nil {
			return perr
		}
		files, err = fileService.Filter(cmd.Context(), id)
	} else {
		files, err = fileService.List(cmd.Context())
	}
	if err != nil {
		return fmt.Errorf("failed to list files: %w", err)
	}

	if len(files) == 0 {
		cmd.Println("No files found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tUPLOADED\tCONTENT")
	for i := range files {
		content := "yes"
		if !files[i].HasContent() {
			content = "missing"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			files[i].ID, files[i].Name, files[i].UploadedAt.Local().Format("2006-01-02 15:04:05"), content)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	cmd.Printf("\nTotal: %d files\n", len(files))
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	if fileService == nil {
		return errNotConfigured
	}

	id, err := parseFileID(args[0])
	if err != nil {
		return err
	}

	content, err := fileService.Retrieve(cmd.Context(), id, domain.DispositionInline)
	if err != nil {
		return fmt.Errorf("failed to show file %d: %w", id, err)
	}

	_, err = cmd.OutOrStdout().Write(content.Body)
	return err
}

func runDownload(cmd *cobra.Command, args []string) error {
	if fileService == nil {
		return errNotConfigured
	}

	id, err := parseFileID(args[0])
	if err != nil {
		return err
	}

	content, err := fileService.Retrieve(cmd.Context(), id, domain.DispositionAttachment)
	if err != nil {
		return fmt.Errorf("failed to download file %d: %w", id, err)
	}

	out := downloadOutput
	if out == "-" {
		_, err = cmd.OutOrStdout().Write(content.Body)
		return err
	}
	if out == "" {
		out = filepath.Base(content.File.Name)
	}

	if err := os.WriteFile(out, content.Body, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	cmd.Printf("Saved %s (%d bytes)\n", out, len(content.Body))
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	if fileService == nil {
		return errNotConfigured
	}

	id, err := parseFileID(args[0])
	if err != nil {
		return err
	}

	if err := fileService.Delete(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to delete file %d: %w", id, err)
	}
	cmd.Printf("Deleted file %d\n", id)
	return nil
}
