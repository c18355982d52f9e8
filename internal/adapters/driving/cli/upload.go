package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <path>...",
	Short: "Upload documents and count their words",
	Long: `Upload one or more plain text or DOCX files. Files ending in .docx are
read as Word documents; everything else must be UTF-8 text.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if uploadService == nil {
		return errNotConfigured
	}

	var errs []error
	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("reading %s: %w", path, err))
			continue
		}

		file, err := uploadService.Upload(cmd.Context(), filepath.Base(path), content)
		if err != nil {
			errs = append(errs, fmt.Errorf("uploading %s: %w", path, err))
			continue
		}
		cmd.Printf("Uploaded %s as file %d\n", file.Name, file.ID)
	}

	return errors.Join(errs...)
}
