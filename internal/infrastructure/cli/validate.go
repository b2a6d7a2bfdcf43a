package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/studio/pkg/storage"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the studio document against its schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, _ := os.Getwd()
		repo := storage.NewFilesystemRepository(cwd)

		data, err := os.ReadFile(repo.DocumentPath())
		if err != nil {
			return fmt.Errorf("failed to read studio document: %w", err)
		}
		if err := storage.ValidateDocument(data); err != nil {
			return err
		}

		fmt.Println("studio document is valid")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(validateCmd)
}
