package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List uploaded PDF files",
	Long: `List the PDF files currently stored on the server.

Subcommands:
  delete    Remove an uploaded file

Examples:
  chatbox files
  chatbox files delete report.pdf`,
	Args: cobra.NoArgs,
	RunE: runFiles,
}

var filesDeleteCmd = &cobra.Command{
	Use:   "delete <filename>",
	Short: "Remove an uploaded file",
	Args:  cobra.ExactArgs(1),
	RunE:  runFilesDelete,
}

func init() {
	filesCmd.AddCommand(filesDeleteCmd)
}

func runFiles(cmd *cobra.Command, args []string) error {
	files, err := apiClient.ListFiles(cmd.Context())
	if err != nil {
		return fmt.Errorf("list files: %w", err)
	}

	if len(files) == 0 {
		fmt.Println("No files uploaded.")
		return nil
	}

	for _, f := range files {
		fmt.Println(f)
	}
	return nil
}

func runFilesDelete(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := apiClient.DeleteFile(cmd.Context(), name); err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	fmt.Printf("Deleted %s.\n", name)
	return nil
}
