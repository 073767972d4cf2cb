package cli

import (
	"github.com/spf13/cobra"

	"github.com/raphaelgruber/chatbox-go/internal/ui"
	"github.com/raphaelgruber/chatbox-go/internal/upload"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload a PDF to the server",
	Long: `Upload a PDF so its text becomes part of the conversation context.

With a file argument the upload starts immediately and the command exits
when it settles. Without one an interactive view opens where the path can
be typed and retried after validation errors.

Examples:
  chatbox upload report.pdf
  chatbox upload`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUpload,
}

func runUpload(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}

	flow := upload.NewFlow(upload.NewClient(cfg.ServerURL), func(r *upload.Result) {
		logger.Info("upload complete",
			"filename", r.Filename,
			"text_length", r.TextLength,
			"file_size", r.FileSize)
	})

	return ui.RunUpload(flow, path, ui.DefaultTheme)
}
