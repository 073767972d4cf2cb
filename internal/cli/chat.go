package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/chatbox-go/internal/chat"
	"github.com/raphaelgruber/chatbox-go/internal/ui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive chat session against the server.

The session keeps the conversation on screen, shows a sending indicator
while the server generates a reply, and records a visible error entry when
a send fails.

Examples:
  chatbox chat
  chatbox chat --server http://localhost:8080`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

var sendCmd = &cobra.Command{
	Use:   "send <message>",
	Short: "Send a single message and print the reply",
	Long: `Send one message to the server and print the bot's reply.

Examples:
  chatbox send "What does the uploaded report say about Q3?"`,
	Args: cobra.ExactArgs(1),
	RunE: runSend,
}

// newContainer wires the conversation state machine to the API client. The
// session starts from the server-side history so a restarted client picks up
// where it left off.
func newContainer(ctx context.Context) *chat.Container {
	var opts []chat.Option
	opts = append(opts, chat.WithLogger(logger))
	if history, err := apiClient.History(ctx); err == nil && len(history) > 0 {
		opts = append(opts, chat.WithInitialMessages(history))
	}
	return chat.NewContainer(apiClient.Send, opts...)
}

func runChat(cmd *cobra.Command, args []string) error {
	container := newContainer(cmd.Context())
	return ui.RunChat(container, ui.DefaultTheme)
}

func runSend(cmd *cobra.Command, args []string) error {
	container := newContainer(cmd.Context())

	outcome, err := container.Submit(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("%s: %w", chat.FailedSendText, err)
	}
	if outcome == nil {
		return fmt.Errorf("message is empty")
	}

	fmt.Println(outcome.Text)
	return nil
}
