package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/chatbox-go/internal/ui"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the conversation history",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the conversation history on the server",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

func runHistory(cmd *cobra.Command, args []string) error {
	messages, err := apiClient.History(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetch history: %w", err)
	}

	if len(messages) == 0 {
		fmt.Println("No messages yet.")
		return nil
	}

	for _, m := range messages {
		label := string(ui.CategoryOf(m))
		if ts := ui.ClockTime(m); ts != "" {
			fmt.Printf("[%s] %-5s %s\n", ts, label, m.Text)
		} else {
			fmt.Printf("%-5s %s\n", label, m.Text)
		}
	}
	return nil
}

func runClear(cmd *cobra.Command, args []string) error {
	if err := apiClient.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	fmt.Println("History cleared.")
	return nil
}
