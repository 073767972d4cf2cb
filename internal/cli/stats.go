package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show server request statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print raw JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	snap, err := apiClient.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetch stats: %w", err)
	}

	if statsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	fmt.Printf("Uptime:           %.0fs\n", snap.UptimeSeconds)
	fmt.Printf("Avg response:     %.1fms\n", snap.AverageResponseTimeMs)

	if len(snap.EndpointStats) > 0 {
		fmt.Println("\nEndpoints:")
		endpoints := make([]string, 0, len(snap.EndpointStats))
		for e := range snap.EndpointStats {
			endpoints = append(endpoints, e)
		}
		sort.Strings(endpoints)
		for _, e := range endpoints {
			s := snap.EndpointStats[e]
			fmt.Printf("  %-28s %5d reqs  avg %.1fms  min %dms  max %dms\n",
				e, s.Count, s.AvgTimeMs, s.MinTimeMs, s.MaxTimeMs)
		}
	}

	if len(snap.StatusCodes) > 0 {
		fmt.Println("\nStatus codes:")
		codes := make([]string, 0, len(snap.StatusCodes))
		for c := range snap.StatusCodes {
			codes = append(codes, c)
		}
		sort.Strings(codes)
		for _, c := range codes {
			fmt.Printf("  %s: %d\n", c, snap.StatusCodes[c])
		}
	}

	if len(snap.ErrorCounts) > 0 {
		fmt.Println("\nErrors:")
		classes := make([]string, 0, len(snap.ErrorCounts))
		for c := range snap.ErrorCounts {
			classes = append(classes, c)
		}
		sort.Strings(classes)
		for _, c := range classes {
			fmt.Printf("  %s: %d\n", c, snap.ErrorCounts[c])
		}
	}

	return nil
}
