package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/clipvocab/internal/llm"
	"github.com/abhisek/clipvocab/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded LLM requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		events, err := queryLLMEvents(cmd, limit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM requests recorded yet.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-10s  %-12s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"ID", "Timestamp", "Purpose", "Provider", "Model", "In", "Out", "Ms", "OK")
		fmt.Fprintln(out, strings.Repeat("─", 110))

		for _, e := range events {
			if purpose != "" && e.Purpose != purpose {
				continue
			}
			ok := "✓"
			if !e.Success {
				ok = "✗ " + truncate(e.ErrorMessage, 40)
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-10s  %-12s  %-28s  %-6d  %-6d  %-7d  %s\n",
				e.ID,
				e.CreatedAt.Local().Format(timeFormat),
				truncate(e.Purpose, 10),
				truncate(e.Provider, 12),
				truncate(e.Model, 28),
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

// usage aggregates token counts for one purpose or model.
type usage struct {
	Name         string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	totalLatency int64
}

func (u *usage) add(e store.LLMRequestRecord) {
	u.Calls++
	if !e.Success {
		u.Failures++
	}
	u.InputTokens += e.InputTokens
	u.OutputTokens += e.OutputTokens
	u.totalLatency += e.LatencyMs
}

func (u *usage) AvgLatencyMs() int64 {
	if u.Calls == 0 {
		return 0
	}
	return u.totalLatency / int64(u.Calls)
}

// aggregateUsage groups events by key, sorted by name.
func aggregateUsage(events []store.LLMRequestRecord, key func(store.LLMRequestRecord) string) []*usage {
	byName := make(map[string]*usage)
	for _, e := range events {
		name := key(e)
		u, ok := byName[name]
		if !ok {
			u = &usage{Name: name}
			byName[name] = u
		}
		u.add(e)
	}
	out := make([]*usage, 0, len(byName))
	for _, u := range byName {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		events, err := queryLLMEvents(cmd, 0)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM usage recorded yet.")
			return nil
		}

		// Usage by purpose.
		fmt.Fprintln(out, "Usage by Purpose")
		fmt.Fprintln(out, strings.Repeat("─", 72))
		fmt.Fprintf(out, "%-16s  %6s  %6s  %10s  %10s  %8s\n",
			"Purpose", "Calls", "Failed", "Input", "Output", "Avg Ms")
		fmt.Fprintln(out, strings.Repeat("─", 72))

		var totalCalls, totalIn, totalOut int
		for _, u := range aggregateUsage(events, func(e store.LLMRequestRecord) string { return e.Purpose }) {
			fmt.Fprintf(out, "%-16s  %6d  %6d  %10d  %10d  %8d\n",
				truncate(u.Name, 16), u.Calls, u.Failures, u.InputTokens, u.OutputTokens, u.AvgLatencyMs())
			totalCalls += u.Calls
			totalIn += u.InputTokens
			totalOut += u.OutputTokens
		}

		fmt.Fprintln(out, strings.Repeat("─", 72))
		fmt.Fprintf(out, "%-16s  %6d  %6s  %10d  %10d\n", "TOTAL", totalCalls, "", totalIn, totalOut)

		// Cost by model.
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Estimated Cost (USD)")
		fmt.Fprintln(out, strings.Repeat("─", 72))
		fmt.Fprintf(out, "%-32s  %6s  %10s  %10s  %10s\n", "Model", "Calls", "Input", "Output", "Cost")
		fmt.Fprintln(out, strings.Repeat("─", 72))

		var totalCost float64
		var unknownModels []string
		for _, u := range aggregateUsage(events, func(e store.LLMRequestRecord) string { return e.Model }) {
			cost, ok := llm.EstimateCost(u.Name, u.InputTokens, u.OutputTokens)
			if !ok {
				unknownModels = append(unknownModels, u.Name)
				fmt.Fprintf(out, "%-32s  %6d  %10d  %10d  %10s\n",
					truncate(u.Name, 32), u.Calls, u.InputTokens, u.OutputTokens, "?")
				continue
			}
			totalCost += cost
			fmt.Fprintf(out, "%-32s  %6d  %10d  %10d  %10s\n",
				truncate(u.Name, 32), u.Calls, u.InputTokens, u.OutputTokens, formatCost(cost))
		}

		fmt.Fprintln(out, strings.Repeat("─", 72))
		label := "TOTAL"
		if len(unknownModels) > 0 {
			label = "TOTAL (partial)"
		}
		fmt.Fprintf(out, "%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(totalCost))

		if len(unknownModels) > 0 {
			fmt.Fprintf(out, "\nPricing unavailable for: %s\n", strings.Join(unknownModels, ", "))
		}
		return nil
	},
}

func queryLLMEvents(cmd *cobra.Command, limit int) ([]store.LLMRequestRecord, error) {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	s, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	events, err := s.LLMEvents().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	return events, nil
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. translate)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
