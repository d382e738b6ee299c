package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spendgenie/genie/internal/api"
	"github.com/spf13/cobra"
)

func analyticsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Show spending analytics",
		Long: `Fetch and print the aggregated spending view.

All filters are optional and combine freely; without any, the full
history is summarized.`,
		RunE: runAnalytics,
	}

	cmd.Flags().Int("year", 0, "filter by year (e.g. 2024)")
	cmd.Flags().Int("month", 0, "filter by month (1-12)")
	cmd.Flags().String("start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "end date (YYYY-MM-DD)")

	return cmd
}

func runAnalytics(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	filter, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}

	client, err := newBackend()
	if err != nil {
		return err
	}

	username, err := ensureLogin(ctx, client)
	if err != nil {
		return err
	}
	slog.Info("Logged in", "username", username)

	result, err := client.Analytics(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to fetch analytics: %w", err)
	}

	summary, err := client.Summary(ctx, filter)
	if err != nil {
		// The narrative summary is a nice-to-have; the numbers stand alone.
		slog.Warn("Failed to fetch summary", "error", err)
	}

	printAnalytics(result, summary)
	return nil
}

// filterFromFlags builds the analytics filter from the command's flags,
// leaving unset flags absent from the request.
func filterFromFlags(cmd *cobra.Command) (api.Filter, error) {
	var filter api.Filter

	if cmd.Flags().Changed("year") {
		year, _ := cmd.Flags().GetInt("year")
		filter.Year = &year
	}
	if cmd.Flags().Changed("month") {
		month, _ := cmd.Flags().GetInt("month")
		if month < 1 || month > 12 {
			return api.Filter{}, fmt.Errorf("month must be between 1 and 12, got %d", month)
		}
		filter.Month = &month
	}
	if start, _ := cmd.Flags().GetString("start"); start != "" {
		t, err := time.Parse("2006-01-02", start)
		if err != nil {
			return api.Filter{}, fmt.Errorf("invalid start date %q: %w", start, err)
		}
		filter.Start = &t
	}
	if end, _ := cmd.Flags().GetString("end"); end != "" {
		t, err := time.Parse("2006-01-02", end)
		if err != nil {
			return api.Filter{}, fmt.Errorf("invalid end date %q: %w", end, err)
		}
		filter.End = &t
	}

	return filter, nil
}

func printAnalytics(result *api.AnalyticsResult, summary string) {
	fmt.Printf("Total spent:    ₹%.2f\n", result.Summary.Total)
	fmt.Printf("Top category:   %s\n", orDash(result.Summary.TopCategory))
	fmt.Printf("Peak day:       %s (₹%.2f)\n", orDash(result.Summary.PeakDay), result.Summary.PeakAmount)

	if summary != "" {
		fmt.Printf("\n%s\n", summary)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	if len(result.Monthly) > 0 {
		fmt.Fprintf(w, "\nMONTH\tAMOUNT\t\n")
		for _, p := range result.Monthly {
			fmt.Fprintf(w, "%s\t₹%.2f\t%s\n", p.MonthYear, p.Amount, bar(p.Amount, maxMonthly(result.Monthly)))
		}
	}

	if len(result.Category) > 0 {
		fmt.Fprintf(w, "\nCATEGORY\tAMOUNT\t\n")
		for _, c := range result.Category {
			fmt.Fprintf(w, "%s\t₹%.2f\t\n", c.Category, c.Amount)
		}
	}

	if len(result.Peak) > 0 {
		fmt.Fprintf(w, "\nPEAK DAY\tAMOUNT\t\n")
		for _, p := range result.Peak {
			fmt.Fprintf(w, "%s\t₹%.2f\t\n", p.Day, p.Amount)
		}
	}

	if len(result.Yearly) > 0 {
		fmt.Fprintf(w, "\nYEAR\tAMOUNT\t\n")
		for _, y := range result.Yearly {
			fmt.Fprintf(w, "%d\t₹%.2f\t\n", y.Year, y.Amount)
		}
	}

	_ = w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func maxMonthly(points []api.MonthlyPoint) float64 {
	var top float64
	for _, p := range points {
		if p.Amount > top {
			top = p.Amount
		}
	}
	return top
}

func bar(amount, top float64) string {
	if top <= 0 {
		return ""
	}
	width := int(amount / top * 30)
	if width < 1 && amount > 0 {
		width = 1
	}
	return strings.Repeat("█", width)
}
