package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/avelichko/snipcli/internal/filex"
)

const defaultAnalyticsDays = 30

// writeFileFn is a test seam for export file writes.
var writeFileFn = os.WriteFile

// Analytics renders click analytics for one link. args: <short-code> [days].
func (a *App) Analytics(ctx context.Context, args []string) error {
	shortCode := args[0]
	days := defaultAnalyticsDays
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n <= 0 {
			printlnFn("Usage: analytics <short-code> [days]")
			return nil
		}
		days = n
	}

	stats, err := a.analytics.URL(ctx, shortCode, days)
	if err != nil {
		printlnFn("Could not load analytics:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Analytics for %s (last %d days)", shortCode, days))
	printlnFn(fmt.Sprintf("Total: %d  Today: %d  Week: %d  Month: %d",
		stats.TotalClicks, stats.ClicksToday, stats.ClicksThisWeek, stats.ClicksThisMonth))

	if len(stats.TopCountries) > 0 {
		printlnFn("Top countries:")
		for _, c := range stats.TopCountries {
			printlnFn(fmt.Sprintf("  %s  %d (%.1f%%)", c.Country, c.Clicks, c.Percentage))
		}
	}
	if len(stats.BrowserStats) > 0 {
		printlnFn("Browsers:")
		for _, b := range stats.BrowserStats {
			printlnFn(fmt.Sprintf("  %s  %d (%.1f%%)", b.Browser, b.Clicks, b.Percentage))
		}
	}
	if len(stats.DeviceStats) > 0 {
		printlnFn("Devices:")
		for _, d := range stats.DeviceStats {
			printlnFn(fmt.Sprintf("  %s  %d (%.1f%%)", d.DeviceType, d.Clicks, d.Percentage))
		}
	}
	return nil
}

// Export downloads an analytics report and saves it under the configured
// export directory. args: <short-code> [format] [days].
func (a *App) Export(ctx context.Context, args []string) error {
	shortCode := args[0]
	format := "csv"
	days := defaultAnalyticsDays

	if len(args) > 1 {
		format = args[1]
	}
	if len(args) > 2 {
		n, err := strconv.Atoi(args[2])
		if err != nil || n <= 0 {
			printlnFn("Usage: export <short-code> [format] [days]")
			return nil
		}
		days = n
	}

	data, err := a.analytics.Export(ctx, shortCode, format, days)
	if err != nil {
		printlnFn("Export failed:", err.Error())
		return err
	}

	dir, err := filex.EnsureSubDir(a.config.ExportDir)
	if err != nil {
		printlnFn("Export failed:", err.Error())
		return err
	}

	name := fmt.Sprintf("%s_%s.%s", shortCode, time.Now().Format("20060102_150405"), format)
	path := filepath.Join(dir, name)
	if err := writeFileFn(path, data, 0o644); err != nil {
		printlnFn("Export failed:", err.Error())
		return err
	}

	printlnFn("Saved", path)
	return nil
}
