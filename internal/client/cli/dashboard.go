package cli

import (
	"context"
	"fmt"

	"github.com/avelichko/snipcli/internal/client/aggregate"
	"github.com/avelichko/snipcli/internal/client/models"
)

const topLinksLimit = 5

// Dashboard renders an aggregated account overview. The three sources are
// loaded concurrently and settle independently, so a failing source degrades
// only its own section.
func (a *App) Dashboard(ctx context.Context) error {
	results := aggregate.Run(ctx, map[string]aggregate.Producer{
		"stats": func(ctx context.Context) (any, error) {
			return a.urls.Stats(ctx)
		},
		"top": func(ctx context.Context) (any, error) {
			return a.urls.Top(ctx, topLinksLimit)
		},
		"activity": func(ctx context.Context) (any, error) {
			return a.analytics.Dashboard(ctx)
		},
	})

	printlnFn("=== Account ===")
	if stats, ok := aggregate.Value[*models.UserStats](results, "stats"); ok {
		printlnFn(fmt.Sprintf("Links: %d  Clicks: %d  Tier: %s", stats.TotalURLs, stats.TotalClicks, stats.SubscriptionTier))
	} else {
		printlnFn("Stats unavailable:", results["stats"].Err.Error())
	}

	printlnFn("=== Top links ===")
	if top, ok := aggregate.Value[[]models.URL](results, "top"); ok {
		if len(top) == 0 {
			printlnFn("No links yet.")
		}
		for i, u := range top {
			printlnFn(fmt.Sprintf("%d. %s  %d clicks  (%s)", i+1, u.ShortCode, u.ClickCount, truncate(u.OriginalURL, 50)))
		}
	} else {
		printlnFn("Top links unavailable:", results["top"].Err.Error())
	}

	printlnFn("=== Recent activity ===")
	if act, ok := aggregate.Value[*models.Analytics](results, "activity"); ok {
		printlnFn(fmt.Sprintf("Today: %d  This week: %d  This month: %d", act.ClicksToday, act.ClicksThisWeek, act.ClicksThisMonth))
	} else {
		printlnFn("Activity unavailable:", results["activity"].Err.Error())
	}

	return nil
}
