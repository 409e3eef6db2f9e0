package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/avelichko/snipcli/internal/client/models"
	"github.com/avelichko/snipcli/internal/client/query"
	"github.com/avelichko/snipcli/internal/common"
)

// printPageFn is a test seam for list rendering.
var printPageFn = renderPageTable

// Create shortens a link. The URL and title can be given as arguments
// ("create https://... My title") or entered interactively.
func (a *App) Create(ctx context.Context, args []string) error {
	var original, title string
	var err error

	if len(args) > 0 {
		original = args[0]
		title = strings.Join(args[1:], " ")
	} else {
		original, err = getSimpleText(a.reader, "Enter original URL", os.Stdout)
		if err != nil {
			return err
		}
		title, err = getSimpleText(a.reader, "Enter title (optional)", os.Stdout)
		if err != nil {
			return err
		}
	}

	if original == "" {
		printlnFn("Nothing to shorten.")
		return nil
	}

	u, err := a.urls.Create(ctx, models.CreateURLRequest{OriginalURL: original, Title: title})
	if err != nil {
		printlnFn("Could not create link:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Created %s -> %s", u.ShortURL, u.OriginalURL))
	a.list.Refresh(ctx)
	return nil
}

// List fetches and renders the current page of links.
func (a *App) List(ctx context.Context) error {
	a.list.Refresh(ctx)
	return nil
}

// Search filters the list. The new text takes effect after a short quiet
// period; an empty text clears the filter.
func (a *App) Search(ctx context.Context, text string) error {
	a.list.SetSearchText(ctx, text)
	if text == "" {
		printlnFn("Clearing search...")
	} else {
		printlnFn(fmt.Sprintf("Searching for %q...", text))
	}
	return nil
}

// Sort orders the list by the given field. Repeating the same field flips
// the direction.
func (a *App) Sort(ctx context.Context, field string) error {
	a.list.SetSort(ctx, field)
	d := a.list.Descriptor()
	printlnFn(fmt.Sprintf("Sorting by %s (%s)...", d.Sort, d.Direction))
	return nil
}

// Page jumps to the given page. Out-of-range values are clamped.
func (a *App) Page(ctx context.Context, index int) error {
	a.list.SetPage(ctx, index)
	return nil
}

// NextPage moves one page forward.
func (a *App) NextPage(ctx context.Context) error {
	a.list.SetPage(ctx, a.list.Descriptor().Page+1)
	return nil
}

// PrevPage moves one page back.
func (a *App) PrevPage(ctx context.Context) error {
	a.list.SetPage(ctx, a.list.Descriptor().Page-1)
	return nil
}

// Show prints the full detail of one link.
func (a *App) Show(ctx context.Context, shortCode string) error {
	u, err := a.urls.Get(ctx, shortCode)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			printlnFn(fmt.Sprintf("No link with code %q.", shortCode))
		} else {
			printlnFn("Could not load link:", err.Error())
		}
		return err
	}

	printlnFn(fmt.Sprintf("Short URL:    %s", u.ShortURL))
	printlnFn(fmt.Sprintf("Original URL: %s", u.OriginalURL))
	if u.Title != "" {
		printlnFn(fmt.Sprintf("Title:        %s", u.Title))
	}
	if u.Description != "" {
		printlnFn(fmt.Sprintf("Description:  %s", u.Description))
	}
	printlnFn(fmt.Sprintf("Clicks:       %d", u.ClickCount))
	printlnFn(fmt.Sprintf("Active:       %v", u.IsActive))
	printlnFn(fmt.Sprintf("Created:      %s", u.CreatedAt))
	if u.ExpiresAt != "" {
		printlnFn(fmt.Sprintf("Expires:      %s", u.ExpiresAt))
	}
	return nil
}

// Delete removes a link after a confirmation prompt.
func (a *App) Delete(ctx context.Context, shortCode string) error {
	answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete %s? (y/n)", shortCode), os.Stdout)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") {
		printlnFn("Cancelled.")
		return nil
	}

	if err := a.urls.Delete(ctx, shortCode); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			printlnFn(fmt.Sprintf("No link with code %q.", shortCode))
		} else {
			printlnFn("Could not delete link:", err.Error())
		}
		return err
	}

	printlnFn("Deleted.")
	a.list.Refresh(ctx)
	return nil
}

// renderPage is the list controller's OnUpdate sink.
func (a *App) renderPage(p query.Page[models.URL]) {
	printPageFn(a.list.Descriptor(), p)
}

func renderPageTable(d query.Descriptor, p query.Page[models.URL]) {
	if len(p.Items) == 0 {
		printlnFn("No links found.")
		return
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tORIGINAL\tCLICKS\tCREATED")
	for _, u := range p.Items {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", u.ShortCode, truncate(u.OriginalURL, 50), u.ClickCount, u.CreatedAt)
	}
	w.Flush()
	printlnFn(strings.TrimRight(b.String(), "\n"))
	printlnFn(fmt.Sprintf("Page %d of %d (%d links total)", d.Page+1, p.TotalPages, p.TotalElements))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
