package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/mmcdole/gofeed"

	"newsdeck/internal/news"
)

const googleNewsEndpoint = "https://news.google.com/rss/search"

// GoogleNews searches news through the Google News RSS search feed. Needs
// no credentials, which makes it the default backend.
type GoogleNews struct {
	endpoint string
	parser   *gofeed.Parser
}

func NewGoogleNews() *GoogleNews {
	return &GoogleNews{
		endpoint: googleNewsEndpoint,
		parser:   gofeed.NewParser(),
	}
}

func (g *GoogleNews) Fetch(ctx context.Context, include string, excludes []string) ([]news.Item, error) {
	// Exclude terms ride along as query operators, but matches slipping
	// through are still filtered below.
	query := include
	for _, term := range excludes {
		query += " -" + term
	}

	q := url.Values{}
	q.Set("q", query)

	feed, err := g.parser.ParseURLWithContext(g.endpoint+"?"+q.Encode(), ctx)
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", include, err)
	}

	items := make([]news.Item, 0, len(feed.Items))
	for _, it := range feed.Items {
		title := news.Clean(it.Title)
		desc := news.Clean(it.Description)
		if excluded(title, desc, excludes) {
			continue
		}
		published := news.ParseDate(strings.TrimSpace(it.Published))
		if it.PublishedParsed != nil {
			published = *it.PublishedParsed
		}
		items = append(items, news.Item{
			Title:       title,
			Link:        it.Link,
			Description: desc,
			PublishedAt: published,
		})
	}
	return items, nil
}
