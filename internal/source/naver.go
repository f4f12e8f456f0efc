package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"newsdeck/internal/news"
)

const naverEndpoint = "https://openapi.naver.com/v1/search/news.json"

// Naver searches news through the Naver Open API. Requires an application
// client id/secret pair.
type Naver struct {
	clientID     string
	clientSecret string
	endpoint     string
	client       *http.Client
}

func NewNaver(clientID, clientSecret string) *Naver {
	return &Naver{
		clientID:     clientID,
		clientSecret: clientSecret,
		endpoint:     naverEndpoint,
		client:       &http.Client{},
	}
}

type naverItem struct {
	Title        string `json:"title"`
	OriginalLink string `json:"originallink"`
	Link         string `json:"link"`
	Description  string `json:"description"`
	PubDate      string `json:"pubDate"`
}

type naverResponse struct {
	Items []naverItem `json:"items"`
}

func (n *Naver) Fetch(ctx context.Context, include string, excludes []string) ([]news.Item, error) {
	q := url.Values{}
	q.Set("query", include)
	q.Set("display", "100")
	q.Set("sort", "date")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Naver-Client-Id", n.clientID)
	req.Header.Set("X-Naver-Client-Secret", n.clientSecret)

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", include, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("searching %q: unexpected status %d", include, resp.StatusCode)
	}

	var body naverResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding search response for %q: %w", include, err)
	}

	items := make([]news.Item, 0, len(body.Items))
	for _, it := range body.Items {
		title := news.Clean(it.Title)
		desc := news.Clean(it.Description)
		if excluded(title, desc, excludes) {
			continue
		}
		link := it.OriginalLink
		if link == "" {
			link = it.Link
		}
		items = append(items, news.Item{
			Title:       title,
			Link:        link,
			Description: desc,
			PublishedAt: news.ParseDate(it.PubDate),
		})
	}
	return items, nil
}
