package symbolsource

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"tradeScout/internal/ports"
)

const defaultConstituentsURL = "https://en.wikipedia.org/wiki/List_of_S%26P_500_companies"

// SP500Source scrapes the S&P 500 constituents table from Wikipedia.
type SP500Source struct {
	url        string
	httpClient *http.Client
	logger     ports.Logger
}

// SP500Config holds configuration for the S&P 500 source.
type SP500Config struct {
	URL        string        // Defaults to the Wikipedia constituents page
	Timeout    time.Duration // Defaults to 30s; ignored when HTTPClient is set
	HTTPClient *http.Client
	Logger     ports.Logger
}

// NewSP500 creates the Wikipedia-backed S&P 500 source.
func NewSP500(cfg SP500Config) (*SP500Source, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for S&P 500 source")
	}
	pageURL := cfg.URL
	if pageURL == "" {
		pageURL = defaultConstituentsURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &SP500Source{url: pageURL, httpClient: httpClient, logger: cfg.Logger}, nil
}

// Symbols downloads the constituents page and extracts the ticker column in
// page order.
func (s *SP500Source) Symbols(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("constituents request failed: %w: %w", ports.ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("constituents fetch failed: %w: %w", ports.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("constituents fetch failed: %w: unexpected status %d", ports.ErrFetchFailed, resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("constituents parse failed: %w: %w", ports.ErrFetchFailed, err)
	}

	table := findConstituentsTable(doc)
	if table == nil {
		return nil, fmt.Errorf("constituents parse failed: %w: no constituents table on page", ports.ErrFetchFailed)
	}

	symbols := normalizeSymbols(tickerColumn(table))
	if len(symbols) == 0 {
		return nil, fmt.Errorf("constituents parse failed: %w: table had no tickers", ports.ErrFetchFailed)
	}

	s.logger.Debug(ctx, "Resolved S&P 500 constituents", map[string]interface{}{
		"count": len(symbols),
		"url":   s.url,
	})
	return symbols, nil
}

// findConstituentsTable returns the table with id "constituents", falling
// back to the first wikitable when the id is missing.
func findConstituentsTable(doc *html.Node) *html.Node {
	var byID, firstWikitable *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "table" {
			if byID == nil && attrValue(n, "id") == "constituents" {
				byID = n
			}
			if firstWikitable == nil && strings.Contains(attrValue(n, "class"), "wikitable") {
				firstWikitable = n
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	if byID != nil {
		return byID
	}
	return firstWikitable
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// tickerColumn extracts the text of the first data cell of every row, so
// header rows contribute nothing.
func tickerColumn(table *html.Node) []string {
	var symbols []string
	var walkRows func(*html.Node)
	walkRows = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			if cell := firstDataCell(n); cell != nil {
				if sym := strings.TrimSpace(nodeText(cell)); sym != "" {
					symbols = append(symbols, sym)
				}
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walkRows(c)
		}
	}
	walkRows(table)
	return symbols
}

// firstDataCell returns the first td of a row, or nil for rows that start
// with a th.
func firstDataCell(tr *html.Node) *html.Node {
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "td":
			return c
		case "th":
			return nil
		}
	}
	return nil
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
