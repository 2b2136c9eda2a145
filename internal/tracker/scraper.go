package tracker

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Adda-Baaj/launch-harvester/internal/domain"
	"github.com/Adda-Baaj/launch-harvester/pkg/httpclient"

	"github.com/PuerkitoBio/goquery"
)

const (
	maxHTMLBodyBytes     = 1 << 20 // 1 MiB
	defaultScrapeTimeout = 15 * time.Second
	scraperUserAgent     = "launch-harvester/1.0 (+https://github.com/Adda-Baaj/launch-harvester)"
)

// Scraper fetches article pages and extracts metadata from OG tags.
type Scraper struct {
	client  httpclient.Client
	headers map[string]string
}

// NewScraper constructs a scraper with the provided HTTP client (or default).
func NewScraper(client httpclient.Client) *Scraper {
	if client == nil {
		client = httpclient.NewRestyClient(defaultScrapeTimeout)
	}
	return &Scraper{
		client: client,
		headers: map[string]string{
			"User-Agent": scraperUserAgent,
			"Accept":     "text/html,application/xhtml+xml",
		},
	}
}

// Scrape fetches articleURL and returns its title, description and image.
func (s *Scraper) Scrape(ctx context.Context, articleURL string) (*domain.ArticleMeta, error) {
	articleURL = strings.TrimSpace(articleURL)
	if articleURL == "" {
		return nil, fmt.Errorf("article url is empty")
	}

	resp, err := s.client.Get(ctx, articleURL, s.headers)
	if err != nil {
		return nil, fmt.Errorf("http fetch: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		snippet := strings.TrimSpace(string(resp.Body()))
		if len(snippet) > 1024 {
			snippet = snippet[:1024]
		}
		return nil, fmt.Errorf("status %d body: %s", resp.StatusCode(), snippet)
	}

	body := resp.Body()
	if len(body) > maxHTMLBodyBytes {
		body = body[:maxHTMLBodyBytes]
	}

	meta, err := parseMeta(body)
	if err != nil {
		return nil, err
	}
	meta.URL = articleURL
	meta.ImageURL = resolveURL(meta.ImageURL, articleURL)
	return &meta, nil
}

func parseMeta(body []byte) (domain.ArticleMeta, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return domain.ArticleMeta{}, fmt.Errorf("parse html: %w", err)
	}

	extract := func(sel string) string {
		if node := doc.Find(sel).First(); node.Length() > 0 {
			if val, ok := node.Attr("content"); ok {
				return strings.TrimSpace(val)
			}
		}
		return ""
	}

	return domain.ArticleMeta{
		Title: firstNonEmpty(
			extract(`meta[property="og:title"]`),
			extract(`meta[name="twitter:title"]`),
			doc.Find("title").First().Text(),
		),
		Description: firstNonEmpty(
			extract(`meta[property="og:description"]`),
			extract(`meta[name="description"]`),
		),
		ImageURL: firstNonEmpty(
			extract(`meta[property="og:image"]`),
			extract(`meta[name="twitter:image"]`),
		),
	}, nil
}

// resolveURL makes ref absolute against base; unparsable input is returned as is.
func resolveURL(ref, base string) string {
	if ref == "" {
		return ""
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
