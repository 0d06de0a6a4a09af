// Package openlibrary wraps the Open Library search API as the fallback
// metadata provider.
package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/steebus/notion-book-fetch/internal/entity"
	"github.com/steebus/notion-book-fetch/internal/metadata"
)

const (
	defaultBaseURL = "https://openlibrary.org"
	coverBaseURL   = "https://covers.openlibrary.org"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
}

func NewClient(userAgent string, rps int) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL:   defaultBaseURL,
		userAgent: userAgent,
		limiter:   rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
	}
}

// SetBaseURL overrides the API host, used by tests.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

func (c *Client) Name() string {
	return "openlibrary"
}

// searchResponse matches search.json.
type searchResponse struct {
	Docs []doc `json:"docs"`
}

type doc struct {
	Key                 string   `json:"key"`
	Title               string   `json:"title"`
	AuthorNames         []string `json:"author_name"`
	ISBN                []string `json:"isbn"`
	Subject             []string `json:"subject"`
	Series              []string `json:"series"`
	FirstPublishYear    int      `json:"first_publish_year"`
	NumberOfPagesMedian int      `json:"number_of_pages_median"`
	CoverID             int      `json:"cover_i"`
}

// Lookup requests the single best document for the query and maps it to
// a BookMetadata. A non-2xx response or an empty doc list is "no match"
// (nil, nil); only transport failures surface as errors. No retries
// here — the pipeline owns the fallback chain.
func (c *Client) Lookup(ctx context.Context, query string) (*entity.BookMetadata, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/search.json?q=%s&limit=1", c.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("openlibrary: search returned status %d", resp.StatusCode)
		return nil, nil
	}

	var res searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, err
	}
	if len(res.Docs) == 0 {
		return nil, nil
	}

	return extract(&res.Docs[0], query), nil
}

// extract maps a raw search doc onto the common metadata record. Open
// Library reports no rating, so Rating is always absent; the series
// field is a fallback for titles the shared patterns do not recognize.
func extract(d *doc, query string) *entity.BookMetadata {
	series := metadata.ExtractSeries(d.Title, "")
	if series == "" && len(d.Series) > 0 {
		series = d.Series[0]
	}

	var infoLink string
	if d.Key != "" {
		infoLink = defaultBaseURL + d.Key
	}

	var imageLink string
	if d.CoverID != 0 {
		imageLink = fmt.Sprintf("%s/b/id/%d-L.jpg", coverBaseURL, d.CoverID)
	}

	return &entity.BookMetadata{
		Title:         d.Title,
		Authors:       d.AuthorNames,
		Categories:    d.Subject,
		PageCount:     d.NumberOfPagesMedian,
		InfoLink:      infoLink,
		ImageLink:     imageLink,
		PublishedDate: metadata.DateFromYear(d.FirstPublishYear),
		FictionStatus: metadata.ClassifyFiction(d.Subject, query),
		SeriesName:    series,
		ISBN:          metadata.PreferISBN13(d.ISBN),
	}
}
