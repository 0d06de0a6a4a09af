// Package googlebooks wraps the Google Books volumes API as the primary
// metadata provider.
package googlebooks

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

const defaultBaseURL = "https://www.googleapis.com"

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
	return "googlebooks"
}

// searchResponse matches /books/v1/volumes.
type searchResponse struct {
	Items []struct {
		VolumeInfo volumeInfo `json:"volumeInfo"`
	} `json:"items"`
}

type industryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

type volumeInfo struct {
	Title               string               `json:"title"`
	Subtitle            string               `json:"subtitle"`
	Authors             []string             `json:"authors"`
	Description         string               `json:"description"`
	Categories          []string             `json:"categories"`
	AverageRating       float64              `json:"averageRating"`
	PageCount           int                  `json:"pageCount"`
	InfoLink            string               `json:"infoLink"`
	ImageLinks          map[string]string    `json:"imageLinks"`
	PublishedDate       string               `json:"publishedDate"`
	IndustryIdentifiers []industryIdentifier `json:"industryIdentifiers"`
}

// Lookup requests the single best volume for the query and maps it to a
// BookMetadata. A non-2xx response or an empty item list is "no match"
// (nil, nil); only transport failures surface as errors, and the
// pipeline folds those into its fallback chain. No retries here.
func (c *Client) Lookup(ctx context.Context, query string) (*entity.BookMetadata, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/books/v1/volumes?q=%s&maxResults=1", c.baseURL, url.QueryEscape(query))
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
		log.Printf("googlebooks: search returned status %d", resp.StatusCode)
		return nil, nil
	}

	var res searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, err
	}
	if len(res.Items) == 0 {
		return nil, nil
	}

	return extract(&res.Items[0].VolumeInfo, query), nil
}

// extract maps a raw volume onto the common metadata record using the
// shared heuristics.
func extract(vol *volumeInfo, query string) *entity.BookMetadata {
	return &entity.BookMetadata{
		Title:         vol.Title,
		Authors:       vol.Authors,
		Description:   vol.Description,
		Categories:    vol.Categories,
		Rating:        vol.AverageRating,
		PageCount:     vol.PageCount,
		InfoLink:      vol.InfoLink,
		ImageLink:     metadata.BestCover(vol.ImageLinks),
		PublishedDate: metadata.NormalizeDate(vol.PublishedDate),
		FictionStatus: metadata.ClassifyFiction(vol.Categories, query),
		SeriesName:    metadata.ExtractSeries(vol.Title, vol.Subtitle),
		ISBN:          pickISBN(vol.IndustryIdentifiers),
	}
}

// pickISBN prefers the 13-digit identifier over the 10-digit one.
func pickISBN(identifiers []industryIdentifier) string {
	var isbn10 string
	for _, id := range identifiers {
		switch id.Type {
		case "ISBN_13":
			return id.Identifier
		case "ISBN_10":
			if isbn10 == "" {
				isbn10 = id.Identifier
			}
		}
	}
	return isbn10
}
