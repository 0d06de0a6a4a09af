// Package notion is the record store client: it lists database pages,
// fetches single pages, and writes resolved book metadata back.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/steebus/notion-book-fetch/internal/entity"
)

const (
	defaultBaseURL = "https://api.notion.com"
	notionVersion  = "2022-02-22"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	databaseID string
}

func NewClient(apiKey, databaseID string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		databaseID: databaseID,
	}
}

// SetBaseURL overrides the API host, used by tests.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// queryResponse matches POST /v1/databases/{id}/query.
type queryResponse struct {
	Results    []page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

type page struct {
	ID         string              `json:"id"`
	Properties map[string]property `json:"properties"`
}

type property struct {
	Title []struct {
		PlainText string `json:"plain_text"`
	} `json:"title"`
}

// ListRecords fetches every page of the database, following the
// continuation cursor until the store reports no more pages. The title
// text is the concatenation of the title property's plain_text
// fragments.
func (c *Client) ListRecords(ctx context.Context) ([]entity.SourceRecord, error) {
	var records []entity.SourceRecord

	cursor := ""
	for {
		payload := map[string]any{}
		if cursor != "" {
			payload["start_cursor"] = cursor
		}

		var res queryResponse
		u := fmt.Sprintf("%s/v1/databases/%s/query", c.baseURL, c.databaseID)
		if err := c.do(ctx, http.MethodPost, u, payload, &res); err != nil {
			return nil, err
		}

		for _, p := range res.Results {
			records = append(records, entity.SourceRecord{
				ID:    p.ID,
				Title: titleText(p),
			})
		}

		if !res.HasMore {
			return records, nil
		}
		cursor = res.NextCursor
	}
}

// GetRecord fetches one page's properties by identifier. Not used by
// the scan pass, which reads titles from the listing.
func (c *Client) GetRecord(ctx context.Context, pageID string) (entity.SourceRecord, error) {
	var p page
	u := fmt.Sprintf("%s/v1/pages/%s", c.baseURL, pageID)
	if err := c.do(ctx, http.MethodGet, u, nil, &p); err != nil {
		return entity.SourceRecord{}, err
	}
	return entity.SourceRecord{ID: p.ID, Title: titleText(p)}, nil
}

// UpdateRecord patches a page with the resolved metadata. Partial
// update only; there is no rollback on failure.
func (c *Client) UpdateRecord(ctx context.Context, pageID string, meta *entity.BookMetadata, originalTitle string) error {
	u := fmt.Sprintf("%s/v1/pages/%s", c.baseURL, pageID)
	return c.do(ctx, http.MethodPatch, u, BuildPageUpdate(meta, originalTitle), nil)
}

func (c *Client) do(ctx context.Context, method, url string, payload, target any) error {
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", notionVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("notion: %s %s returned status %d", method, url, resp.StatusCode)
	}

	if target == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(target)
}

func titleText(p page) string {
	prop, ok := p.Properties["Title"]
	if !ok {
		return ""
	}
	var title string
	for _, fragment := range prop.Title {
		title += fragment.PlainText
	}
	return title
}
