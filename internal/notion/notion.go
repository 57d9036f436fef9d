package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mangobot/mangobot/internal/domain"
)

const (
	APIVersion = "2021-08-16"
	APIBaseURL = "https://api.notion.com/v1"
)

// Client writes confirmed entries as pages of a Notion database.
type Client struct {
	token      string
	databaseID string
	baseURL    string
	httpClient *http.Client
}

func NewClient(token, databaseID string) *Client {
	return &Client{
		token:      token,
		databaseID: databaseID,
		baseURL:    APIBaseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// CreateRecord stores entry as a new database page. The "Added on"
// timestamp is set here, at write time. Single attempt; the caller decides
// what to tell the user on failure.
func (c *Client) CreateRecord(ctx context.Context, entry domain.Entry) error {
	reqBody := map[string]interface{}{
		"parent": map[string]interface{}{
			"database_id": c.databaseID,
		},
		"properties": recordProperties(entry, time.Now()),
	}

	if _, err := c.makeRequest(ctx, http.MethodPost, "/pages", reqBody); err != nil {
		return fmt.Errorf("create record: %w", err)
	}

	return nil
}

func recordProperties(entry domain.Entry, addedAt time.Time) map[string]interface{} {
	tags := make([]map[string]interface{}, 0, len(entry.Tags))
	for _, tag := range entry.Tags {
		tags = append(tags, map[string]interface{}{"name": tag})
	}

	properties := map[string]interface{}{
		"Link": map[string]interface{}{
			"url": entry.Link,
		},
		"Name": map[string]interface{}{
			"title": []map[string]interface{}{
				{
					"text": map[string]interface{}{
						"content": entry.Name,
					},
				},
			},
		},
		"Type": map[string]interface{}{
			"select": map[string]interface{}{
				"name": string(entry.Type),
			},
		},
		"Tags": map[string]interface{}{
			"multi_select": tags,
		},
		"Added on": map[string]interface{}{
			"date": map[string]interface{}{
				"start": addedAt.Format(time.RFC3339),
			},
		},
	}

	// Notion rejects selects with empty option names, and a failed
	// classification leaves the subject unset.
	if entry.Subject != "" {
		properties["Subject"] = map[string]interface{}{
			"select": map[string]interface{}{
				"name": entry.Subject,
			},
		}
	}

	return properties
}

func (c *Client) makeRequest(ctx context.Context, method, endpoint string, body interface{}) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", APIVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("Notion API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}
