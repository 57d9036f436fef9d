package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mangobot/mangobot/internal/domain"
)

const maxBodyBytes = 5 * 1024 * 1024

// requestHeaders is the fixed browser-like header profile sent with every
// fetch. Some sites serve different (or no) content to bare clients.
// Accept-Encoding is left to the transport so gzip responses get
// decompressed.
var requestHeaders = map[string]string{
	"referer":               "https://www.scrapingcourse.com/ecommerce/",
	"accept-language":       "en-GB,en;q=0.9,de-DE;q=0.8,de;q=0.7,yue-HK;q=0.6,yue;q=0.5,en-US;q=0.4,zh-TW;q=0.3,zh;q=0.2",
	"content-type":          "application/json",
	"sec-ch-device-memory":  "8",
	"sec-ch-ua":             `"Not)A;Brand";v="99", "Google Chrome";v="127", "Chromium";v="127"`,
	"sec-ch-ua-platform":    "Android",
	"sec-ch-viewport-width": "792",
	"User-Agent":            "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.36",
}

// Fetcher retrieves raw HTML over HTTP with the fixed header profile.
type Fetcher struct {
	client *http.Client
}

func New() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch returns the response body for url. A 403 response is reported as
// domain.ErrBlocked; any other status still yields the body, since many
// sites serve usable markup alongside non-200 codes.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	for name, value := range requestHeaders {
		req.Header.Set(name, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		return "", fmt.Errorf("fetch %s: %w", url, domain.ErrBlocked)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	return string(body), nil
}
