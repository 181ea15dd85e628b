// Package youtube is a thin wrapper around the YouTube Data API v3
// commentThreads.list call. It returns raw page payloads so the cache layer
// can store them whole.
package youtube

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"judol-guard/config"
	"judol-guard/httpclient"
)

// Part is the fixed part selector requested for every page.
const Part = "snippet"

type Client struct {
	base   *httpclient.BaseClient
	apiKey string
}

func NewClient(cfg config.YouTubeConfig) *Client {
	return &Client{
		base:   httpclient.NewBaseClient(cfg.BaseURL),
		apiKey: cfg.APIKey,
	}
}

// ListThreads fetches one page of top-level comment threads for channelID.
// pageToken may be empty for the first page. The raw response body is
// returned untouched.
func (c *Client) ListThreads(ctx context.Context, channelID, pageToken string, maxResults int) ([]byte, error) {
	query := url.Values{}
	query.Set("allThreadsRelatedToChannelId", channelID)
	query.Set("part", Part)
	query.Set("maxResults", strconv.Itoa(maxResults))
	if pageToken != "" {
		query.Set("pageToken", pageToken)
	}
	query.Set("key", c.apiKey)

	req, err := c.base.NewRequest(ctx, http.MethodGet, "/commentThreads", query, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.base.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, httpclient.DecodeError(resp)
	}
	return io.ReadAll(resp.Body)
}
