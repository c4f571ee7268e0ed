package googlebooks

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"bookfinder/internal/platform/httpjson"
)

const DefaultBaseURL = "https://www.googleapis.com/books/v1"

type Client struct {
	getter  *httpjson.Getter
	baseURL string
	apiKey  string
}

func NewClient(getter *httpjson.Getter, baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		getter:  getter,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

// VolumesResponse matches /volumes. Items is absent when totalItems is 0.
type VolumesResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []Volume `json:"items"`
}

type Volume struct {
	ID         string     `json:"id"`
	VolumeInfo VolumeInfo `json:"volumeInfo"`
}

type VolumeInfo struct {
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	AverageRating *float64 `json:"averageRating"`
	RatingsCount  *int     `json:"ratingsCount"`
	Description   *string  `json:"description"`
}

// TitleAuthorQuery builds a structured query constrained by title and author.
func TitleAuthorQuery(title, author string) string {
	return "intitle:" + title + " inauthor:" + author
}

func (c *Client) Volumes(ctx context.Context, query string, maxResults int) (*VolumesResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(maxResults))
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	u := fmt.Sprintf("%s/volumes?%s", c.baseURL, params.Encode())

	var res VolumesResponse
	if err := c.getter.Get(ctx, u, &res); err != nil {
		return nil, fmt.Errorf("search volumes: %w", err)
	}
	return &res, nil
}
