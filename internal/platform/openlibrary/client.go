package openlibrary

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"bookfinder/internal/platform/httpjson"

	jsoniter "github.com/json-iterator/go"
)

const DefaultBaseURL = "https://openlibrary.org"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client struct {
	getter  *httpjson.Getter
	baseURL string
}

func NewClient(getter *httpjson.Getter, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		getter:  getter,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// SearchResponse matches search.json
type SearchResponse struct {
	NumFound int         `json:"numFound"`
	Docs     []SearchDoc `json:"docs"`
}

// SearchDoc is one work in a search.json response. Every field may be absent.
type SearchDoc struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorNames      []string `json:"author_name"`
	CoverID          *int     `json:"cover_i"`
	FirstPublishYear *int     `json:"first_publish_year"`
}

// AuthorSearchResponse matches search/authors.json
type AuthorSearchResponse struct {
	NumFound int         `json:"numFound"`
	Docs     []AuthorDoc `json:"docs"`
}

type AuthorDoc struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// AuthorDetails matches authors/{key}.json
type AuthorDetails struct {
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
	Bio       Bio    `json:"bio"`
}

// Bio is an author biography. Open Library sends it either as a plain string
// or as {"type": "/type/text", "value": "..."}.
type Bio struct {
	Text string
}

func (b *Bio) UnmarshalJSON(data []byte) error {
	b.Text = ""

	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		b.Text = text
		return nil
	}

	var typed struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &typed); err == nil {
		b.Text = typed.Value
	}
	// Any other shape is treated as no biography.
	return nil
}

func (c *Client) SearchBooks(ctx context.Context, query string, limit int) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))
	u := fmt.Sprintf("%s/search.json?%s", c.baseURL, params.Encode())

	var res SearchResponse
	if err := c.getter.Get(ctx, u, &res); err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	return &res, nil
}

func (c *Client) SearchAuthors(ctx context.Context, name string) (*AuthorSearchResponse, error) {
	params := url.Values{}
	params.Set("q", name)
	u := fmt.Sprintf("%s/search/authors.json?%s", c.baseURL, params.Encode())

	var res AuthorSearchResponse
	if err := c.getter.Get(ctx, u, &res); err != nil {
		return nil, fmt.Errorf("search authors: %w", err)
	}
	return &res, nil
}

func (c *Client) GetAuthor(ctx context.Context, authorKey string) (*AuthorDetails, error) {
	// authorKey is usually "/authors/OL..." or just "OL..."
	key := strings.TrimPrefix(authorKey, "/authors/")
	u := fmt.Sprintf("%s/authors/%s.json", c.baseURL, url.PathEscape(key))

	var res AuthorDetails
	if err := c.getter.Get(ctx, u, &res); err != nil {
		return nil, fmt.Errorf("get author %s: %w", key, err)
	}
	return &res, nil
}
