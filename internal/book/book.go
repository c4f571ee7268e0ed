package book

import (
	"fmt"
	"strings"
)

// UnknownAuthor is used when a catalog entry lists no author.
const UnknownAuthor = "Unknown"

// DefaultCoversURL is the Open Library cover image endpoint.
const DefaultCoversURL = "https://covers.openlibrary.org/b/id"

// servicePrefixes are stripped from catalog keys to build route identifiers.
var servicePrefixes = []string{"/works/", "/books/"}

// Summary is the list-view representation of one search hit.
type Summary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	CoverID     *int   `json:"cover_id,omitempty"`
	Year        *int   `json:"year,omitempty"`
	Rating      string `json:"rating"`
	ReviewCount string `json:"review_count"`
}

// Params is the field set handed to the detail view when a summary is selected.
type Params struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	CoverID     *int   `json:"cover_id,omitempty"`
	Year        *int   `json:"year,omitempty"`
	Rating      string `json:"rating"`
	ReviewCount string `json:"review_count"`
}

// Route identifies a detail view: the cleaned identifier plus its initial state.
type Route struct {
	ID     string `json:"id"`
	Params Params `json:"params"`
}

// CleanID returns the identifier without its service-specific prefix.
func (s Summary) CleanID() string {
	for _, prefix := range servicePrefixes {
		if strings.HasPrefix(s.ID, prefix) {
			return strings.TrimPrefix(s.ID, prefix)
		}
	}
	return s.ID
}

// Route builds the navigation hand-off for this summary.
func (s Summary) Route() Route {
	return Route{
		ID: s.CleanID(),
		Params: Params{
			Title:       s.Title,
			Author:      s.Author,
			CoverID:     s.CoverID,
			Year:        s.Year,
			Rating:      s.Rating,
			ReviewCount: s.ReviewCount,
		},
	}
}

// CoverURL returns the large cover image URL for coverID, or "" when there is none.
func CoverURL(base string, coverID *int) string {
	if coverID == nil {
		return ""
	}
	if base == "" {
		base = DefaultCoversURL
	}
	return fmt.Sprintf("%s/%d-L.jpg", strings.TrimRight(base, "/"), *coverID)
}
