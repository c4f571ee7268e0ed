package details

import (
	"strconv"

	"bookfinder/internal/book"
	"bookfinder/internal/review"
)

// View is the display-ready detail screen.
type View struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Year        string `json:"year"`
	CoverURL    string `json:"cover_url,omitempty"`
	Rating      string `json:"rating"`
	ReviewCount string `json:"review_count"`
	Description string `json:"description"`
	AuthorBio   string `json:"author_bio"`
}

// NewView merges enrichment data over the hand-off state of route.
// Real ratings win over the hand-off values, which win over the defaults.
func NewView(route book.Route, d Details, coversURL string) View {
	p := route.Params
	v := View{
		ID:          route.ID,
		Title:       titleOrDefault(p.Title),
		Author:      authorOrDefault(p.Author),
		Year:        UnknownYear,
		CoverURL:    book.CoverURL(coversURL, p.CoverID),
		Rating:      DefaultRating,
		ReviewCount: DefaultReviewCount,
		Description: d.Description,
		AuthorBio:   d.AuthorBio,
	}
	if p.Year != nil {
		v.Year = strconv.Itoa(*p.Year)
	}

	switch {
	case d.Rating != nil:
		v.Rating = strconv.FormatFloat(*d.Rating, 'f', 1, 64)
	case p.Rating != "":
		v.Rating = p.Rating
	}

	switch {
	case d.ReviewCount != nil:
		v.ReviewCount = review.FormatCount(int64(*d.ReviewCount))
	case p.ReviewCount != "":
		v.ReviewCount = p.ReviewCount
	}

	if v.Description == "" {
		v.Description = DescriptionPlaceholder(v.Title)
	}
	if v.AuthorBio == "" {
		v.AuthorBio = AuthorBioPlaceholder(v.Author)
	}
	return v
}
