package details

import (
	"context"

	"bookfinder/internal/platform/googlebooks"
	"bookfinder/internal/platform/openlibrary"
)

// Volumes is the ratings and description service.
type Volumes interface {
	Volumes(ctx context.Context, query string, maxResults int) (*googlebooks.VolumesResponse, error)
}

// Authors resolves author names to profiles.
type Authors interface {
	SearchAuthors(ctx context.Context, name string) (*openlibrary.AuthorSearchResponse, error)
	GetAuthor(ctx context.Context, authorKey string) (*openlibrary.AuthorDetails, error)
}
