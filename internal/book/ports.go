package book

import (
	"context"

	"bookfinder/internal/platform/openlibrary"
)

//go:generate mockgen -source=ports.go -destination=mock_ports_test.go -package=book

// Catalog is the public book catalog searched by free text.
type Catalog interface {
	SearchBooks(ctx context.Context, query string, limit int) (*openlibrary.SearchResponse, error)
}
