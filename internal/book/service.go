package book

import (
	"context"
	"strings"

	"bookfinder/internal/platform/openlibrary"
	"bookfinder/internal/review"

	"go.uber.org/zap"
)

// PageSize is the fixed number of results requested per search.
const PageSize = 20

// Service searches the catalog and normalizes hits into summaries.
type Service struct {
	catalog Catalog
	logger  *zap.Logger
}

// NewService creates a new search service.
func NewService(catalog Catalog, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{catalog: catalog, logger: logger}
}

// Search returns the summaries matching query in catalog order. A blank query
// returns no results without contacting the catalog. Failures are logged and
// reported as an empty result so callers can always render.
func (s *Service) Search(ctx context.Context, query string) []Summary {
	out, err := s.Find(ctx, query)
	if err != nil {
		return []Summary{}
	}
	return out
}

// Find is Search for callers that need to tell a failed lookup from an empty
// one. The failure is logged and returned alongside an empty result.
func (s *Service) Find(ctx context.Context, query string) ([]Summary, error) {
	if strings.TrimSpace(query) == "" {
		return []Summary{}, nil
	}

	res, err := s.catalog.SearchBooks(ctx, query, PageSize)
	if err != nil {
		s.logger.Error("catalog search failed", zap.String("query", query), zap.Error(err))
		return []Summary{}, err
	}

	out := make([]Summary, 0, len(res.Docs))
	for _, doc := range res.Docs {
		out = append(out, summaryFromDoc(doc))
	}
	return out, nil
}

func summaryFromDoc(doc openlibrary.SearchDoc) Summary {
	author := UnknownAuthor
	if len(doc.AuthorNames) > 0 && doc.AuthorNames[0] != "" {
		author = doc.AuthorNames[0]
	}

	r := review.Synthesize(doc.Key)
	return Summary{
		ID:          doc.Key,
		Title:       doc.Title,
		Author:      author,
		CoverID:     doc.CoverID,
		Year:        doc.FirstPublishYear,
		Rating:      r.Rating,
		ReviewCount: r.ReviewCount,
	}
}
