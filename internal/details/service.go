package details

import (
	"context"
	"strings"
	"sync"

	"bookfinder/internal/book"
	"bookfinder/internal/platform/googlebooks"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Service enriches a selected book with ratings, description and author biography.
type Service struct {
	volumes Volumes
	authors Authors
	logger  *zap.Logger
}

func NewService(volumes Volumes, authors Authors, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		volumes: volumes,
		authors: authors,
		logger:  logger,
	}
}

// FetchRatingAndDescription looks up the best volume match for title and author.
// It returns nil when nothing matches or the service fails.
func (s *Service) FetchRatingAndDescription(ctx context.Context, title, author string) *RatingAndDescription {
	if strings.TrimSpace(title) == "" {
		return nil
	}

	res, err := s.volumes.Volumes(ctx, googlebooks.TitleAuthorQuery(title, author), 1)
	if err != nil {
		s.logger.Error("ratings lookup failed",
			zap.String("title", title), zap.String("author", author), zap.Error(err))
		return nil
	}
	if len(res.Items) == 0 {
		s.logger.Info("ratings lookup returned nothing",
			zap.String("title", title), zap.String("author", author), zap.Error(ErrNoMatch))
		return nil
	}

	info := res.Items[0].VolumeInfo
	out := &RatingAndDescription{Description: DescriptionUnavailable}
	// A zero rating or count means the volume has no ratings yet.
	if info.AverageRating != nil && *info.AverageRating > 0 {
		out.Rating = info.AverageRating
	}
	if info.RatingsCount != nil && *info.RatingsCount > 0 {
		out.Count = info.RatingsCount
	}
	if info.Description != nil && *info.Description != "" {
		out.Description = *info.Description
	}
	return out
}

// FetchAuthorBio resolves authorName to a profile and returns its biography.
// The second result is false when no biography could be found.
func (s *Service) FetchAuthorBio(ctx context.Context, authorName string) (string, bool) {
	if strings.TrimSpace(authorName) == "" {
		return "", false
	}

	found, err := s.authors.SearchAuthors(ctx, authorName)
	if err != nil {
		s.logger.Error("author search failed", zap.String("author", authorName), zap.Error(err))
		return "", false
	}
	if len(found.Docs) == 0 || found.Docs[0].Key == "" {
		s.logger.Info("author search returned nothing", zap.String("author", authorName), zap.Error(ErrNoMatch))
		return "", false
	}

	key := found.Docs[0].Key
	profile, err := s.authors.GetAuthor(ctx, key)
	if err != nil {
		s.logger.Error("author profile fetch failed",
			zap.String("author", authorName), zap.String("key", key), zap.Error(err))
		return "", false
	}
	if profile.Bio.Text == "" {
		return "", false
	}
	return profile.Bio.Text, true
}

// Pending returns the state shown before any enrichment arrives.
func Pending(params book.Params) Details {
	return Details{
		Description: DescriptionPlaceholder(titleOrDefault(params.Title)),
		AuthorBio:   AuthorBioPlaceholder(authorOrDefault(params.Author)),
	}
}

// Load runs both lookups concurrently and merges their results into the
// pending state. onUpdate, when set, receives a snapshot after each lookup
// that produced data; snapshots are delivered one at a time and in order.
// A failing lookup never affects the other.
func (s *Service) Load(ctx context.Context, params book.Params, onUpdate func(Details)) Details {
	var mu sync.Mutex
	state := Pending(params)

	apply := func(change func(*Details)) {
		mu.Lock()
		defer mu.Unlock()
		change(&state)
		if onUpdate != nil {
			onUpdate(state)
		}
	}

	var g errgroup.Group
	g.Go(func() error {
		rd := s.FetchRatingAndDescription(ctx, params.Title, params.Author)
		if rd == nil {
			return nil
		}
		apply(func(d *Details) {
			d.Rating = rd.Rating
			d.ReviewCount = rd.Count
			d.Description = rd.Description
		})
		return nil
	})
	g.Go(func() error {
		bio, ok := s.FetchAuthorBio(ctx, params.Author)
		if !ok {
			return nil
		}
		apply(func(d *Details) {
			d.AuthorBio = bio
		})
		return nil
	})
	_ = g.Wait()

	mu.Lock()
	defer mu.Unlock()
	return state
}

func titleOrDefault(title string) string {
	if strings.TrimSpace(title) == "" {
		return UnknownTitle
	}
	return title
}

func authorOrDefault(author string) string {
	if strings.TrimSpace(author) == "" {
		return UnknownAuthor
	}
	return author
}
