package book

import (
	"context"
	"errors"
	"testing"

	"bookfinder/internal/platform/httpjson"
	"bookfinder/internal/platform/openlibrary"
	"bookfinder/internal/review"
	"bookfinder/internal/testutil"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func intPtr(v int) *int { return &v }

func TestService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("blank query issues no request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		mockCatalog := NewMockCatalog(ctrl)
		service := NewService(mockCatalog, zap.NewNop())

		assert.Empty(t, service.Search(ctx, ""))
		assert.Empty(t, service.Search(ctx, "   "))
		assert.NotNil(t, service.Search(ctx, "\t\n"))
	})

	t.Run("maps documents", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		mockCatalog := NewMockCatalog(ctrl)
		service := NewService(mockCatalog, zap.NewNop())

		mockCatalog.EXPECT().SearchBooks(gomock.Any(), "test", PageSize).Return(&openlibrary.SearchResponse{
			NumFound: 1,
			Docs: []openlibrary.SearchDoc{{
				Key:              "/works/123",
				Title:            "Test Book",
				AuthorNames:      []string{"Test Author"},
				CoverID:          intPtr(100),
				FirstPublishYear: intPtr(2020),
			}},
		}, nil)

		got := service.Search(ctx, "test")
		require.Len(t, got, 1)

		want := review.Synthesize("/works/123")
		b := got[0]
		assert.Equal(t, "/works/123", b.ID)
		assert.Equal(t, "Test Book", b.Title)
		assert.Equal(t, "Test Author", b.Author)
		require.NotNil(t, b.CoverID)
		assert.Equal(t, 100, *b.CoverID)
		require.NotNil(t, b.Year)
		assert.Equal(t, 2020, *b.Year)
		assert.Equal(t, want.Rating, b.Rating)
		assert.Equal(t, want.ReviewCount, b.ReviewCount)
	})

	t.Run("fills defaults and keeps order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		mockCatalog := NewMockCatalog(ctrl)
		service := NewService(mockCatalog, zap.NewNop())

		mockCatalog.EXPECT().SearchBooks(gomock.Any(), "mixed", PageSize).Return(&openlibrary.SearchResponse{
			Docs: []openlibrary.SearchDoc{
				{Key: "/works/2", Title: "Zebra"},
				{Title: "No Key", AuthorNames: []string{}},
				{Key: "/works/1", Title: "Aardvark", AuthorNames: []string{"First", "Second"}},
			},
		}, nil)

		got := service.Search(ctx, "mixed")
		require.Len(t, got, 3)

		assert.Equal(t, []string{"Zebra", "No Key", "Aardvark"}, []string{got[0].Title, got[1].Title, got[2].Title})
		assert.Equal(t, UnknownAuthor, got[0].Author)
		assert.Nil(t, got[0].CoverID)
		assert.Nil(t, got[0].Year)

		assert.Empty(t, got[1].ID)
		assert.Equal(t, review.Synthesize("").Rating, got[1].Rating)
		assert.Equal(t, "1,000", got[1].ReviewCount)

		assert.Equal(t, "First", got[2].Author)
	})

	t.Run("failure is absorbed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		mockCatalog := NewMockCatalog(ctrl)
		service := NewService(mockCatalog, zap.NewNop())

		mockCatalog.EXPECT().SearchBooks(gomock.Any(), "boom", PageSize).Return(nil, errors.New("connection refused"))

		got := service.Search(ctx, "boom")
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestService_SearchAgainstCatalogServer(t *testing.T) {
	srv := testutil.NewServer(t, map[string]testutil.Route{
		"/search.json": {Raw: `{"numFound":1,"docs":[{"key":"/works/123","title":"Test Book","author_name":["Test Author"],"cover_i":100,"first_publish_year":2020}]}`},
	})
	catalog := openlibrary.NewClient(httpjson.NewGetter(srv.Client(), "test", 0), srv.URL)
	service := NewService(catalog, zap.NewNop())

	assert.Empty(t, service.Search(context.Background(), "  "))
	assert.Equal(t, 0, srv.TotalHits())

	got := service.Search(context.Background(), "test")
	require.Len(t, got, 1)
	assert.Equal(t, "Test Author", got[0].Author)
	assert.Equal(t, 1, srv.Hits("/search.json"))
	assert.Equal(t, "20", srv.LastRequest("/search.json").URL.Query().Get("limit"))
}

func TestService_SearchMalformedResponse(t *testing.T) {
	srv := testutil.NewServer(t, map[string]testutil.Route{
		"/search.json": {Raw: `{"docs": "nope"}`},
	})
	catalog := openlibrary.NewClient(httpjson.NewGetter(srv.Client(), "test", 0), srv.URL)
	service := NewService(catalog, zap.NewNop())

	assert.Empty(t, service.Search(context.Background(), "test"))
}

func TestService_Find(t *testing.T) {
	ctx := context.Background()

	t.Run("blank query is not a failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		service := NewService(NewMockCatalog(ctrl), zap.NewNop())

		got, err := service.Find(ctx, "  ")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("failure is reported", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		mockCatalog := NewMockCatalog(ctrl)
		service := NewService(mockCatalog, zap.NewNop())

		mockCatalog.EXPECT().SearchBooks(gomock.Any(), "boom", PageSize).Return(nil, httpjson.ErrNetwork)

		got, err := service.Find(ctx, "boom")
		assert.ErrorIs(t, err, httpjson.ErrNetwork)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("malformed response is reported", func(t *testing.T) {
		srv := testutil.NewServer(t, map[string]testutil.Route{
			"/search.json": {Raw: `{"docs": "nope"}`},
		})
		catalog := openlibrary.NewClient(httpjson.NewGetter(srv.Client(), "test", 0), srv.URL)

		_, err := NewService(catalog, zap.NewNop()).Find(ctx, "test")
		assert.ErrorIs(t, err, httpjson.ErrParse)
	})
}
