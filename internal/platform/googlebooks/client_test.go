package googlebooks

import (
	"context"
	"testing"

	"bookfinder/internal/platform/httpjson"
	"bookfinder/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Volumes(t *testing.T) {
	srv := testutil.NewServer(t, map[string]testutil.Route{
		"/volumes": {Raw: `{"totalItems":1,"items":[{"id":"v1","volumeInfo":{
			"title":"Dune","authors":["Frank Herbert"],"averageRating":4.5,"ratingsCount":1234,"description":"Spice."}}]}`},
	})
	c := NewClient(httpjson.NewGetter(srv.Client(), "test", 0), srv.URL+"/", "secret")

	res, err := c.Volumes(context.Background(), TitleAuthorQuery("Dune", "Frank Herbert"), 1)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)

	info := res.Items[0].VolumeInfo
	require.NotNil(t, info.AverageRating)
	assert.Equal(t, 4.5, *info.AverageRating)
	require.NotNil(t, info.RatingsCount)
	assert.Equal(t, 1234, *info.RatingsCount)
	require.NotNil(t, info.Description)
	assert.Equal(t, "Spice.", *info.Description)

	q := srv.LastRequest("/volumes").URL.Query()
	assert.Equal(t, "intitle:Dune inauthor:Frank Herbert", q.Get("q"))
	assert.Equal(t, "1", q.Get("maxResults"))
	assert.Equal(t, "secret", q.Get("key"))
}

func TestClient_VolumesNoMatches(t *testing.T) {
	srv := testutil.NewServer(t, map[string]testutil.Route{
		"/volumes": {Raw: `{"kind":"books#volumes","totalItems":0}`},
	})
	c := NewClient(httpjson.NewGetter(srv.Client(), "test", 0), srv.URL, "")

	res, err := c.Volumes(context.Background(), "intitle:x inauthor:y", 1)
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.False(t, srv.LastRequest("/volumes").URL.Query().Has("key"))
}

func TestClient_VolumesMissingFields(t *testing.T) {
	srv := testutil.NewServer(t, map[string]testutil.Route{
		"/volumes": {Raw: `{"totalItems":1,"items":[{"id":"v2","volumeInfo":{"title":"Obscure"}}]}`},
	})
	c := NewClient(httpjson.NewGetter(srv.Client(), "test", 0), srv.URL, "")

	res, err := c.Volumes(context.Background(), "intitle:Obscure inauthor:Nobody", 1)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	info := res.Items[0].VolumeInfo
	assert.Nil(t, info.AverageRating)
	assert.Nil(t, info.RatingsCount)
	assert.Nil(t, info.Description)
}
