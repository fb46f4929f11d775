package dataset

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = "jet_mult,jet_ptd,jet_axis2,is_gluon\n23,0.41,0.052,1\n"

func TestFetchDownloadsAndCaches(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(sampleCSV))
	}))
	defer server.Close()

	cache := filepath.Join(t.TempDir(), "jets.csv")
	path, err := Fetch(server.URL, cache)
	require.NoError(t, err)
	assert.Equal(t, cache, path)

	content, err := os.ReadFile(cache)
	require.NoError(t, err)
	assert.Equal(t, sampleCSV, string(content))

	// Second fetch must hit the cache, not the network.
	_, err = Fetch(server.URL, cache)
	require.NoError(t, err)
	assert.Equal(t, 1, hits)
}

func TestFetchHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	cache := filepath.Join(t.TempDir(), "jets.csv")
	_, err := Fetch(server.URL, cache)
	assert.ErrorIs(t, err, ErrRetrieval)

	_, statErr := os.Stat(cache)
	assert.True(t, os.IsNotExist(statErr), "failed fetch must not leave a cache file")
}

func TestFetchUnreachable(t *testing.T) {
	cache := filepath.Join(t.TempDir(), "jets.csv")
	_, err := Fetch("http://127.0.0.1:1/jets.csv", cache)
	assert.ErrorIs(t, err, ErrRetrieval)
}
