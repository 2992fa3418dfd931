package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/calendar-agent/internal/cache"
	"github.com/jonathan/calendar-agent/internal/types"
)

// newSearchBackend serves canned organic results and counts requests per query.
func newSearchBackend(t *testing.T, counts *map[string]*int32, results map[string][]types.SearchResult) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		if c, ok := (*counts)[q]; ok {
			atomic.AddInt32(c, 1)
		}
		assert.Equal(t, "google", r.URL.Query().Get("engine"))
		assert.NotEmpty(t, r.URL.Query().Get("api_key"))
		assert.NotEmpty(t, r.URL.Query().Get("num"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"organic_results": results[q]})
	}))
}

func TestSearch_CoversAllQueries(t *testing.T) {
	counts := map[string]*int32{"a": new(int32), "b": new(int32)}
	server := newSearchBackend(t, &counts, map[string][]types.SearchResult{
		"a": {{Title: "A1", Link: "https://a.example", Snippet: "first"}},
		"b": {{Title: "B1", Link: "https://b.example", Snippet: "second"}},
	})
	defer server.Close()

	client := NewClient("test-key", cache.NewStore(t.TempDir()))
	client.BaseURL = server.URL

	results := client.Search(context.Background(), []string{"a", "b"}, 5)
	require.Len(t, results, 2)
	assert.Equal(t, "A1", results["a"][0].Title)
	assert.Equal(t, "B1", results["b"][0].Title)
}

func TestSearch_CacheHitSkipsNetwork(t *testing.T) {
	counts := map[string]*int32{"cached": new(int32), "fresh": new(int32)}
	server := newSearchBackend(t, &counts, map[string][]types.SearchResult{
		"fresh": {{Title: "Fresh", Link: "https://fresh.example", Snippet: "from network"}},
	})
	defer server.Close()

	store := cache.NewStore(t.TempDir())
	seeded := []types.SearchResult{{Title: "Seeded", Link: "https://seed.example", Snippet: "from cache"}}
	require.NoError(t, store.Put("cached", seeded))

	client := NewClient("test-key", store)
	client.BaseURL = server.URL

	results := client.Search(context.Background(), []string{"cached", "fresh"}, 5)
	assert.Equal(t, seeded, results["cached"])
	assert.Equal(t, "Fresh", results["fresh"][0].Title)
	assert.Equal(t, int32(0), atomic.LoadInt32(counts["cached"]))
	assert.Equal(t, int32(1), atomic.LoadInt32(counts["fresh"]))
}

func TestSearch_WritesThroughToCache(t *testing.T) {
	counts := map[string]*int32{"q": new(int32)}
	server := newSearchBackend(t, &counts, map[string][]types.SearchResult{
		"q": {{Title: "Hit", Link: "https://hit.example", Snippet: "snippet"}},
	})
	defer server.Close()

	store := cache.NewStore(t.TempDir())
	client := NewClient("test-key", store)
	client.BaseURL = server.URL

	first := client.Search(context.Background(), []string{"q"}, 5)
	second := client.Search(context.Background(), []string{"q"}, 5)

	assert.Equal(t, first, ResultSet(second))
	assert.Equal(t, int32(1), atomic.LoadInt32(counts["q"]), "second search must be served from cache")
}

func TestSearch_FailureDegradesToEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "broken" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"organic_results": []types.SearchResult{
			{Title: "OK", Link: "https://ok.example", Snippet: "fine"},
		}})
	}))
	defer server.Close()

	store := cache.NewStore(t.TempDir())
	client := NewClient("test-key", store)
	client.BaseURL = server.URL

	results := client.Search(context.Background(), []string{"broken", "working"}, 5)
	assert.Empty(t, results["broken"])
	assert.Len(t, results["working"], 1)

	// Failed queries are not cached; a later run retries them.
	_, ok := store.Get("broken")
	assert.False(t, ok)
}

func TestSearch_MalformedBodyDegradesToEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient("test-key", cache.NewStore(t.TempDir()))
	client.BaseURL = server.URL

	results := client.Search(context.Background(), []string{"q"}, 5)
	assert.Empty(t, results["q"])
}

func TestSearch_TruncatesToRequestedCount(t *testing.T) {
	many := make([]types.SearchResult, 10)
	for i := range many {
		many[i] = types.SearchResult{Title: "T", Link: "https://example.com", Snippet: "s"}
	}
	counts := map[string]*int32{"q": new(int32)}
	server := newSearchBackend(t, &counts, map[string][]types.SearchResult{"q": many})
	defer server.Close()

	client := NewClient("test-key", cache.NewStore(t.TempDir()))
	client.BaseURL = server.URL

	results := client.Search(context.Background(), []string{"q"}, 3)
	assert.Len(t, results["q"], 3)
}
