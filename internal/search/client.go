// Package search issues web searches through a SerpAPI-compatible backend,
// consulting the on-disk cache before going to the network.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/calendar-agent/internal/cache"
	"github.com/jonathan/calendar-agent/internal/types"
)

// DefaultBaseURL is the production search endpoint.
const DefaultBaseURL = "https://serpapi.com/search"

// DefaultResultsPerQuery limits how many organic results are kept per query.
const DefaultResultsPerQuery = 5

// ResultSet maps each query to its results in provider relevance order.
// Queries that failed or returned nothing map to an empty slice.
type ResultSet map[string][]types.SearchResult

// Client performs batched, cached web searches.
type Client struct {
	APIKey  string
	BaseURL string
	store   *cache.Store
	client  *http.Client
}

// NewClient constructs a search client backed by the given cache store.
func NewClient(apiKey string, store *cache.Store) *Client {
	return NewClientWithHTTP(apiKey, store, &http.Client{Timeout: 10 * time.Second})
}

// NewClientWithHTTP constructs a search client using the supplied HTTP client.
// This is useful for overriding the default timeout.
func NewClientWithHTTP(apiKey string, store *cache.Store, client *http.Client) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: DefaultBaseURL,
		store:   store,
		client:  client,
	}
}

// Search resolves every query in queries, serving cache hits from disk and
// fetching all misses concurrently. A failed fetch degrades that query to an
// empty result list; it never aborts the batch and is never retried. The
// returned set covers exactly the input queries, in the caller's order.
func (c *Client) Search(ctx context.Context, queries []string, resultsPerQuery int) ResultSet {
	if resultsPerQuery <= 0 {
		resultsPerQuery = DefaultResultsPerQuery
	}

	resolved := make(map[string][]types.SearchResult, len(queries))
	var toFetch []string
	for _, q := range queries {
		if results, ok := c.store.Get(q); ok {
			resolved[q] = results
		} else {
			toFetch = append(toFetch, q)
		}
	}

	if len(toFetch) > 0 {
		var mu sync.Mutex
		g := new(errgroup.Group)
		for _, q := range toFetch {
			g.Go(func() error {
				results, err := c.fetch(ctx, q, resultsPerQuery)
				if err != nil {
					results = []types.SearchResult{}
				} else if putErr := c.store.Put(q, results); putErr != nil {
					// The fetch succeeded; a cache write failure only means
					// the next run fetches again.
					_ = putErr
				}
				mu.Lock()
				resolved[q] = results
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()
	}

	// Rebuild over the input list so output order matches the caller's
	// request order, not fetch completion order.
	out := make(ResultSet, len(queries))
	for _, q := range queries {
		if results, ok := resolved[q]; ok {
			out[q] = results
		} else {
			out[q] = []types.SearchResult{}
		}
	}
	return out
}

// fetch issues a single search request. The backend expects GET with
// engine/q/api_key/num parameters and answers with an organic_results array.
func (c *Client) fetch(ctx context.Context, query string, num int) ([]types.SearchResult, error) {
	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("api_key", c.APIKey)
	params.Set("num", strconv.Itoa(num))

	endpoint := c.BaseURL
	if endpoint == "" {
		endpoint = DefaultBaseURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search http %d", resp.StatusCode)
	}

	var payload struct {
		OrganicResults []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
		} `json:"organic_results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	results := make([]types.SearchResult, 0, len(payload.OrganicResults))
	for _, r := range payload.OrganicResults {
		results = append(results, types.SearchResult{Title: r.Title, Link: r.Link, Snippet: r.Snippet})
		if len(results) >= num {
			break
		}
	}
	return results, nil
}
