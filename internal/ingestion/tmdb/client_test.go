package tmdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchPayload(results ...MovieResult) SearchMoviesResponse {
	return SearchMoviesResponse{
		Page:         1,
		Results:      results,
		TotalPages:   1,
		TotalResults: len(results),
	}
}

func TestFindPosterURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/movie", r.URL.Path)
		assert.Equal(t, "Inception", r.URL.Query().Get("query"))
		assert.Equal(t, "2010", r.URL.Query().Get("year"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))

		json.NewEncoder(w).Encode(searchPayload(
			MovieResult{ID: 27205, Title: "Inception", PosterPath: "/inception.jpg"},
		))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")

	year := 2010
	url, err := client.FindPosterURL(context.Background(), "Inception", &year)
	require.NoError(t, err)
	assert.Equal(t, imageBaseURL+"/inception.jpg", url)
}

func TestFindPosterURL_SkipsResultsWithoutPoster(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(searchPayload(
			MovieResult{ID: 1, Title: "Inception"},
			MovieResult{ID: 2, Title: "Inception", PosterPath: "/second.jpg"},
		))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")

	url, err := client.FindPosterURL(context.Background(), "Inception", nil)
	require.NoError(t, err)
	assert.Equal(t, imageBaseURL+"/second.jpg", url)
}

func TestFindPosterURL_NoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(searchPayload())
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")

	url, err := client.FindPosterURL(context.Background(), "Nonexistent", nil)
	require.NoError(t, err)
	assert.Equal(t, "", url)
}

func TestDoRequest_RetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(searchPayload(
			MovieResult{ID: 27205, Title: "Inception", PosterPath: "/inception.jpg"},
		))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")

	resp, err := client.SearchMovies(context.Background(), "Inception", nil)
	require.NoError(t, err)
	assert.Len(t, resp.Results, 1)
	assert.Equal(t, int32(2), calls.Load())
}

func TestDoRequest_GivesUpOnClientError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad-key")

	_, err := client.SearchMovies(context.Background(), "Inception", nil)
	assert.Error(t, err)
	// 4xx responses other than 429 are not retried.
	assert.Equal(t, int32(1), calls.Load())
}
