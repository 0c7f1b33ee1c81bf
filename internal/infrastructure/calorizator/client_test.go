package calorizator

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/macrolens/calorizator/internal/domain"
)

func serveFixture(t *testing.T, name string) http.HandlerFunc {
	t.Helper()

	body, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(body)
	}
}

func TestNewClient(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		client := NewClient(ClientConfig{}, nil)

		assert.NotNil(t, client)
		assert.Equal(t, DefaultBaseURL, client.baseURL)
		assert.NotNil(t, client.http)
		assert.NotNil(t, client.extractor)
		assert.Equal(t, 30*time.Second, client.http.GetClient().Timeout)
		assert.False(t, client.debug)
	})

	t.Run("keeps configured values", func(t *testing.T) {
		client := NewClient(ClientConfig{
			BaseURL:   "https://example.com/list",
			Timeout:   5 * time.Second,
			UserAgent: "test-agent",
		}, nil)

		assert.Equal(t, "https://example.com/list", client.baseURL)
		assert.Equal(t, 5*time.Second, client.http.GetClient().Timeout)
		assert.Equal(t, "test-agent", client.http.Header.Get("User-Agent"))
	})
}

func TestSetDebug(t *testing.T) {
	client := NewClient(ClientConfig{}, nil)

	client.SetDebug(true)
	assert.True(t, client.debug)
	assert.True(t, client.http.Debug)

	client.SetDebug(false)
	assert.False(t, client.debug)
	assert.False(t, client.http.Debug)
}

func TestFetchListing(t *testing.T) {
	t.Run("passes page parameter", func(t *testing.T) {
		var gotPage string
		fixture := serveFixture(t, "listing.html")
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPage = r.URL.Query().Get("page")
			fixture(w, r)
		}))
		defer server.Close()

		client := NewClient(ClientConfig{BaseURL: server.URL}, nil)
		doc, err := client.FetchListing(context.Background(), 7)

		require.NoError(t, err)
		assert.Equal(t, "7", gotPage)
		assert.Equal(t, 1, doc.Find("div#main-content").Length())
	})

	t.Run("first listing omits page parameter", func(t *testing.T) {
		hasPage := true
		fixture := serveFixture(t, "listing.html")
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hasPage = r.URL.Query().Has("page")
			fixture(w, r)
		}))
		defer server.Close()

		client := NewClient(ClientConfig{BaseURL: server.URL}, nil)
		_, err := client.FetchFirstListing(context.Background())

		require.NoError(t, err)
		assert.False(t, hasPage)
	})

	t.Run("non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewClient(ClientConfig{BaseURL: server.URL}, nil)
		doc, err := client.FetchListing(context.Background(), 3)

		assert.Nil(t, doc)
		var fetchErr *domain.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, http.StatusServiceUnavailable, fetchErr.Status)
		assert.Equal(t, "page 3", fetchErr.Context)
	})

	t.Run("transport failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client := NewClient(ClientConfig{BaseURL: server.URL}, nil)
		_, err := client.FetchListing(context.Background(), 0)

		var fetchErr *domain.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Zero(t, fetchErr.Status)
		assert.Error(t, fetchErr.Err)
	})

	t.Run("decodes declared charset", func(t *testing.T) {
		encoded, err := charmap.Windows1251.NewEncoder().String(
			`<html><body><div id="main-content"><p>Яблоко</p></div></body></html>`)
		require.NoError(t, err)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=windows-1251")
			w.Write([]byte(encoded))
		}))
		defer server.Close()

		client := NewClient(ClientConfig{BaseURL: server.URL}, nil)
		doc, err := client.FetchListing(context.Background(), 0)

		require.NoError(t, err)
		assert.Equal(t, "Яблоко", doc.Find("p").Text())
	})
}

func TestPageCount(t *testing.T) {
	t.Run("reads pager", func(t *testing.T) {
		server := httptest.NewServer(serveFixture(t, "listing.html"))
		defer server.Close()

		client := NewClient(ClientConfig{BaseURL: server.URL}, nil)
		n, err := client.PageCount(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 84, n)
	})

	t.Run("non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewClient(ClientConfig{BaseURL: server.URL}, nil)
		_, err := client.PageCount(context.Background())

		var fetchErr *domain.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, "pages amount", fetchErr.Context)
	})

	t.Run("missing pager", func(t *testing.T) {
		server := httptest.NewServer(serveFixture(t, "no_table.html"))
		defer server.Close()

		client := NewClient(ClientConfig{BaseURL: server.URL}, nil)
		_, err := client.PageCount(context.Background())

		assert.ErrorIs(t, err, domain.ErrParse)
	})
}

func TestFetchPage(t *testing.T) {
	t.Run("extracts products", func(t *testing.T) {
		server := httptest.NewServer(serveFixture(t, "listing.html"))
		defer server.Close()

		client := NewClient(ClientConfig{BaseURL: server.URL}, nil)
		result, err := client.FetchPage(context.Background(), 82)

		require.NoError(t, err)
		assert.Len(t, result, 3)
		assert.Equal(t, 45.0, result["Яблоко"].Calories)
	})

	t.Run("table not found carries page", func(t *testing.T) {
		server := httptest.NewServer(serveFixture(t, "no_table.html"))
		defer server.Close()

		client := NewClient(ClientConfig{BaseURL: server.URL}, nil)
		_, err := client.FetchPage(context.Background(), 12)

		var notFound *domain.TableNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "page 12", notFound.Page)
	})
}
