package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macrolens/calorizator/config"
	"github.com/macrolens/calorizator/internal/domain"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockProductService is a mock implementation of ProductService
type mockProductService struct {
	pageAmount  int
	pages       map[int]domain.PageResult
	pageErr     error
	matches     map[string]domain.SearchMatch
	searchErr   error
	lastQuery   string
	lastPageHit int
}

func (m *mockProductService) PageAmount() int {
	return m.pageAmount
}

func (m *mockProductService) ParsePage(ctx context.Context, page int) (domain.PageResult, error) {
	m.lastPageHit = page
	if m.pageErr != nil {
		return nil, m.pageErr
	}
	return m.pages[page], nil
}

func (m *mockProductService) SearchProducts(ctx context.Context, query string) (map[string]domain.SearchMatch, error) {
	m.lastQuery = query
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.matches, nil
}

// setupTestRouter creates a test router with default configuration
func setupTestRouter(products ProductService) *gin.Engine {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
	}
	return SetupRouter(cfg, NewHandler(products, nil), nil)
}

func doGet(router *gin.Engine, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheckEndpoint(t *testing.T) {
	w := doGet(setupTestRouter(nil), "/health")

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response["status"])
	assert.Equal(t, "calorizator-parser", response["service"])
	assert.NotEmpty(t, response["version"])
}

func TestSearchProductsEndpoint(t *testing.T) {
	apple := domain.ProductRecord{Protein: 0.4, Fat: 0.4, Carbohydrates: 9.8, Calories: 47}

	t.Run("returns matches", func(t *testing.T) {
		products := &mockProductService{
			matches: map[string]domain.SearchMatch{
				"Яблоко": {Name: "Яблоко", Data: apple, PageNumber: 82},
			},
		}

		w := doGet(setupTestRouter(products), "/api/v1/products/search?q="+url.QueryEscape("ябло"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ябло", products.lastQuery)

		var response map[string]domain.SearchMatch
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 82, response["Яблоко"].PageNumber)
		assert.Equal(t, apple, response["Яблоко"].Data)
	})

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"blank query", domain.ErrInvalidRequest, http.StatusBadRequest},
		{"unknown letter", &domain.UnknownLetterError{Letter: 'Й'}, http.StatusNotFound},
		{"site unavailable", &domain.FetchError{Status: 503, Context: "page 82"}, http.StatusBadGateway},
		{"markup changed", &domain.TableNotFoundError{Page: "page 82"}, http.StatusBadGateway},
		{"main content missing", &domain.ParseError{Element: "div#main-content"}, http.StatusBadGateway},
		{"cancelled", context.Canceled, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := &mockProductService{searchErr: tt.err}

			w := doGet(setupTestRouter(products), "/api/v1/products/search?q=x")

			assert.Equal(t, tt.wantStatus, w.Code)
			var response map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.err.Error(), response["error"])
		})
	}

	t.Run("not configured", func(t *testing.T) {
		w := doGet(setupTestRouter(nil), "/api/v1/products/search?q=x")
		assert.Equal(t, http.StatusNotImplemented, w.Code)
	})
}

func TestPagesEndpoints(t *testing.T) {
	products := &mockProductService{
		pageAmount: 84,
		pages: map[int]domain.PageResult{
			3: {"Брокколи": {Protein: 2.8, Fat: 0.4, Carbohydrates: 5.2, Calories: 34}},
		},
	}
	router := setupTestRouter(products)

	t.Run("page amount", func(t *testing.T) {
		w := doGet(router, "/api/v1/pages")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"pages": 84}`, w.Body.String())
	})

	t.Run("single page", func(t *testing.T) {
		w := doGet(router, "/api/v1/pages/3")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 3, products.lastPageHit)

		var response domain.PageResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, products.pages[3], response)
	})

	t.Run("non-integer page", func(t *testing.T) {
		w := doGet(router, "/api/v1/pages/three")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("page out of range", func(t *testing.T) {
		for _, page := range []string{"-1", "84", "1000"} {
			w := doGet(router, "/api/v1/pages/"+page)
			assert.Equal(t, http.StatusNotFound, w.Code, "page %s", page)
		}
	})

	t.Run("upstream failure", func(t *testing.T) {
		failing := &mockProductService{
			pageAmount: 84,
			pageErr:    &domain.FetchError{Status: 500, Context: "page 5"},
		}

		w := doGet(setupTestRouter(failing), "/api/v1/pages/5")
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}
