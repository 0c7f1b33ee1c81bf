package calorizator

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"github.com/macrolens/calorizator/internal/domain"
)

// DefaultBaseURL is the product listing of calorizator.ru
const DefaultBaseURL = "https://calorizator.ru/product/all"

// ClientConfig holds settings of the listing client
type ClientConfig struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Client fetches and parses calorizator listing pages
type Client struct {
	http      *resty.Client
	baseURL   string
	extractor *Extractor
	logger    *zap.Logger
	debug     bool
}

// NewClient creates a new listing client
func NewClient(cfg ClientConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "calorizator-parser/1.0"
	}

	httpClient := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", cfg.UserAgent).
		SetLogger(logger.Sugar())

	return &Client{
		http:      httpClient,
		baseURL:   cfg.BaseURL,
		extractor: NewExtractor(logger),
		logger:    logger,
	}
}

// SetDebug enables or disables request/response dumps
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
	c.http.SetDebug(debug)
}

// fetch executes a GET against the listing URL and parses the response body.
// what names the request in errors ("page 3", "pages amount").
func (c *Client) fetch(ctx context.Context, query map[string]string, what string) (*goquery.Document, error) {
	c.logger.Debug("fetching listing", zap.String("target", what))

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(c.baseURL)
	if err != nil {
		return nil, &domain.FetchError{Context: what, Err: err}
	}

	if resp.StatusCode() != http.StatusOK {
		c.logger.Warn("listing request failed",
			zap.String("target", what), zap.Int("status", resp.StatusCode()))
		return nil, &domain.FetchError{Status: resp.StatusCode(), Context: what}
	}

	body, err := charset.NewReader(bytes.NewReader(resp.Body()), resp.Header().Get("Content-Type"))
	if err != nil {
		return nil, &domain.ParseError{Element: "response encoding", Err: err}
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, &domain.ParseError{Element: "html document", Err: err}
	}
	return doc, nil
}

// FetchFirstListing fetches the listing without a page parameter
func (c *Client) FetchFirstListing(ctx context.Context) (*goquery.Document, error) {
	return c.fetch(ctx, nil, "pages amount")
}

// FetchListing fetches the listing page with the given index
func (c *Client) FetchListing(ctx context.Context, page int) (*goquery.Document, error) {
	return c.fetch(ctx, map[string]string{"page": strconv.Itoa(page)}, pageContext(page))
}

// PageCount returns the number of listing pages reported by the pager
func (c *Client) PageCount(ctx context.Context) (int, error) {
	doc, err := c.FetchFirstListing(ctx)
	if err != nil {
		return 0, err
	}

	n, err := pagerLast(doc)
	if err != nil {
		return 0, fmt.Errorf("pages amount: %w", err)
	}

	c.logger.Debug("listing pages", zap.Int("count", n))
	return n, nil
}

// FetchPage fetches one listing page and extracts its product table
func (c *Client) FetchPage(ctx context.Context, page int) (domain.PageResult, error) {
	doc, err := c.FetchListing(ctx, page)
	if err != nil {
		return nil, err
	}

	result, err := c.extractor.ExtractTable(doc, pageContext(page))
	if err != nil {
		return nil, err
	}

	c.logger.Debug("extracted page", zap.Int("page", page), zap.Int("products", len(result)))
	return result, nil
}

func pageContext(page int) string {
	return fmt.Sprintf("page %d", page)
}
