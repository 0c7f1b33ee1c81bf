package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/macrolens/calorizator/internal/domain"
)

// Output file names
const (
	allPagesFileName = "calorizator.json"
	pageFileFormat   = "calorizator_page_%d.json"
)

// DumpOptions selects what DumpToFile writes. Page takes precedence over
// AllPages.
type DumpOptions struct {
	Page     *int
	AllPages bool
}

// DefaultDumpOptions dumps every page into one file
func DefaultDumpOptions() DumpOptions {
	return DumpOptions{AllPages: true}
}

// PageFileName returns the output file name of a single-page dump
func PageFileName(page int) string {
	return fmt.Sprintf(pageFileFormat, page)
}

// Parser searches and dumps the calorizator product listing
type Parser struct {
	source     domain.ListingSource
	writer     domain.ResultWriter
	alphabet   *AlphabetIndex
	pageAmount int
	logger     *zap.Logger
}

// NewParser creates a parser. The page amount is fetched immediately, so an
// unreachable or malformed site fails construction.
func NewParser(
	ctx context.Context,
	source domain.ListingSource,
	writer domain.ResultWriter,
	logger *zap.Logger,
) (*Parser, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	pageAmount, err := source.PageCount(ctx)
	if err != nil {
		return nil, err
	}

	logger.Debug("parser ready", zap.Int("pages", pageAmount))
	return &Parser{
		source:     source,
		writer:     writer,
		alphabet:   NewAlphabetIndex(),
		pageAmount: pageAmount,
		logger:     logger,
	}, nil
}

// PageAmount returns the number of listing pages found at construction
func (p *Parser) PageAmount() int {
	return p.pageAmount
}

// Alphabet returns the letter index used to bound searches
func (p *Parser) Alphabet() *AlphabetIndex {
	return p.alphabet
}

// ParsePage fetches and extracts a single listing page
func (p *Parser) ParsePage(ctx context.Context, page int) (domain.PageResult, error) {
	return p.source.FetchPage(ctx, page)
}

// SearchProducts finds products whose name contains query, ignoring case.
// The query is trimmed and runs of whitespace inside it collapse to a single
// space, so "яблоко  печеное" matches "Яблоко печеное".
// Only the pages recorded for the query's first letter are scanned.
func (p *Parser) SearchProducts(ctx context.Context, query string) (map[string]domain.SearchMatch, error) {
	query = normalizeQuery(query)
	letter, ok := searchLetter(query)
	if !ok {
		return nil, fmt.Errorf("%w: empty search query", domain.ErrInvalidRequest)
	}

	pages, err := p.alphabet.RangeFor(letter)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("searching products",
		zap.String("query", query), zap.String("letter", string(letter)), zap.Stringer("pages", pages))

	matches := map[string]domain.SearchMatch{}
	for _, page := range pages.Pages() {
		result, err := p.source.FetchPage(ctx, page)
		if err != nil {
			return nil, err
		}
		for name, record := range result {
			if matchesQuery(name, query) {
				matches[name] = domain.SearchMatch{Name: name, Data: record, PageNumber: page}
			}
		}
	}

	p.logger.Debug("search finished", zap.String("query", query), zap.Int("matches", len(matches)))
	return matches, nil
}

// DumpToFile writes either a single page or every page to JSON and
// returns the written path. It returns "" when opts selects nothing.
func (p *Parser) DumpToFile(ctx context.Context, opts DumpOptions) (string, error) {
	if opts.Page != nil {
		return p.DumpPage(ctx, *opts.Page)
	}
	if opts.AllPages {
		return p.DumpAll(ctx)
	}
	return "", nil
}

// DumpPage writes the products of one page to calorizator_page_<N>.json
func (p *Parser) DumpPage(ctx context.Context, page int) (string, error) {
	p.logger.Info("writing page", zap.Int("page", page))

	result, err := p.source.FetchPage(ctx, page)
	if err != nil {
		return "", err
	}
	return p.writer.Write(PageFileName(page), result)
}

// DumpAll merges every listing page into calorizator.json. Later pages
// overwrite same-named products of earlier ones. Any page failure aborts
// the dump before the file is written.
func (p *Parser) DumpAll(ctx context.Context) (string, error) {
	acc := domain.PageResult{}
	for page := 0; page < p.pageAmount; page++ {
		result, err := p.source.FetchPage(ctx, page)
		if err != nil {
			return "", err
		}
		acc.Merge(result)
	}

	p.logger.Debug("collected all pages", zap.Int("pages", p.pageAmount), zap.Int("products", len(acc)))
	return p.writer.Write(allPagesFileName, acc)
}
