package calorizator

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/macrolens/calorizator/internal/domain"
)

// Selectors of the listing page markup
const (
	mainContentSelector = "div#main-content"
	pagerLastSelector   = "li.pager-last"
)

// Column indices of a product row
const (
	columnName = iota + 1
	columnProtein
	columnFat
	columnCarbohydrates
	columnCalories
)

// headerSkip is the number of leading header cells before the nutrient labels
const headerSkip = 2

// nutrientHeader is the header signature of the product table: protein, fat,
// carbohydrates, calories.
var nutrientHeader = []string{"Бел, г", "Жир, г", "Угл, г", "Кал, ккал"}

// Extractor converts listing documents into product records
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor creates a new table extractor
func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger}
}

// MainContent returns the page's main content container
func MainContent(doc *goquery.Document) (*goquery.Selection, error) {
	main := doc.Find(mainContentSelector).First()
	if main.Length() == 0 {
		return nil, &domain.ParseError{Element: mainContentSelector}
	}
	return main, nil
}

// MatchesHeader reports whether labels equal the nutrient header signature
func MatchesHeader(labels []string) bool {
	return slices.Equal(labels, nutrientHeader)
}

// headerLabels reads the link texts of the table's first header row,
// skipping the leading columns. ok is false when the markup does not have
// the expected shape.
func headerLabels(table *goquery.Selection) (labels []string, ok bool) {
	row := table.Find("thead").First().Find("tr").First()
	if row.Length() == 0 {
		return nil, false
	}

	cells := row.Find("th")
	if cells.Length() <= headerSkip {
		return nil, false
	}

	ok = true
	cells.Slice(headerSkip, goquery.ToEnd).EachWithBreak(func(_ int, th *goquery.Selection) bool {
		link := th.Find("a").First()
		if link.Length() == 0 {
			ok = false
			return false
		}
		labels = append(labels, strings.TrimSpace(link.Text()))
		return true
	})
	return labels, ok
}

// findTable returns the first table of main content whose header matches
func findTable(main *goquery.Selection) *goquery.Selection {
	var found *goquery.Selection
	main.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		labels, ok := headerLabels(table)
		if ok && MatchesHeader(labels) {
			found = table
			return false
		}
		return true
	})
	return found
}

// ExtractTable parses the product table of a listing page. page names the
// page in errors.
func (e *Extractor) ExtractTable(doc *goquery.Document, page string) (domain.PageResult, error) {
	main, err := MainContent(doc)
	if err != nil {
		return nil, err
	}

	table := findTable(main)
	if table == nil {
		return nil, &domain.TableNotFoundError{Page: page}
	}

	result := domain.PageResult{}
	table.Find("tbody").First().ChildrenFiltered("tr").Each(func(i int, row *goquery.Selection) {
		cells := row.ChildrenFiltered("td")
		if cells.Length() <= columnCalories {
			e.logger.Debug("skipping short row",
				zap.String("page", page), zap.Int("row", i), zap.Int("cells", cells.Length()))
			return
		}

		link := cells.Eq(columnName).Find("a").First()
		name := strings.TrimSpace(link.Text())
		if link.Length() == 0 || name == "" {
			e.logger.Debug("skipping row without product name",
				zap.String("page", page), zap.Int("row", i))
			return
		}

		result[name] = domain.ProductRecord{
			Protein:       ParseFloat(cells.Eq(columnProtein).Text()),
			Fat:           ParseFloat(cells.Eq(columnFat).Text()),
			Carbohydrates: ParseFloat(cells.Eq(columnCarbohydrates).Text()),
			Calories:      ParseFloat(cells.Eq(columnCalories).Text()),
		}
	})

	return result, nil
}

// ParseFloat parses a numeric cell. Unparseable or non-finite input yields 0.
func ParseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0.0
	}
	return v
}

// pagerLast reads the last page index from the pager of main content
func pagerLast(doc *goquery.Document) (int, error) {
	main, err := MainContent(doc)
	if err != nil {
		return 0, err
	}

	pager := main.Find(pagerLastSelector).First()
	if pager.Length() == 0 {
		return 0, &domain.ParseError{Element: pagerLastSelector}
	}

	n, err := strconv.Atoi(strings.TrimSpace(pager.Text()))
	if err != nil {
		return 0, &domain.ParseError{Element: pagerLastSelector, Err: err}
	}
	return n, nil
}
