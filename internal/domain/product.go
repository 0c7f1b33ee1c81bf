package domain

// ProductRecord holds the macronutrients of one product, per 100 g
type ProductRecord struct {
	Protein       float64 `json:"protein"`
	Fat           float64 `json:"fat"`
	Carbohydrates float64 `json:"carbohydrates"`
	Calories      float64 `json:"calories"` // kcal
}

// PageResult maps product name to its record for one or more listing pages
type PageResult map[string]ProductRecord

// Merge copies every entry of other into r, overwriting same-named products
func (r PageResult) Merge(other PageResult) {
	for name, record := range other {
		r[name] = record
	}
}

// SearchMatch is a product found by name search, tagged with its source page
type SearchMatch struct {
	Name       string        `json:"name"`
	Data       ProductRecord `json:"data"`
	PageNumber int           `json:"page_number"`
}
