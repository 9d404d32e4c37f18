// internal/search/engine.go
package search

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/proglide/admin-console/internal/catalog"
	"github.com/proglide/admin-console/internal/models"
	"github.com/proglide/admin-console/internal/tags"
)

// MaxSuggestions caps the suggestion list.
const MaxSuggestions = 5

type SortOrder string

const (
	SortDefault    SortOrder = "default"
	SortNameAsc    SortOrder = "name-asc"
	SortNameDesc   SortOrder = "name-desc"
	SortHeightAsc  SortOrder = "height-asc"
	SortHeightDesc SortOrder = "height-desc"
)

var ErrInvalidSort = errors.New("invalid sort order")

// ParseSort maps a query value to a sort order; empty means default.
func ParseSort(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return SortDefault, nil
	case SortDefault, SortNameAsc, SortNameDesc, SortHeightAsc, SortHeightDesc:
		return o, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSort, s)
	}
}

// ValidFor reports whether the order applies to the category. Height orders
// exist only for screen guards.
func (o SortOrder) ValidFor(category models.Category) bool {
	if o == SortHeightAsc || o == SortHeightDesc {
		return category == models.CategoryScreenGuard
	}
	return true
}

// Normalize strips every whitespace rune and lowercases the rest.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Filter keeps the products matching the query. Exact matches on the display
// name or on a single compatible device win outright; otherwise substring
// matches on the name or the whole device string are returned. An empty query
// returns the input unchanged.
func Filter(products []models.Product, query string) []models.Product {
	if strings.TrimSpace(query) == "" {
		return products
	}
	q := Normalize(query)

	var exact, partial []models.Product
	for _, p := range products {
		name := Normalize(catalog.DisplayName(p.Specs))

		if name == q || hasExactDevice(p.CompatibleDevices, q) {
			exact = append(exact, p)
		}
		if strings.Contains(name, q) || strings.Contains(Normalize(p.CompatibleDevices), q) {
			partial = append(partial, p)
		}
	}

	if len(exact) > 0 {
		return exact
	}
	if partial == nil {
		return []models.Product{}
	}
	return partial
}

func hasExactDevice(devices, q string) bool {
	for _, d := range strings.Split(devices, ",") {
		if Normalize(d) == q {
			return true
		}
	}
	return false
}

// Sorter orders product lists. A collator is not safe for concurrent use, so
// one is built per Sort call from the configured language.
type Sorter struct {
	lang language.Tag
}

func NewSorter(lang language.Tag) *Sorter {
	return &Sorter{lang: lang}
}

// Sort returns a stably ordered copy of products.
func (s *Sorter) Sort(products []models.Product, order SortOrder) []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)

	switch order {
	case SortNameAsc, SortNameDesc:
		col := collate.New(s.lang)
		names := make([]string, len(out))
		for i := range out {
			names[i] = catalog.DisplayName(out[i].Specs)
		}
		idx := indexes(len(out))
		sort.SliceStable(idx, func(a, b int) bool {
			c := col.CompareString(names[idx[a]], names[idx[b]])
			if order == SortNameDesc {
				return c > 0
			}
			return c < 0
		})
		return permute(out, idx)
	case SortHeightAsc, SortHeightDesc:
		sort.SliceStable(out, func(a, b int) bool {
			ha, hb := Height(out[a]), Height(out[b])
			if order == SortHeightDesc {
				return ha > hb
			}
			return ha < hb
		})
	}
	return out
}

// Height parses the height spec; anything but a plain number counts as 0.
func Height(p models.Product) float64 {
	h, _ := catalog.ParseNumber(p.Specs.Get(models.SpecHeight))
	return h
}

func indexes(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

func permute(products []models.Product, idx []int) []models.Product {
	out := make([]models.Product, len(idx))
	for i, j := range idx {
		out[i] = products[j]
	}
	return out
}

// Suggest collects display names and then individual devices containing the
// query, compared lowercase without stripping whitespace. Duplicates are
// dropped in first-seen order and the list is capped at MaxSuggestions.
func Suggest(products []models.Product, query string) []string {
	if strings.TrimSpace(query) == "" {
		return []string{}
	}
	q := strings.ToLower(query)

	seen := make(map[string]struct{})
	out := make([]string, 0, MaxSuggestions)
	add := func(s string) bool {
		if _, ok := seen[s]; ok {
			return len(out) < MaxSuggestions
		}
		seen[s] = struct{}{}
		out = append(out, s)
		return len(out) < MaxSuggestions
	}

	for _, p := range products {
		name := catalog.DisplayName(p.Specs)
		if strings.Contains(strings.ToLower(name), q) && !add(name) {
			return out
		}
	}
	for _, p := range products {
		for _, d := range tags.Parse(p.CompatibleDevices) {
			if strings.Contains(strings.ToLower(d), q) && !add(d) {
				return out
			}
		}
	}
	return out
}

type Query struct {
	Text string
	Sort SortOrder
}

type Result struct {
	Products    []models.Product
	Suggestions []string
}

// Engine runs filter, sort and suggestion over one product list.
type Engine struct {
	sorter *Sorter
}

func NewEngine(lang language.Tag) *Engine {
	return &Engine{sorter: NewSorter(lang)}
}

func (e *Engine) Run(products []models.Product, q Query) Result {
	filtered := Filter(products, q.Text)
	return Result{
		Products:    e.sorter.Sort(filtered, q.Sort),
		Suggestions: Suggest(products, q.Text),
	}
}
