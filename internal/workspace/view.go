// internal/workspace/view.go
package workspace

import (
	"errors"
	"sync"
	"time"

	"github.com/proglide/admin-console/internal/models"
)

// ErrStaleResponse means a newer load started after the ticket was issued.
var ErrStaleResponse = errors.New("stale product list response")

// Ticket identifies one load of a category's product list.
type Ticket struct {
	Category   models.Category
	Generation uint64
}

// View is the product list one session is looking at. Each category switch
// or refresh begins a new generation and only the newest one may commit.
type View struct {
	mu         sync.Mutex
	category   models.Category
	products   []models.Product
	generation uint64
	loaded     bool
	touched    time.Time
	now        func() time.Time
}

func newView(now func() time.Time) *View {
	return &View{now: now, touched: now()}
}

func (v *View) Begin(category models.Category) Ticket {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.generation++
	if v.category != category {
		v.category = category
		v.products = nil
		v.loaded = false
	}
	v.touched = v.now()
	return Ticket{Category: category, Generation: v.generation}
}

func (v *View) Commit(t Ticket, products []models.Product) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if t.Generation != v.generation || t.Category != v.category {
		return ErrStaleResponse
	}
	v.products = cloneProducts(products)
	v.loaded = true
	v.touched = v.now()
	return nil
}

// Loaded returns the committed list for category, if there is one.
func (v *View) Loaded(category models.Category) ([]models.Product, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.touched = v.now()
	if !v.loaded || v.category != category {
		return nil, false
	}
	return cloneProducts(v.products), true
}

// Replace swaps in an updated product by id.
func (v *View) Replace(p models.Product) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.accepts(p.Category) {
		return false
	}
	for i := range v.products {
		if v.products[i].ID == p.ID {
			v.products[i] = p
			v.touched = v.now()
			return true
		}
	}
	return false
}

// Prepend puts a newly created product at the head of the list.
func (v *View) Prepend(p models.Product) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.accepts(p.Category) {
		return false
	}
	v.products = append([]models.Product{p}, v.products...)
	v.touched = v.now()
	return true
}

func (v *View) Remove(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.loaded {
		return false
	}
	for i := range v.products {
		if v.products[i].ID == id {
			v.products = append(v.products[:i:i], v.products[i+1:]...)
			v.touched = v.now()
			return true
		}
	}
	return false
}

func (v *View) lastTouched() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.touched
}

func (v *View) accepts(category models.Category) bool {
	return v.loaded && v.category == category
}

func cloneProducts(in []models.Product) []models.Product {
	out := make([]models.Product, len(in))
	for i, p := range in {
		p.Specs = p.Specs.Clone()
		out[i] = p
	}
	return out
}
