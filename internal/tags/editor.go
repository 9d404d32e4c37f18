// internal/tags/editor.go
package tags

import (
	"fmt"
	"strings"

	"github.com/proglide/admin-console/internal/catalog"
	"github.com/proglide/admin-console/internal/models"
)

// Separator joins device tags in the stored compatibleDevices field.
const Separator = ","

// ConflictError reports a device already claimed by another product.
type ConflictError struct {
	Device      string
	ProductID   string
	ProductName string
	Category    models.Category
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("device %q is already listed on %s (%s)", e.Device, e.ProductName, e.Category)
}

// Parse splits a stored device list, dropping blank segments.
func Parse(s string) []string {
	parts := strings.Split(s, Separator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Dedupe drops later tags that match an earlier one case-insensitively.
func Dedupe(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		dup := false
		for _, seen := range out {
			if sameDevice(seen, t) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, t)
		}
	}
	return out
}

func Join(tags []string) string {
	return strings.Join(tags, Separator)
}

func sameDevice(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// FindConflict looks for a product other than editingID that already lists
// device.
func FindConflict(device string, products []models.Product, editingID string) *ConflictError {
	for _, p := range products {
		if editingID != "" && p.ID == editingID {
			continue
		}
		for _, d := range Parse(p.CompatibleDevices) {
			if sameDevice(d, device) {
				return &ConflictError{
					Device:      strings.TrimSpace(device),
					ProductID:   p.ID,
					ProductName: catalog.DisplayName(p.Specs),
					Category:    p.Category,
				}
			}
		}
	}
	return nil
}

// FindConflicts checks every device of a list being saved.
func FindConflicts(devices string, products []models.Product, editingID string) []*ConflictError {
	var conflicts []*ConflictError
	for _, d := range Parse(devices) {
		if c := FindConflict(d, products, editingID); c != nil {
			conflicts = append(conflicts, c)
		}
	}
	return conflicts
}

// Add appends value to the current device list. A device claimed by another
// product is rejected with a *ConflictError and the list is returned
// untouched; a blank value or one already in the list is a no-op.
func Add(current, value string, products []models.Product, editingID string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return current, nil
	}

	if c := FindConflict(value, products, editingID); c != nil {
		return current, c
	}

	existing := Parse(current)
	for _, t := range existing {
		if strings.EqualFold(t, value) {
			return current, nil
		}
	}
	return Join(append(existing, value)), nil
}

// Remove drops the first tag exactly equal to value.
func Remove(current, value string) string {
	existing := Parse(current)
	for i, t := range existing {
		if t == value {
			return Join(append(existing[:i], existing[i+1:]...))
		}
	}
	return Join(existing)
}
