// internal/models/product.go
package models

import (
	"strings"
	"time"
)

// Specs maps a spec field name to its raw string value.
type Specs map[string]string

func (s Specs) Get(field SpecField) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(s[string(field)])
}

func (s Specs) Clone() Specs {
	out := make(Specs, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

type Product struct {
	ID                string     `json:"_id"`
	Category          Category   `json:"category"`
	CompatibleDevices string     `json:"compatibleDevices"`
	Specs             Specs      `json:"specs"`
	CreatedAt         *time.Time `json:"createdAt,omitempty"`
	UpdatedAt         *time.Time `json:"updatedAt,omitempty"`
}

// ProductInput is the body sent to the remote API on create and update.
type ProductInput struct {
	Category          Category `json:"category" validate:"required,category"`
	CompatibleDevices string   `json:"compatibleDevices" validate:"max=2000"`
	Specs             Specs    `json:"specs" validate:"dive,keys,max=64,endkeys,max=255"`
}
