// internal/models/common.go
package models

import (
	"strings"
)

// Enums
type Category string

const (
	CategoryScreenGuard  Category = "Screen Guard"
	CategoryPhoneCase    Category = "Phone Case"
	CategoryComboDisplay Category = "Combo/Display"
	CategoryCcBoard      Category = "CC Board"
	CategoryBattery      Category = "Battery"
	CategoryCenterPanel  Category = "Center Panel"
)

// Categories lists every category in sidebar order.
var Categories = []Category{
	CategoryScreenGuard,
	CategoryPhoneCase,
	CategoryComboDisplay,
	CategoryCcBoard,
	CategoryBattery,
	CategoryCenterPanel,
}

var categorySlugs = map[Category]string{
	CategoryScreenGuard:  "screen-guard",
	CategoryPhoneCase:    "phone-case",
	CategoryComboDisplay: "combo",
	CategoryCcBoard:      "cc-board",
	CategoryBattery:      "battery",
	CategoryCenterPanel:  "center-panel",
}

var categoryAliases = map[string]Category{
	"screenguard":  CategoryScreenGuard,
	"phonecase":    CategoryPhoneCase,
	"combodisplay": CategoryComboDisplay,
	"ccboard":      CategoryCcBoard,
	"battery":      CategoryBattery,
	"centerpanel":  CategoryCenterPanel,
}

// Slug is the URL path segment used by the dashboard routes.
func (c Category) Slug() string {
	return categorySlugs[c]
}

func (c Category) Valid() bool {
	_, ok := categorySlugs[c]
	return ok
}

// ParseCategory accepts the wire name ("Screen Guard"), the route slug
// ("screen-guard") or the enum spelling ("ScreenGuard"), case-insensitively.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) || strings.EqualFold(c.Slug(), s) {
			return c, true
		}
	}

	key := strings.ToLower(s)
	key = strings.NewReplacer(" ", "", "-", "", "_", "", "/", "").Replace(key)
	if c, ok := categoryAliases[key]; ok {
		return c, true
	}
	return "", false
}

type SpecField string

const (
	SpecOriginalDrawingModel SpecField = "originalDrawingModel"
	SpecHeight               SpecField = "height"
	SpecWidth                SpecField = "width"
	SpecRadiusTopLeft        SpecField = "radiusTopLeft"
	SpecRadiusTopRight       SpecField = "radiusTopRight"
	SpecRadiusBottomLeft     SpecField = "radiusBottomLeft"
	SpecRadiusBottomRight    SpecField = "radiusBottomRight"
	SpecBaseModel            SpecField = "baseModel"
	SpecModelNo              SpecField = "modelNo"
	SpecBrandName            SpecField = "brandName"
)

// SpecFields is the canonical order of every recognised spec field.
var SpecFields = []SpecField{
	SpecOriginalDrawingModel,
	SpecHeight,
	SpecWidth,
	SpecRadiusTopLeft,
	SpecRadiusTopRight,
	SpecRadiusBottomLeft,
	SpecRadiusBottomRight,
	SpecBaseModel,
	SpecModelNo,
	SpecBrandName,
}

func (f SpecField) Known() bool {
	for _, known := range SpecFields {
		if known == f {
			return true
		}
	}
	return false
}

type PlanType string

const (
	PlanTypeFree    PlanType = "Free"
	PlanTypePro     PlanType = "Pro"
	PlanTypePremium PlanType = "Premium"
)

type SubscriptionStatus string

const (
	SubscriptionStatusActive  SubscriptionStatus = "active"
	SubscriptionStatusExpired SubscriptionStatus = "expired"
	SubscriptionStatusNone    SubscriptionStatus = "none"
)
