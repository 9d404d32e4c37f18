// internal/models/user.go
package models

import (
	"time"
)

type User struct {
	ID        string     `json:"_id"`
	Name      string     `json:"name"`
	ShopName  string     `json:"shopName"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

type SubscriptionRecord struct {
	PlanType     PlanType           `json:"planType"`
	Status       SubscriptionStatus `json:"status"`
	ProductID    string             `json:"productId"`
	PurchaseDate *time.Time         `json:"purchaseDate,omitempty"`
	ExpiresDate  *time.Time         `json:"expiresDate,omitempty"`
}

// Subscription is owned by the billing provider and reaches us through the
// remote API, read-only.
type Subscription struct {
	SubscriptionRecord
	History            []SubscriptionRecord `json:"history"`
	ActiveEntitlements []string             `json:"activeEntitlements"`
}

type UserSubscription struct {
	User
	Subscription *Subscription `json:"subscription,omitempty"`
}

// EffectiveStatus treats a missing subscription as "none".
func (u UserSubscription) EffectiveStatus() SubscriptionStatus {
	if u.Subscription == nil || u.Subscription.Status == "" {
		return SubscriptionStatusNone
	}
	return u.Subscription.Status
}

// EffectivePlan treats a missing subscription as the free plan.
func (u UserSubscription) EffectivePlan() PlanType {
	if u.Subscription == nil || u.Subscription.PlanType == "" {
		return PlanTypeFree
	}
	return u.Subscription.PlanType
}
