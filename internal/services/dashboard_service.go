// internal/services/dashboard_service.go
package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/proglide/admin-console/internal/models"
)

type DashboardService struct {
	products ProductAPI
	users    UserAPI
}

type CategoryCount struct {
	Category models.Category `json:"category"`
	Slug     string          `json:"slug"`
	Products int             `json:"products"`
}

type DashboardStats struct {
	TotalProducts int                               `json:"total_products"`
	Categories    []CategoryCount                   `json:"categories"`
	TotalUsers    int                               `json:"total_users"`
	Plans         map[models.PlanType]int           `json:"plans"`
	Statuses      map[models.SubscriptionStatus]int `json:"statuses"`
}

func NewDashboardService(products ProductAPI, users UserAPI) *DashboardService {
	return &DashboardService{products: products, users: users}
}

// Stats counts products per category and users per plan and status. All
// remote reads run concurrently; the first failure cancels the rest.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	g, ctx := errgroup.WithContext(ctx)

	counts := make([]CategoryCount, len(models.Categories))
	for i, c := range models.Categories {
		i, c := i, c
		g.Go(func() error {
			products, err := s.products.ListProducts(ctx, c)
			if err != nil {
				return fmt.Errorf("failed to count %s products: %w", c, err)
			}
			counts[i] = CategoryCount{Category: c, Slug: c.Slug(), Products: len(products)}
			return nil
		})
	}

	var subscribers []models.UserSubscription
	g.Go(func() error {
		users, err := s.users.ListSubscriptions(ctx)
		if err != nil {
			return fmt.Errorf("failed to load subscriptions: %w", err)
		}
		subscribers = users
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		Categories: counts,
		TotalUsers: len(subscribers),
		Plans:      make(map[models.PlanType]int),
		Statuses:   make(map[models.SubscriptionStatus]int),
	}
	for _, c := range counts {
		stats.TotalProducts += c.Products
	}
	for _, u := range subscribers {
		stats.Plans[u.EffectivePlan()]++
		stats.Statuses[u.EffectiveStatus()]++
	}
	return stats, nil
}
