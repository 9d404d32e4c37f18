// internal/services/upstream.go
package services

import (
	"context"

	"github.com/proglide/admin-console/internal/models"
)

// ProductAPI is the product half of the remote API.
type ProductAPI interface {
	ListProducts(ctx context.Context, category models.Category) ([]models.Product, error)
	CreateProduct(ctx context.Context, token string, input *models.ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, token, id string, input *models.ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, token, id string) error
}

// UserAPI is the read-only user half of the remote API.
type UserAPI interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	ListSubscriptions(ctx context.Context) ([]models.UserSubscription, error)
}
