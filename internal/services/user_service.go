// internal/services/user_service.go
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/proglide/admin-console/internal/models"
	"github.com/proglide/admin-console/internal/utils"
)

type UserService struct {
	api UserAPI
}

func NewUserService(api UserAPI) *UserService {
	return &UserService{api: api}
}

// ListUsers pages through the users whose name or shop name contains the
// search text, case-insensitively.
func (s *UserService) ListUsers(ctx context.Context, params utils.PaginationParams) (*utils.PaginationResult, error) {
	users, err := s.api.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	filtered := FilterUsers(users, params.Search)
	start, end := utils.PageBounds(len(filtered), params)
	result := utils.CreatePaginationResult(filtered[start:end], int64(len(filtered)), params)
	return &result, nil
}

func (s *UserService) ListSubscriptions(ctx context.Context) ([]models.UserSubscription, error) {
	users, err := s.api.ListSubscriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscriptions: %w", err)
	}
	return users, nil
}

func FilterUsers(users []models.User, search string) []models.User {
	q := strings.ToLower(strings.TrimSpace(search))
	if q == "" {
		return users
	}

	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Name), q) || strings.Contains(strings.ToLower(u.ShopName), q) {
			out = append(out, u)
		}
	}
	return out
}
