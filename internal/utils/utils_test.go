package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proglide/admin-console/internal/models"
)

func TestSessionToken(t *testing.T) {
	SetJWTSecret("test-secret")
	now := time.Now()

	token, err := GenerateSessionToken("sess-1", "admin@proglide.in", now, now.Add(time.Hour))
	require.NoError(t, err)

	claims, err := ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims.ID)
	assert.Equal(t, "admin@proglide.in", claims.Email)

	t.Run("RejectsExpired", func(t *testing.T) {
		expired, err := GenerateSessionToken("sess-2", "admin@proglide.in", now.Add(-2*time.Hour), now.Add(-time.Hour))
		require.NoError(t, err)
		_, err = ValidateSessionToken(expired)
		assert.Error(t, err)
	})

	t.Run("RejectsOtherSecret", func(t *testing.T) {
		SetJWTSecret("rotated")
		defer SetJWTSecret("test-secret")
		_, err := ValidateSessionToken(token)
		assert.Error(t, err)
	})
}

func TestValidateProductInput(t *testing.T) {
	err := ValidateStruct(&models.ProductInput{Category: "Headphones"})
	errs := GetValidationErrors(err)
	require.Len(t, errs, 1)
	assert.Equal(t, "category", errs[0].Field)
	assert.Equal(t, "category", errs[0].Tag)

	assert.NoError(t, ValidateStruct(&models.ProductInput{
		Category:          models.CategoryBattery,
		CompatibleDevices: "Redmi 9",
		Specs:             models.Specs{"modelNo": "BN-54"},
	}))
}

func TestPageBounds(t *testing.T) {
	params := PaginationParams{Page: 2, Limit: 10}
	start, end := PageBounds(25, params)
	assert.Equal(t, 10, start)
	assert.Equal(t, 20, end)

	start, end = PageBounds(25, PaginationParams{Page: 3, Limit: 10})
	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end)

	start, end = PageBounds(5, PaginationParams{Page: 4, Limit: 10})
	assert.Equal(t, 5, start)
	assert.Equal(t, 5, end)

	result := CreatePaginationResult([]string{}, 25, params)
	assert.Equal(t, 3, result.TotalPages)
}
