package workspace

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proglide/admin-console/internal/models"
)

func product(id string, c models.Category) models.Product {
	return models.Product{ID: id, Category: c, Specs: models.Specs{"modelNo": id}}
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	v := NewRegistry().Get("s1")

	first := v.Begin(models.CategoryBattery)
	second := v.Begin(models.CategoryPhoneCase)

	require.NoError(t, v.Commit(second, []models.Product{product("case-1", models.CategoryPhoneCase)}))
	assert.ErrorIs(t, v.Commit(first, []models.Product{product("bat-1", models.CategoryBattery)}), ErrStaleResponse)

	got, ok := v.Loaded(models.CategoryPhoneCase)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "case-1", got[0].ID)

	_, ok = v.Loaded(models.CategoryBattery)
	assert.False(t, ok)
}

func TestRefreshSameCategory(t *testing.T) {
	v := NewRegistry().Get("s1")

	old := v.Begin(models.CategoryBattery)
	fresh := v.Begin(models.CategoryBattery)
	assert.ErrorIs(t, v.Commit(old, nil), ErrStaleResponse)
	require.NoError(t, v.Commit(fresh, []models.Product{}))

	got, ok := v.Loaded(models.CategoryBattery)
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestOptimisticSync(t *testing.T) {
	v := NewRegistry().Get("s1")
	tk := v.Begin(models.CategoryBattery)
	require.NoError(t, v.Commit(tk, []models.Product{
		product("a", models.CategoryBattery),
		product("b", models.CategoryBattery),
	}))

	assert.True(t, v.Prepend(product("c", models.CategoryBattery)))
	assert.False(t, v.Prepend(product("x", models.CategoryPhoneCase)))

	updated := product("a", models.CategoryBattery)
	updated.CompatibleDevices = "Redmi 9"
	assert.True(t, v.Replace(updated))
	assert.False(t, v.Replace(product("zzz", models.CategoryBattery)))

	assert.True(t, v.Remove("b"))
	assert.False(t, v.Remove("b"))

	got, _ := v.Loaded(models.CategoryBattery)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
	assert.Equal(t, "Redmi 9", got[1].CompatibleDevices)
}

func TestLoadedReturnsCopy(t *testing.T) {
	v := NewRegistry().Get("s1")
	tk := v.Begin(models.CategoryBattery)
	require.NoError(t, v.Commit(tk, []models.Product{product("a", models.CategoryBattery)}))

	got, _ := v.Loaded(models.CategoryBattery)
	got[0].Specs["modelNo"] = "changed"

	again, _ := v.Loaded(models.CategoryBattery)
	assert.Equal(t, "a", again[0].Specs.Get("modelNo"))
}

func TestRegistryDropAndSweep(t *testing.T) {
	r := NewRegistry()
	clock := time.Now()
	r.now = func() time.Time { return clock }

	a := r.Get("a")
	assert.Same(t, a, r.Get("a"))
	r.Get("b")
	assert.Equal(t, 2, r.Len())

	r.Drop("b")
	assert.Equal(t, 1, r.Len())

	clock = clock.Add(30 * time.Minute)
	assert.Equal(t, 0, r.Sweep(time.Hour))

	clock = clock.Add(time.Hour)
	assert.Equal(t, 1, r.Sweep(time.Hour))
	assert.Equal(t, 0, r.Len())
}
