package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/proglide/admin-console/internal/models"
)

func named(id, name, devices string) models.Product {
	return models.Product{
		ID:                id,
		Category:          models.CategoryPhoneCase,
		CompatibleDevices: devices,
		Specs:             models.Specs{"baseModel": name},
	}
}

func guard(id, height string) models.Product {
	return models.Product{
		ID:       id,
		Category: models.CategoryScreenGuard,
		Specs:    models.Specs{"originalDrawingModel": "OD-" + id, "height": height},
	}
}

func ids(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func vivo() []models.Product {
	return []models.Product{
		named("1", "Vivo Y20", "iPhone 13,Pixel 6"),
		named("2", "Vivo Y21", "Samsung S22"),
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "vivoy20", Normalize(" Vivo  Y20\t"))
	assert.Equal(t, "", Normalize(" \n "))
}

func TestFilter(t *testing.T) {
	t.Run("ExactNameMatchWinsOutright", func(t *testing.T) {
		assert.Equal(t, []string{"1"}, ids(Filter(vivo(), "vivo  Y20")))
	})

	t.Run("FallsBackToPartialMatch", func(t *testing.T) {
		assert.Equal(t, []string{"1", "2"}, ids(Filter(vivo(), "vivo")))
	})

	t.Run("ExactDeviceMatch", func(t *testing.T) {
		products := append(vivo(), named("3", "Pixel 6 Case", ""))
		assert.Equal(t, []string{"1"}, ids(Filter(products, "pixel6")))
	})

	t.Run("PartialMatchOnJoinedDevices", func(t *testing.T) {
		assert.Equal(t, []string{"1"}, ids(Filter(vivo(), "13,pix")))
	})

	t.Run("EmptyQueryReturnsInputInOrder", func(t *testing.T) {
		products := vivo()
		assert.Equal(t, products, Filter(products, "   "))
	})

	t.Run("NoMatchIsEmpty", func(t *testing.T) {
		got := Filter(vivo(), "nokia")
		require.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestParseSort(t *testing.T) {
	o, err := ParseSort("")
	require.NoError(t, err)
	assert.Equal(t, SortDefault, o)

	o, err = ParseSort("Name-Desc")
	require.NoError(t, err)
	assert.Equal(t, SortNameDesc, o)

	_, err = ParseSort("price-asc")
	assert.ErrorIs(t, err, ErrInvalidSort)

	assert.True(t, SortHeightAsc.ValidFor(models.CategoryScreenGuard))
	assert.False(t, SortHeightDesc.ValidFor(models.CategoryBattery))
	assert.True(t, SortNameAsc.ValidFor(models.CategoryBattery))
}

func TestSort(t *testing.T) {
	s := NewSorter(language.English)

	t.Run("NameIsLocaleAware", func(t *testing.T) {
		products := []models.Product{named("z", "Zeta", ""), named("a", "alpha", ""), named("b", "Beta", "")}
		assert.Equal(t, []string{"a", "b", "z"}, ids(s.Sort(products, SortNameAsc)))
		assert.Equal(t, []string{"z", "b", "a"}, ids(s.Sort(products, SortNameDesc)))
		// input untouched
		assert.Equal(t, []string{"z", "a", "b"}, ids(products))
	})

	t.Run("NameSortIsStable", func(t *testing.T) {
		products := []models.Product{named("1", "Same", ""), named("2", "Other", ""), named("3", "Same", "")}
		assert.Equal(t, []string{"2", "1", "3"}, ids(s.Sort(products, SortNameAsc)))
	})

	t.Run("HeightTreatsEmptyAsZero", func(t *testing.T) {
		products := []models.Product{guard("e", ""), guard("ten", "10"), guard("five", "5")}
		assert.Equal(t, []string{"e", "five", "ten"}, ids(s.Sort(products, SortHeightAsc)))
		assert.Equal(t, []string{"ten", "five", "e"}, ids(s.Sort(products, SortHeightDesc)))
	})

	t.Run("HeightSortIsStable", func(t *testing.T) {
		products := []models.Product{guard("x", "abc"), guard("y", "0"), guard("z", "")}
		assert.Equal(t, []string{"x", "y", "z"}, ids(s.Sort(products, SortHeightAsc)))
	})

	t.Run("HeightTreatsNaNAsZero", func(t *testing.T) {
		products := []models.Product{guard("a", "10"), guard("n", "NaN"), guard("c", "5"), guard("b", "1"), guard("h", "0x1p3"), guard("i", "Inf")}
		assert.Equal(t, []string{"n", "h", "i", "b", "c", "a"}, ids(s.Sort(products, SortHeightAsc)))
		assert.Zero(t, Height(guard("n", "NaN")))
		assert.Zero(t, Height(guard("h", "0x1p3")))
	})

	t.Run("DefaultKeepsOrder", func(t *testing.T) {
		products := vivo()
		assert.Equal(t, []string{"1", "2"}, ids(s.Sort(products, SortDefault)))
	})
}

func TestSuggest(t *testing.T) {
	products := []models.Product{
		named("1", "Samsung A10 Case", "Samsung A10,Samsung M10"),
		named("2", "Redmi 9", "Samsung A10, samsung a20"),
		named("3", "Samsung A10 Case", "Samsung S22,Samsung S23,Samsung S24"),
	}

	got := Suggest(products, "sam")
	assert.Equal(t, []string{"Samsung A10 Case", "Samsung A10", "Samsung M10", "samsung a20", "Samsung S22"}, got)
	assert.LessOrEqual(t, len(got), MaxSuggestions)

	assert.Empty(t, Suggest(products, ""))

	// Suggestions do not strip whitespace from the query.
	assert.Empty(t, Suggest(products, "samsunga10"))
	assert.Equal(t, []string{"Samsung A10 Case", "Samsung A10"}, Suggest(products, "samsung a10"))
}

func TestEngineRun(t *testing.T) {
	e := NewEngine(language.English)
	products := append(vivo(), named("3", "Alpha", "Vivo Y20 Pro"))

	res := e.Run(products, Query{Text: "vivo", Sort: SortNameAsc})
	assert.Equal(t, []string{"3", "1", "2"}, ids(res.Products))
	assert.Equal(t, []string{"Vivo Y20", "Vivo Y21", "Vivo Y20 Pro"}, res.Suggestions)

	res = e.Run(products, Query{Sort: SortNameDesc})
	assert.Equal(t, []string{"2", "1", "3"}, ids(res.Products))
	assert.Empty(t, res.Suggestions)
}
