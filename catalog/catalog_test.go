package catalog_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"restock-backend/catalog"
	"restock-backend/models"
)

func TestGetByObjectClass_CaseInsensitive(t *testing.T) {
	cat := catalog.Default()

	for _, class := range []string{"water_bottle", "WATER_BOTTLE", "Water_Bottle"} {
		product, ok := cat.GetByObjectClass(class)
		assert.True(t, ok, "lookup failed for %q", class)
		assert.Equal(t, "hydration_001", product.ID)
	}
}

func TestGetByObjectClass_UnknownClass(t *testing.T) {
	cat := catalog.Default()

	_, ok := cat.GetByObjectClass("toothpaste")
	assert.False(t, ok)
}

func TestResolveVariant_EmptySKUReturnsDefault(t *testing.T) {
	cat := catalog.Default()

	variant, ok := cat.ResolveVariant("water_bottle", "")
	assert.True(t, ok)
	assert.Equal(t, "WATER-24PK", variant.SKU)
}

func TestResolveVariant_NamedSKU(t *testing.T) {
	cat := catalog.Default()

	variant, ok := cat.ResolveVariant("water_bottle", "WATER-12PK")
	assert.True(t, ok)
	assert.Equal(t, "Spring Water 12-pack", variant.Label)
}

func TestResolveVariant_MissIsRecoverable(t *testing.T) {
	cat := catalog.Default()

	_, ok := cat.ResolveVariant("water_bottle", "WATER-48PK")
	assert.False(t, ok)

	_, ok = cat.ResolveVariant("toothpaste", "")
	assert.False(t, ok)
}

func TestShouldPrompt_ThresholdComparisonIsOrdinal(t *testing.T) {
	cat := catalog.Default()

	// water_bottle threshold is NEARLY_EMPTY
	assert.False(t, cat.ShouldPrompt("water_bottle", models.FillLevelFull))
	assert.False(t, cat.ShouldPrompt("water_bottle", models.FillLevelHalf))
	assert.True(t, cat.ShouldPrompt("water_bottle", models.FillLevelNearlyEmpty))
	assert.True(t, cat.ShouldPrompt("water_bottle", models.FillLevelEmpty))

	// soap_dispenser threshold is EMPTY
	assert.False(t, cat.ShouldPrompt("soap_dispenser", models.FillLevelNearlyEmpty))
	assert.True(t, cat.ShouldPrompt("soap_dispenser", models.FillLevelEmpty))
}

func TestShouldPrompt_UnknownClassNeverPrompts(t *testing.T) {
	cat := catalog.Default()

	assert.False(t, cat.ShouldPrompt("toothpaste", models.FillLevelEmpty))
}

func TestShouldPrompt_UnknownFillLevelNeverPrompts(t *testing.T) {
	cat := catalog.Default()

	assert.False(t, cat.ShouldPrompt("water_bottle", models.FillLevel("BONE_DRY")))
}

func TestLoadFile_RoundTrip(t *testing.T) {
	products := []models.Product{
		{
			ID:          "paper_towels_001",
			ObjectClass: "paper_towel_roll",
			DefaultVariant: models.ProductVariant{
				SKU:   "TOWEL-6PK",
				Label: "Paper Towels 6-pack",
			},
			ReorderThreshold: models.FillLevelHalf,
		},
	}
	data, err := json.Marshal(products)
	assert.NoError(t, err)

	path := filepath.Join(t.TempDir(), "catalog.json")
	assert.NoError(t, os.WriteFile(path, data, 0o644))

	cat, err := catalog.LoadFile(path)
	assert.NoError(t, err)

	product, ok := cat.GetByObjectClass("paper_towel_roll")
	assert.True(t, ok)
	assert.Equal(t, "paper_towels_001", product.ID)
	assert.True(t, cat.ShouldPrompt("paper_towel_roll", models.FillLevelHalf))
}

func TestLoadFile_RejectsInvalidEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	assert.NoError(t, os.WriteFile(path, []byte(`[{"id":"x1","object_class":"thing","default_variant":{"sku":"S-1","label":"Thing"},"reorder_threshold":"SOMETIMES"}]`), 0o644))

	_, err := catalog.LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := catalog.LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
