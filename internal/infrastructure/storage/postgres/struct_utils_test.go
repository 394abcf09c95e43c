package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/entity"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/id"
)

type mockCatalog struct {
	entity.Catalog
	VATNumber string `db:"vat_number" json:"vatNumber"`
	Skipped   string `db:"-" json:"skipped"`
	Untagged  string
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[mockCatalog]()

	for _, expected := range []string{"id", "deletion_mark", "version", "attributes", "code", "name", "vat_number"} {
		assert.Contains(t, cols, expected)
	}

	assert.NotContains(t, cols, "-")
	assert.NotContains(t, cols, "Skipped")
	assert.NotContains(t, cols, "Untagged")
}

func TestStructToMap(t *testing.T) {
	cat := mockCatalog{
		Catalog: entity.Catalog{
			BaseCatalog: entity.BaseCatalog{
				BaseEntity: entity.BaseEntity{
					ID:           id.New(),
					DeletionMark: true,
					Version:      5,
				},
			},
			Code: "CLI-000042",
			Name: "Vetreria Rossi",
		},
		VATNumber: "01234567890",
		Skipped:   "ignored",
	}

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, true, m["deletion_mark"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "CLI-000042", m["code"])
	assert.Equal(t, "Vetreria Rossi", m["name"])
	assert.Equal(t, "01234567890", m["vat_number"])
	assert.NotContains(t, m, "-")
}

func TestStructToMap_Pointer(t *testing.T) {
	cat := &mockCatalog{VATNumber: "09876543210"}
	m := StructToMap(cat)
	assert.Equal(t, "09876543210", m["vat_number"])
}

func TestStructToMap_NonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
	assert.Nil(t, StructToMap("nope"))
}
