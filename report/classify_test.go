package report

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestClassify(t *testing.T) {
	groups := NewGroupSet("Напитки", "Бакалея")
	c := NewClassifier(nil, nil, groups)

	tests := []struct {
		name string
		row  Row
		want RowRole
	}{
		{
			name: "empty row",
			row:  NewRow(1),
			want: RoleEmpty,
		},
		{
			name: "blank cells only",
			row:  NewRow(2, "", "   ", ""),
			want: RoleEmpty,
		},
		{
			name: "report title",
			row:  NewRow(3, "Ведомость по партиям товаров на складах"),
			want: RoleMeta,
		},
		{
			name: "filter parameters",
			row:  NewRow(4, "Отбор: Склад Равно \"Основной\""),
			want: RoleMeta,
		},
		{
			name: "header row",
			row:  NewRow(5, "Номенклатура", "Партия", "", "Начальный остаток"),
			want: RoleHeader,
		},
		{
			name: "receipt document",
			row:  NewRow(6, "Поступление товаров 00042 от 01.01.2025"),
			want: RoleDocument,
		},
		{
			name: "expense document",
			row:  NewRow(7, "Продажи ККМ 00007 от 02.01.2025"),
			want: RoleDocument,
		},
		{
			name: "reshuffle document",
			row:  NewRow(8, "Пересортица товаров 00003"),
			want: RoleDocument,
		},
		{
			name: "batch date",
			row:  NewRow(9, "01.01.2025 10:30:00"),
			want: RoleBatch,
		},
		{
			name: "batch date without time",
			row:  NewRow(10, "15.02.2025"),
			want: RoleBatch,
		},
		{
			name: "single-digit day is not a batch",
			row:  NewRow(11, "1.01.2025"),
			want: RoleProduct,
		},
		{
			name: "known group",
			row:  NewRow(12, "Напитки"),
			want: RoleGroup,
		},
		{
			name: "known group uppercase",
			row:  NewRow(13, "НАПИТКИ"),
			want: RoleGroup,
		},
		{
			name: "warehouse with parentheses",
			row:  NewRow(14, "Склад №1 (осн.)"),
			want: RoleWarehouse,
		},
		{
			name: "broken reference is a product despite parentheses",
			row:  NewRow(17, "Объект не найден (154:bd000001)"),
			want: RoleProduct,
		},
		{
			name: "product fallthrough",
			row:  NewRow(15, "Пиво светлое 0.5л"),
			want: RoleProduct,
		},
		{
			name: "leading empty cells ignored",
			row:  NewRow(16, "", "", "Напитки"),
			want: RoleGroup,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.row))
		})
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	groups := NewGroupSet("Напитки")
	c := NewClassifier(nil, nil, groups)

	rows := []Row{
		NewRow(1, "Склад №1 (осн.)"),
		NewRow(2, "Напитки"),
		NewRow(3, "Пиво А"),
		NewRow(4, "01.01.2025 10:30:00"),
		NewRow(5, "Продажи 00001"),
	}
	for _, row := range rows {
		first := c.Classify(row)
		assert.Equal(t, first, c.Classify(row))
	}
}

func TestClassifyWithEmptyGroupSet(t *testing.T) {
	c := NewClassifier(nil, nil, nil)

	// Without a known-groups set a plain name falls through to Product and
	// a parenthesized name to Warehouse.
	assert.Equal(t, RoleProduct, c.Classify(NewRow(1, "Напитки")))
	assert.Equal(t, RoleWarehouse, c.Classify(NewRow(2, "Склад №1 (осн.)")))
}

func TestClassifyGroupBeatsWarehouse(t *testing.T) {
	// A parenthesized name that is also a known group classifies as a group:
	// the group rule runs first.
	groups := NewGroupSet("Вода (газированная)")
	c := NewClassifier(nil, nil, groups)

	assert.Equal(t, RoleGroup, c.Classify(NewRow(1, "Вода (газированная)")))
}

func TestIsInvalidProduct(t *testing.T) {
	c := NewClassifier(nil, nil, nil)

	assert.True(t, c.IsInvalidProduct("Объект не найден (154:abc)"))
	assert.True(t, c.IsInvalidProduct("ОБЪЕКТ НЕ НАЙДЕН"))
	assert.False(t, c.IsInvalidProduct("Пиво светлое"))
}

func TestRowRoleString(t *testing.T) {
	assert.Equal(t, "warehouse", RoleWarehouse.String())
	assert.Equal(t, "batch", RoleBatch.String())
	assert.Equal(t, "unknown", RowRole(99).String())
}
