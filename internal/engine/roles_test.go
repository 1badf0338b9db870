package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"salesanalyzer/internal/models"
)

func TestMissingColumns(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		want    []string
	}{
		{"exact", []string{"date", "product", "amount"}, nil},
		{"mixed case", []string{"Date", "PRODUCT", "Amount", "region"}, nil},
		{"item is not product", []string{"date", "item", "amount"}, []string{"product"}},
		{"substring is not enough", []string{"order_date", "product_name", "sales_amount"}, []string{"date", "product", "amount"}},
		{"none", []string{"a", "b"}, []string{"date", "product", "amount"}},
		{"keeps required order", []string{"product"}, []string{"date", "amount"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MissingColumns(tt.columns))
		})
	}
}

func TestResolveRoles(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		want    models.ColumnRoles
	}{
		{
			name:    "literal names",
			columns: []string{"Date", "Product", "Amount"},
			want:    models.ColumnRoles{Date: "Date", Product: "Product", Amount: "Amount"},
		},
		{
			name:    "substring match keeps original case",
			columns: []string{"Order_Date", "Item_Name", "Total_Revenue"},
			want:    models.ColumnRoles{Date: "Order_Date", Product: "Item_Name", Amount: "Total_Revenue"},
		},
		{
			name:    "first match wins",
			columns: []string{"sales_rep", "date", "product", "amount"},
			want:    models.ColumnRoles{Date: "date", Product: "product", Amount: "sales_rep"},
		},
		{
			name:    "updated_date precedes date",
			columns: []string{"updated_date", "date", "product", "amount"},
			want:    models.ColumnRoles{Date: "updated_date", Product: "product", Amount: "amount"},
		},
		{
			name:    "unresolved roles stay empty",
			columns: []string{"region", "qty"},
			want:    models.ColumnRoles{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveRoles(tt.columns))
		})
	}
}

func TestRequireRoles(t *testing.T) {
	assert.NoError(t, RequireRoles(models.ColumnRoles{Product: "p", Amount: "a"}))

	err := RequireRoles(models.ColumnRoles{Product: "p"})
	assert.ErrorIs(t, err, ErrRoleUnresolved)
	assert.Contains(t, err.Error(), "amount")

	err = RequireRoles(models.ColumnRoles{Amount: "a"})
	assert.ErrorIs(t, err, ErrRoleUnresolved)
	assert.Contains(t, err.Error(), "product")
}
