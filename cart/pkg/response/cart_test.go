package response

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	catalog "github.com/heram/storefront/catalog/pkg/response"
)

func TestEnsureItems(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected int
	}{
		{
			name:     "given bare array should pass through",
			raw:      `[{"id":"c1","quantity":2},{"id":"c2","quantity":1}]`,
			expected: 2,
		},
		{
			name:     "given object wrapping cart array should unwrap",
			raw:      `{"cart":[{"id":"c1","quantity":2}]}`,
			expected: 1,
		},
		{
			name:     "given null should collapse to empty cart",
			raw:      `null`,
			expected: 0,
		},
		{
			name:     "given empty object should collapse to empty cart",
			raw:      `{}`,
			expected: 0,
		},
		{
			name:     "given scalar should collapse to empty cart",
			raw:      `"not-a-cart"`,
			expected: 0,
		},
		{
			name:     "given empty payload should collapse to empty cart",
			raw:      ``,
			expected: 0,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			items := EnsureItems(json.RawMessage(test.raw))

			assert.NotNil(t, items)
			assert.Len(t, items, test.expected)
		})
	}
}

func TestLineTotalSimpleItem(t *testing.T) {
	item := Item{
		ID: "c1",
		Product: catalog.Product{
			ID:       "p1",
			Price:    decimal.NewFromInt(100000),
			Discount: 20,
		},
		Quantity: 3,
	}

	assert.True(t, item.LineTotal().Equal(decimal.NewFromInt(240000)))
}

func TestLineTotalCompositeItem(t *testing.T) {
	item := Item{
		ID:          "c2",
		IsComposite: true,
		Quantity:    1,
		Stages: &Stages{
			Stage1: []StageItem{{ProductID: "t1", Quantity: 1, Price: decimal.NewFromInt(10000)}},
			Stage2: []StageItem{{ProductID: "t2", Quantity: 2, Price: decimal.NewFromInt(20000)}},
			Stage3: []StageItem{{ProductID: "t3", Quantity: 1, Price: decimal.NewFromInt(30000)}},
			Stage4: []StageItem{{ProductID: "t4", Quantity: 1, Price: decimal.NewFromInt(40000)}},
			Count:  1,
		},
	}

	assert.True(t, item.LineTotal().Equal(decimal.NewFromInt(120000)))
}

func TestLineTotalCompositeWithoutStages(t *testing.T) {
	item := Item{ID: "c3", IsComposite: true, Quantity: 1}

	assert.True(t, item.LineTotal().IsZero())
}

func TestCartTotal(t *testing.T) {
	cart := Cart{
		{
			ID:       "c1",
			Product:  catalog.Product{Price: decimal.NewFromInt(55000)},
			Quantity: 2,
		},
		{
			ID:          "c2",
			IsComposite: true,
			Quantity:    1,
			Stages: &Stages{
				Stage1: []StageItem{{Quantity: 1, Price: decimal.NewFromInt(40000)}},
				Count:  1,
			},
		},
	}

	assert.True(t, cart.Total().Equal(decimal.NewFromInt(150000)))
}
