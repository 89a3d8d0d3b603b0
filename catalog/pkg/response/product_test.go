package response

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDiscountedPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    int64
		discount int64
		expected int64
	}{
		{
			name:     "given 20 percent discount should subtract a fifth",
			price:    100000,
			discount: 20,
			expected: 80000,
		},
		{
			name:     "given zero discount should return original price",
			price:    55000,
			discount: 0,
			expected: 55000,
		},
		{
			name:     "given discount yielding fraction should round",
			price:    99999,
			discount: 15,
			expected: 84999,
		},
		{
			name:     "given full discount should return zero",
			price:    55000,
			discount: 100,
			expected: 0,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			product := Product{
				Price:    decimal.NewFromInt(test.price),
				Discount: test.discount,
			}

			assert.True(
				t,
				product.DiscountedPrice().Equal(decimal.NewFromInt(test.expected)),
				"expected %d got %s", test.expected, product.DiscountedPrice(),
			)
		})
	}
}

func TestDiscounted(t *testing.T) {
	assert.True(t, Product{Discount: 15}.Discounted())
	assert.False(t, Product{Discount: 0}.Discounted())
}
