package response

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	catalog "github.com/heram/storefront/catalog/pkg/response"
)

// StageItem is one sub-item inside a composite cart item's stage list.
type StageItem struct {
	ProductID string          `json:"productId"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// Stages holds the four named tier sub-lists of a taste pyramid bundle
// plus the aggregate bundle count.
type Stages struct {
	Stage1 []StageItem `json:"stage1"`
	Stage2 []StageItem `json:"stage2"`
	Stage3 []StageItem `json:"stage3"`
	Stage4 []StageItem `json:"stage4"`
	Count  int64       `json:"count"`
}

func (s Stages) All() []StageItem {
	all := make([]StageItem, 0, len(s.Stage1)+len(s.Stage2)+len(s.Stage3)+len(s.Stage4))
	all = append(all, s.Stage1...)
	all = append(all, s.Stage2...)
	all = append(all, s.Stage3...)
	all = append(all, s.Stage4...)
	return all
}

// Item is one cart line. IsComposite discriminates plain quantity items
// from taste pyramid bundles; the two shapes are mutually exclusive.
type Item struct {
	ID          string          `json:"id"`
	Product     catalog.Product `json:"product"`
	Quantity    int64           `json:"quantity"`
	IsComposite bool            `json:"isComposite"`
	Stages      *Stages         `json:"items,omitempty"`
}

// LineTotal is unitPrice × (1 − discount/100) × quantity for plain items
// and the sum of stage sub-item totals for composite items.
func (i Item) LineTotal() decimal.Decimal {
	if i.IsComposite {
		if i.Stages == nil {
			return decimal.Zero
		}
		total := decimal.Zero
		for _, sub := range i.Stages.All() {
			total = total.Add(sub.Price.Mul(decimal.NewFromInt(sub.Quantity)))
		}
		return total
	}
	discounted := i.Product.Price.
		Mul(decimal.NewFromInt(100 - i.Product.Discount)).
		Div(decimal.NewFromInt(100))
	return discounted.Mul(decimal.NewFromInt(i.Quantity))
}

type Cart []Item

func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c {
		total = total.Add(item.LineTotal())
	}
	return total
}

// EnsureItems normalizes whatever the API returned into a flat item list.
// A bare array passes through, an object carrying a cart array field is
// unwrapped and every other shape collapses to an empty cart.
func EnsureItems(raw json.RawMessage) []Item {
	if len(raw) == 0 {
		return []Item{}
	}

	items := []Item{}
	if err := json.Unmarshal(raw, &items); err == nil {
		return items
	}

	wrapped := struct {
		Cart json.RawMessage `json:"cart"`
	}{}
	if err := json.Unmarshal(raw, &wrapped); err == nil && len(wrapped.Cart) > 0 {
		items = []Item{}
		if err := json.Unmarshal(wrapped.Cart, &items); err == nil {
			return items
		}
	}

	return []Item{}
}
