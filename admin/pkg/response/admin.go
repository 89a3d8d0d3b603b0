package response

import (
	"github.com/shopspring/decimal"
)

type Discount struct {
	ID      string `json:"id"`
	Code    string `json:"code"`
	Percent int64  `json:"percent"`
	Active  bool   `json:"active"`
}

type Setting struct {
	Type         string          `json:"type"`
	TaxPercent   decimal.Decimal `json:"taxPercent"`
	ShippingCost decimal.Decimal `json:"shippingCost"`
}

type Category struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ParentID string `json:"parentId"`
}

type Media struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}
