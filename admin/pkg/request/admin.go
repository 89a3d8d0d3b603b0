package request

import (
	"github.com/shopspring/decimal"
)

type Discount struct {
	Code    string `validate:"required"              json:"code"`
	Percent int64  `validate:"required,gt=0,lte=100" json:"percent"`
}

type Setting struct {
	TaxPercent   decimal.Decimal `json:"taxPercent"`
	ShippingCost decimal.Decimal `json:"shippingCost"`
}

type Category struct {
	Title    string `validate:"required" json:"title"`
	ParentID string `json:"parentId,omitempty"`
}

type Media struct {
	Filename string `validate:"required" json:"filename"`
	Content  []byte `validate:"required" json:"content"`
}
