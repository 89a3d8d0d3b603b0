package request

type AddItem struct {
	ProductID string `validate:"required" json:"productId"`
}

type UpdateQuantity struct {
	Quantity int64 `validate:"required,gte=1" json:"quantity"`
}

type StageItem struct {
	ProductID string `validate:"required"       json:"productId"`
	Quantity  int64  `validate:"required,gte=1" json:"quantity"`
}

type TastingTrayItems struct {
	Stage1 []StageItem `validate:"required,min=1,dive" json:"stage1"`
	Stage2 []StageItem `validate:"required,min=1,dive" json:"stage2"`
	Stage3 []StageItem `validate:"required,min=1,dive" json:"stage3"`
	Stage4 []StageItem `validate:"required,min=1,dive" json:"stage4"`
	Count  int64       `validate:"required,gte=1"      json:"count"`
}

type TastingTray struct {
	Items TastingTrayItems `validate:"required" json:"items"`
}
