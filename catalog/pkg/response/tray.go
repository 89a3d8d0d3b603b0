package response

// TastingTray is the four-tier taste pyramid catalog: the selectable
// products of each tier.
type TastingTray struct {
	Stage1 []Product `json:"stage1"`
	Stage2 []Product `json:"stage2"`
	Stage3 []Product `json:"stage3"`
	Stage4 []Product `json:"stage4"`
}

func (t TastingTray) Stage(tier int) []Product {
	switch tier {
	case 1:
		return t.Stage1
	case 2:
		return t.Stage2
	case 3:
		return t.Stage3
	case 4:
		return t.Stage4
	}
	return nil
}
