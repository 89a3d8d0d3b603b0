package request

type UpsertAddress struct {
	Title    string `validate:"required" json:"title"`
	Province string `validate:"required" json:"province"`
	City     string `validate:"required" json:"city"`
	Street   string `validate:"required" json:"street"`
	Plaque   string `validate:"required" json:"plaque"`
}
