package request

type Auth struct {
	Phone string `validate:"required,numeric,len=11" json:"phone"`
}

type Otp struct {
	Phone string `validate:"required,numeric,len=11" json:"phone"`
	Code  string `validate:"required,numeric,len=5"  json:"code"`
}

type Profile struct {
	FirstName string `validate:"required" json:"firstName"`
	LastName  string `validate:"required" json:"lastName"`
	Email     string `validate:"omitempty,email" json:"email"`
}
