package response

type Auth struct {
	Token string `json:"token"`
}

type Profile struct {
	Phone     string `json:"phone"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}
