package response

// Address is one entry of the user's address book. ID is empty until the
// first save.
type Address struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Province string `json:"province"`
	City     string `json:"city"`
	Street   string `json:"street"`
	Plaque   string `json:"plaque"`
}

// Resolve re-resolves a selected address by id against the cached list.
// Selections are pointers into the list, never embedded copies.
func Resolve(addresses []Address, id string) *Address {
	for i := range addresses {
		if addresses[i].ID == id {
			return &addresses[i]
		}
	}
	return nil
}
