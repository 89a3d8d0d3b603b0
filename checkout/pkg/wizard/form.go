package wizard

import (
	addressResponse "github.com/heram/storefront/address/pkg/response"
	scheduleResponse "github.com/heram/storefront/schedule/pkg/response"
)

// DateTimeSelection is the single source of truth for the chosen delivery
// slot: the calendar date and the slot picked inside it.
type DateTimeSelection struct {
	Date string                    `json:"date"`
	Slot scheduleResponse.TimeSlot `json:"slot"`
}

// Form accumulates the checkout selections across steps. Every mutation
// goes through Apply with a typed action; each action touches only its own
// slice of the form.
type Form struct {
	Addresses         []addressResponse.Address
	SelectedAddressID string
	SelectedServices  []string
	SelectedDateTime  *DateTimeSelection
	PaymentComplete   bool
}

// SelectedAddress re-resolves the selection by id against the cached list.
func (f Form) SelectedAddress() *addressResponse.Address {
	if f.SelectedAddressID == "" {
		return nil
	}
	return addressResponse.Resolve(f.Addresses, f.SelectedAddressID)
}

type Action interface {
	apply(f *Form)
}

type SetAddresses struct {
	Addresses []addressResponse.Address
}

func (a SetAddresses) apply(f *Form) {
	f.Addresses = a.Addresses
}

type SelectAddress struct {
	AddressID string
}

func (a SelectAddress) apply(f *Form) {
	f.SelectedAddressID = a.AddressID
}

type SetServices struct {
	ServiceIDs []string
}

func (a SetServices) apply(f *Form) {
	f.SelectedServices = a.ServiceIDs
}

type SelectDateTime struct {
	Date string
	Slot scheduleResponse.TimeSlot
}

func (a SelectDateTime) apply(f *Form) {
	f.SelectedDateTime = &DateTimeSelection{Date: a.Date, Slot: a.Slot}
}

type ClearDateTime struct{}

func (ClearDateTime) apply(f *Form) {
	f.SelectedDateTime = nil
}

// CompletePayment is applied by the external payment collaborator once the
// gateway confirms; nothing inside the wizard ever applies it.
type CompletePayment struct{}

func (CompletePayment) apply(f *Form) {
	f.PaymentComplete = true
}
