package wizard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	addressResponse "github.com/heram/storefront/address/pkg/response"
	"github.com/heram/storefront/cart/pkg/store"
	"github.com/heram/storefront/internal/api"
	"github.com/heram/storefront/internal/cache"
	inErrors "github.com/heram/storefront/internal/errors"
	"github.com/heram/storefront/internal/token"
	scheduleResponse "github.com/heram/storefront/schedule/pkg/response"
)

type spyNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *spyNotifier) Notify(_ context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

type fakeSubmitter struct {
	err  error
	form *Form
}

func (s *fakeSubmitter) Submit(_ context.Context, form Form) error {
	if s.err != nil {
		return s.err
	}
	s.form = &form
	return nil
}

func newFilledCart(t *testing.T, cartBody string) *store.Store {
	t.Helper()
	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"success","error":false,"data":` + cartBody + `}`))
		}),
	)
	t.Cleanup(server.Close)

	tokens := token.NewStaticSource("test-token")
	s := store.NewStore(
		api.NewClient(server.URL, tokens),
		tokens,
		cache.NewMemoryMirror(),
		&spyNotifier{},
		0,
	)
	s.Fetch(context.Background())
	return s
}

func testAddress() addressResponse.Address {
	return addressResponse.Address{
		ID:       "addr-1",
		Title:    "home",
		Province: "Tehran",
		City:     "Tehran",
		Street:   "Valiasr",
		Plaque:   "12",
	}
}

func testSlot() scheduleResponse.TimeSlot {
	start := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	return scheduleResponse.TimeSlot{ID: "slot-1", Start: start, End: start.Add(2 * time.Hour)}
}

func TestCheckoutWalksLinearFlow(t *testing.T) {
	c := context.Background()
	cart := newFilledCart(t, `{"cart":[{"id":"c1","quantity":1}]}`)
	checkout := NewCheckout(cart, cache.NewMemoryMirror(), &fakeSubmitter{}, &spyNotifier{})

	assert.Equal(t, "cart", checkout.Current().ID)
	assert.True(t, checkout.Next(c))
	assert.Equal(t, "location", checkout.Current().ID)

	// no address selected yet
	assert.False(t, checkout.Next(c))

	checkout.Apply(SetAddresses{Addresses: []addressResponse.Address{testAddress()}})
	checkout.Apply(SelectAddress{AddressID: "addr-1"})
	assert.True(t, checkout.Next(c))
	assert.Equal(t, "time", checkout.Current().ID)

	checkout.Apply(SelectDateTime{Date: "2025-03-10", Slot: testSlot()})
	assert.True(t, checkout.Next(c))
	assert.Equal(t, "payment", checkout.Current().ID)

	// payment completion only ever arrives from the outside
	assert.False(t, checkout.Done())
	checkout.Apply(CompletePayment{})
	assert.True(t, checkout.Done())
}

func TestCheckoutEmptyCartBlocksFirstStep(t *testing.T) {
	cart := newFilledCart(t, `{"cart":[]}`)
	checkout := NewCheckout(cart, cache.NewMemoryMirror(), &fakeSubmitter{}, &spyNotifier{})

	assert.False(t, checkout.Next(context.Background()))
	assert.Equal(t, "cart", checkout.Current().ID)
}

func TestCheckoutSelectedAddressResolvesById(t *testing.T) {
	cart := newFilledCart(t, `{"cart":[{"id":"c1","quantity":1}]}`)
	checkout := NewCheckout(cart, cache.NewMemoryMirror(), &fakeSubmitter{}, &spyNotifier{})

	checkout.Apply(SelectAddress{AddressID: "addr-1"})
	// selection without a matching list entry resolves to nothing
	assert.Nil(t, checkout.Form().SelectedAddress())

	checkout.Apply(SetAddresses{Addresses: []addressResponse.Address{testAddress()}})
	selected := checkout.Form().SelectedAddress()
	assert.NotNil(t, selected)
	assert.Equal(t, "home", selected.Title)
}

func TestCheckoutClearDateTime(t *testing.T) {
	cart := newFilledCart(t, `{"cart":[{"id":"c1","quantity":1}]}`)
	checkout := NewCheckout(cart, cache.NewMemoryMirror(), &fakeSubmitter{}, &spyNotifier{})

	checkout.Apply(SelectDateTime{Date: "2025-03-10", Slot: testSlot()})
	assert.NotNil(t, checkout.Form().SelectedDateTime)

	checkout.Apply(ClearDateTime{})
	assert.Nil(t, checkout.Form().SelectedDateTime)
}

func TestCheckoutSubmitValidatesStepsInOrder(t *testing.T) {
	c := context.Background()

	empty := newFilledCart(t, `{"cart":[]}`)
	checkout := NewCheckout(empty, cache.NewMemoryMirror(), &fakeSubmitter{}, &spyNotifier{})
	assert.ErrorIs(t, checkout.Submit(c), inErrors.ErrCartEmpty)

	cart := newFilledCart(t, `{"cart":[{"id":"c1","quantity":1}]}`)
	checkout = NewCheckout(cart, cache.NewMemoryMirror(), &fakeSubmitter{}, &spyNotifier{})
	assert.ErrorIs(t, checkout.Submit(c), inErrors.ErrNoAddress)

	checkout.Apply(SetAddresses{Addresses: []addressResponse.Address{testAddress()}})
	checkout.Apply(SelectAddress{AddressID: "addr-1"})
	assert.ErrorIs(t, checkout.Submit(c), inErrors.ErrNoTimeSlot)

	checkout.Apply(SelectDateTime{Date: "2025-03-10", Slot: testSlot()})
	assert.ErrorIs(t, checkout.Submit(c), inErrors.ErrPaymentIncomplete)
}

func TestCheckoutSubmitHandsFormToSubmitter(t *testing.T) {
	c := context.Background()
	cart := newFilledCart(t, `{"cart":[{"id":"c1","quantity":1}]}`)
	submitter := &fakeSubmitter{}
	checkout := NewCheckout(cart, cache.NewMemoryMirror(), submitter, &spyNotifier{})

	checkout.Apply(SetAddresses{Addresses: []addressResponse.Address{testAddress()}})
	checkout.Apply(SelectAddress{AddressID: "addr-1"})
	checkout.Apply(SelectDateTime{Date: "2025-03-10", Slot: testSlot()})
	checkout.Apply(CompletePayment{})

	assert.NoError(t, checkout.Submit(c))
	assert.NotNil(t, submitter.form)
	assert.Equal(t, "addr-1", submitter.form.SelectedAddressID)
	assert.Equal(t, "2025-03-10", submitter.form.SelectedDateTime.Date)
	assert.True(t, submitter.form.PaymentComplete)
}

func TestCheckoutSubmitFailureNotifies(t *testing.T) {
	c := context.Background()
	cart := newFilledCart(t, `{"cart":[{"id":"c1","quantity":1}]}`)
	notifier := &spyNotifier{}
	checkout := NewCheckout(cart, cache.NewMemoryMirror(), &fakeSubmitter{err: assert.AnError}, notifier)

	checkout.Apply(SetAddresses{Addresses: []addressResponse.Address{testAddress()}})
	checkout.Apply(SelectAddress{AddressID: "addr-1"})
	checkout.Apply(SelectDateTime{Date: "2025-03-10", Slot: testSlot()})
	checkout.Apply(CompletePayment{})

	assert.Error(t, checkout.Submit(c))
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	assert.NotEmpty(t, notifier.messages)
}
