package wizard

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/heram/storefront/cart/pkg/store"
	"github.com/heram/storefront/internal/api"
	"github.com/heram/storefront/internal/cache"
	inErrors "github.com/heram/storefront/internal/errors"
	"github.com/heram/storefront/internal/log"
	"github.com/heram/storefront/internal/notify"
	"github.com/heram/storefront/internal/otel"
)

// Submitter is the order-submission collaborator. The wizard's job ends at
// producing a complete validated form and handing it over.
type Submitter interface {
	Submit(c context.Context, form Form) error
}

// Checkout is the linear cart → location → time → payment flow.
type Checkout struct {
	*Machine

	cart      *store.Store
	form      *Form
	submitter Submitter
	notifier  notify.Notifier
}

func NewCheckout(
	cart *store.Store,
	mirror cache.Mirror,
	submitter Submitter,
	notifier notify.Notifier,
) *Checkout {
	form := &Form{}
	steps := []Step{
		{
			ID:       "cart",
			Label:    "cart review",
			Complete: func() bool { return !cart.Empty() },
		},
		{
			ID:       "location",
			Label:    "delivery location",
			Complete: func() bool { return form.SelectedAddress() != nil },
		},
		{
			ID:       "time",
			Label:    "delivery time",
			Complete: func() bool { return form.SelectedDateTime != nil },
		},
		{
			ID:       "payment",
			Label:    "payment",
			Complete: func() bool { return form.PaymentComplete },
		},
	}
	return &Checkout{
		Machine:   NewMachine(steps, mirror),
		cart:      cart,
		form:      form,
		submitter: submitter,
		notifier:  notifier,
	}
}

func (w *Checkout) Form() Form {
	return *w.form
}

func (w *Checkout) Apply(action Action) {
	action.apply(w.form)
}

// Submit validates every step and hands the aggregated form to the
// injected submitter. Failures surface through the notifier only.
func (w *Checkout) Submit(c context.Context) error {
	c, span := otel.Tracer.Start(c, "Checkout Submit")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Checkout Submit").
		Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "validating steps").Logger()
	logger.Info().Msg("validating steps")
	if err := w.incomplete(); err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		w.notifier.Notify(c, api.UserMessage(err))
		return err
	}
	logger.Info().Msg("validated steps")

	logger = logger.With().Str(log.KEY_PROCESS, "submitting order").Logger()
	logger.Info().Msg("submitting order")
	c = logger.WithContext(c)
	if err := w.submitter.Submit(c, *w.form); err != nil {
		err = fmt.Errorf("failed submitting order with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		w.notifier.Notify(c, api.UserMessage(err))
		return err
	}
	logger.Info().Msg("submitted order")

	return nil
}

func (w *Checkout) incomplete() error {
	if w.cart.Empty() {
		return inErrors.ErrCartEmpty
	}
	if w.form.SelectedAddress() == nil {
		return inErrors.ErrNoAddress
	}
	if w.form.SelectedDateTime == nil {
		return inErrors.ErrNoTimeSlot
	}
	if !w.form.PaymentComplete {
		return inErrors.ErrPaymentIncomplete
	}
	return nil
}
