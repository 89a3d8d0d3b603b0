package configurator

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/heram/storefront/cart/pkg/request"
	"github.com/heram/storefront/cart/pkg/store"
	catalogResponse "github.com/heram/storefront/catalog/pkg/response"
	"github.com/heram/storefront/checkout/pkg/wizard"
	"github.com/heram/storefront/internal/log"
	"github.com/heram/storefront/internal/otel"
)

// Tiers is the number of selection stages in the taste pyramid.
const Tiers = 4

// Configurator drives the tiered taste pyramid flow: an intro step, one
// selection step per tier, then a confirmation step. Advancing off the last
// tier fires the composite add-to-cart as part of the transition itself.
type Configurator struct {
	*wizard.Machine

	cart       *store.Store
	selections [Tiers]*catalogResponse.Product
}

func NewConfigurator(cart *store.Store) *Configurator {
	cfg := &Configurator{cart: cart}

	steps := make([]wizard.Step, 0, Tiers+2)
	steps = append(steps, wizard.Step{
		ID:       "intro",
		Label:    "taste pyramid",
		Complete: func() bool { return true },
	})
	for tier := 1; tier <= Tiers; tier++ {
		steps = append(steps, wizard.Step{
			ID:       fmt.Sprintf("tier%d", tier),
			Label:    fmt.Sprintf("tier %d selection", tier),
			Complete: cfg.tierComplete(tier),
		})
	}
	steps = append(steps, wizard.Step{
		ID:       "confirmation",
		Label:    "confirmation",
		Complete: func() bool { return true },
	})

	cfg.Machine = wizard.NewMachine(steps, nil)
	return cfg
}

func (cfg *Configurator) tierComplete(tier int) func() bool {
	return func() bool { return cfg.selections[tier-1] != nil }
}

// Select records the product chosen for a tier (1-based).
func (cfg *Configurator) Select(c context.Context, tier int, product catalogResponse.Product) {
	if tier < 1 || tier > Tiers {
		return
	}
	cfg.selections[tier-1] = &product

	zerolog.Ctx(c).
		Info().
		Str(log.KEY_TAG, "Configurator Select").
		Int(log.KEY_TIER, tier).
		Str(log.KEY_PRODUCT_ID, product.ID).
		Msg("selected tier product")
}

func (cfg *Configurator) Selection(tier int) *catalogResponse.Product {
	if tier < 1 || tier > Tiers {
		return nil
	}
	return cfg.selections[tier-1]
}

// Total is the running sum of the current tier selections, recomputed on
// every read.
func (cfg *Configurator) Total() decimal.Decimal {
	total := decimal.Zero
	for _, selection := range cfg.selections {
		if selection == nil {
			continue
		}
		total = total.Add(selection.DiscountedPrice())
	}
	return total
}

// Next advances the flow. Leaving the final tier step bundles all four
// selections into one composite add-to-cart before moving on; a failed call
// surfaces through the store's notifier but the flow still advances.
func (cfg *Configurator) Next(c context.Context) bool {
	c, span := otel.Tracer.Start(c, "Configurator Next")
	defer span.End()

	if cfg.CurrentIndex() == Tiers && cfg.Current().Complete() {
		logger := zerolog.Ctx(c).
			With().
			Str(log.KEY_TAG, "Configurator Next").
			Str(log.KEY_PROCESS, "submitting tasting tray").
			Logger()
		logger.Info().Msg("submitting tasting tray")
		c = logger.WithContext(c)
		cfg.cart.AddTastingTray(c, cfg.tray())
		logger.Info().Msg("submitted tasting tray")
	}

	return cfg.Machine.Next(c)
}

// Reset clears every selection and rewinds to the intro step.
func (cfg *Configurator) Reset(c context.Context) {
	for i := range cfg.selections {
		cfg.selections[i] = nil
	}
	for cfg.Machine.Back(c) {
	}
}

func (cfg *Configurator) tray() request.TastingTray {
	stage := func(tier int) []request.StageItem {
		selection := cfg.selections[tier-1]
		if selection == nil {
			return nil
		}
		return []request.StageItem{{ProductID: selection.ID, Quantity: 1}}
	}
	return request.TastingTray{
		Items: request.TastingTrayItems{
			Stage1: stage(1),
			Stage2: stage(2),
			Stage3: stage(3),
			Stage4: stage(4),
			Count:  1,
		},
	}
}
