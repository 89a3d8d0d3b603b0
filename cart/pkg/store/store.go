package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/heram/storefront/cart/pkg/request"
	"github.com/heram/storefront/cart/pkg/response"
	"github.com/heram/storefront/internal/api"
	"github.com/heram/storefront/internal/cache"
	"github.com/heram/storefront/internal/constants"
	inErrors "github.com/heram/storefront/internal/errors"
	"github.com/heram/storefront/internal/log"
	"github.com/heram/storefront/internal/notify"
	"github.com/heram/storefront/internal/otel"
	"github.com/heram/storefront/internal/token"
)

const DefaultUndoWindow = 3 * time.Second

// Store owns the client's view of the server-side cart. Mutations never
// patch local state optimistically; they re-fetch and replace it wholesale.
// Overlapping fetches resolve last-write-wins, which is the accepted
// consistency model of this client.
type Store struct {
	api      *api.Client
	tokens   token.Source
	mirror   cache.Mirror
	notifier notify.Notifier

	undoWindow time.Duration

	mu      sync.Mutex
	items   []response.Item
	loading map[string]bool
	pending map[string]*time.Timer
}

func NewStore(
	apiClient *api.Client,
	tokens token.Source,
	mirror cache.Mirror,
	notifier notify.Notifier,
	undoWindow time.Duration,
) *Store {
	if undoWindow <= 0 {
		undoWindow = DefaultUndoWindow
	}
	return &Store{
		api:        apiClient,
		tokens:     tokens,
		mirror:     mirror,
		notifier:   notifier,
		undoWindow: undoWindow,
		items:      []response.Item{},
		loading:    map[string]bool{},
		pending:    map[string]*time.Timer{},
	}
}

// Items returns a copy of the reconciled cart.
func (s *Store) Items() []response.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]response.Item, len(s.items))
	copy(items, s.items)
	return items
}

func (s *Store) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) == 0
}

// Loading reports the advisory per-key in-flight flag. Add keys by product
// id, Remove and UpdateQuantity by cart item id. Nothing enforces mutual
// exclusion beyond this flag; callers check it before issuing a second call.
func (s *Store) Loading(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading[key]
}

func (s *Store) setLoading(key string, v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v {
		s.loading[key] = true
		return
	}
	delete(s.loading, key)
}

// Fetch replaces local state with the server's cart. A missing token is a
// no-op with an empty result. A failed fetch also resets to an empty cart:
// failure is deliberately indistinguishable from "empty".
func (s *Store) Fetch(c context.Context) {
	c, span := otel.Tracer.Start(c, "Store Fetch")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Store Fetch").
		Logger()

	if s.tokens.Token() == "" {
		logger.Trace().Msg("no token, skipping cart fetch")
		return
	}

	logger = logger.With().Str(log.KEY_PROCESS, "fetching cart").Logger()
	logger.Trace().Msg("fetching cart")
	raw := json.RawMessage{}
	err := s.api.Get(c, "/cart", &raw)
	if err != nil {
		err = fmt.Errorf("failed fetching cart with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		s.replace(c, []response.Item{})
		return
	}
	items := response.EnsureItems(raw)
	logger = logger.With().Int(log.KEY_CART_ITEM_COUNT, len(items)).Logger()
	logger.Info().Msg("fetched cart")

	s.replace(c, items)
}

func (s *Store) replace(c context.Context, items []response.Item) {
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()

	err := s.mirror.Put(c, constants.KEY_CACHE_CART, items)
	if err != nil {
		err = fmt.Errorf("failed mirroring cart with error=%w", err)
		zerolog.Ctx(c).Error().Err(err).Msg(err.Error())
	}
}

// Add puts one unit of a product into the cart and reconciles by re-fetch.
func (s *Store) Add(c context.Context, productID string) {
	c, span := otel.Tracer.Start(c, "Store Add")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Store Add").
		Str(log.KEY_PRODUCT_ID, productID).
		Logger()

	if !s.requireToken(c, logger) {
		return
	}

	s.setLoading(productID, true)
	defer s.setLoading(productID, false)

	logger = logger.With().Str(log.KEY_PROCESS, "validating request").Logger()
	reqBody := request.AddItem{ProductID: productID}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating add request with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		s.notifier.Notify(c, api.UserMessage(err))
		return
	}

	logger = logger.With().Str(log.KEY_PROCESS, "adding product to cart").Logger()
	logger.Info().Msg("adding product to cart")
	err := s.api.Post(c, "/cart", reqBody, nil)
	if err != nil {
		err = fmt.Errorf("failed adding product to cart with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		s.notifier.Notify(c, api.UserMessage(err))
		return
	}
	logger.Info().Msg("added product to cart")

	c = logger.WithContext(c)
	s.Fetch(c)
}

// AddTastingTray posts the composite taste pyramid bundle in one call.
func (s *Store) AddTastingTray(c context.Context, tray request.TastingTray) {
	c, span := otel.Tracer.Start(c, "Store AddTastingTray")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Store AddTastingTray").
		Logger()

	if !s.requireToken(c, logger) {
		return
	}

	logger = logger.With().Str(log.KEY_PROCESS, "validating request").Logger()
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, tray); err != nil {
		err = fmt.Errorf("failed validating tasting tray request with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		s.notifier.Notify(c, api.UserMessage(err))
		return
	}

	logger = logger.With().Str(log.KEY_PROCESS, "adding tasting tray to cart").Logger()
	logger.Info().Msg("adding tasting tray to cart")
	err := s.api.Post(c, "/cart", tray, nil)
	if err != nil {
		err = fmt.Errorf("failed adding tasting tray to cart with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		s.notifier.Notify(c, api.UserMessage(err))
		return
	}
	logger.Info().Msg("added tasting tray to cart")

	c = logger.WithContext(c)
	s.Fetch(c)
}

// Remove deletes a cart line and reconciles by re-fetch.
func (s *Store) Remove(c context.Context, cartID string) {
	c, span := otel.Tracer.Start(c, "Store Remove")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Store Remove").
		Str(log.KEY_CART_ID, cartID).
		Logger()

	if !s.requireToken(c, logger) {
		return
	}

	s.setLoading(cartID, true)
	defer s.setLoading(cartID, false)

	logger = logger.With().Str(log.KEY_PROCESS, "removing cart item").Logger()
	logger.Info().Msg("removing cart item")
	err := s.api.Delete(c, "/cart/"+cartID)
	if err != nil {
		err = fmt.Errorf("failed removing cart item with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		s.notifier.Notify(c, api.UserMessage(err))
		return
	}
	logger.Info().Msg("removed cart item")

	c = logger.WithContext(c)
	s.Fetch(c)
}

// UpdateQuantity patches a cart line's quantity. Decrementing a quantity-1
// line delegates to Remove instead of patching to zero; the server does not
// persist zero-quantity lines.
func (s *Store) UpdateQuantity(c context.Context, cartID string, newQuantity, currentQuantity int64) {
	c, span := otel.Tracer.Start(c, "Store UpdateQuantity")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Store UpdateQuantity").
		Str(log.KEY_CART_ID, cartID).
		Int64(log.KEY_QUANTITY, newQuantity).
		Logger()

	if currentQuantity == 1 && newQuantity < currentQuantity {
		logger.Info().Msg("quantity reached zero, delegating to remove")
		c = logger.WithContext(c)
		s.Remove(c, cartID)
		return
	}

	if !s.requireToken(c, logger) {
		return
	}

	s.setLoading(cartID, true)
	defer s.setLoading(cartID, false)

	logger = logger.With().Str(log.KEY_PROCESS, "updating cart item quantity").Logger()
	reqBody := request.UpdateQuantity{Quantity: newQuantity}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating quantity request with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		s.notifier.Notify(c, api.UserMessage(err))
		return
	}

	logger.Info().Msg("updating cart item quantity")
	err := s.api.Patch(c, "/cart/"+cartID, reqBody, nil)
	if err != nil {
		err = fmt.Errorf("failed updating cart item quantity with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		s.notifier.Notify(c, api.UserMessage(err))
		return
	}
	logger.Info().Msg("updated cart item quantity")

	c = logger.WithContext(c)
	s.Fetch(c)
}

// RemoveWithUndo starts the deferred-delete window for a quantity-1 line.
// The DELETE only fires after the window elapses uncancelled; until then the
// item stays in local state and CancelRemove aborts the whole operation.
func (s *Store) RemoveWithUndo(c context.Context, cartID string) {
	c, span := otel.Tracer.Start(c, "Store RemoveWithUndo")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Store RemoveWithUndo").
		Str(log.KEY_CART_ID, cartID).
		Logger()

	s.mu.Lock()
	if _, ok := s.pending[cartID]; ok {
		s.mu.Unlock()
		logger.Trace().Msg("removal already pending")
		return
	}

	removeCtx := context.WithoutCancel(c)
	s.pending[cartID] = time.AfterFunc(s.undoWindow, func() {
		s.mu.Lock()
		_, stillPending := s.pending[cartID]
		delete(s.pending, cartID)
		s.mu.Unlock()
		if !stillPending {
			return
		}
		s.Remove(removeCtx, cartID)
	})
	s.mu.Unlock()
	logger.Info().Msg("started removal undo window")
}

// CancelRemove aborts a pending removal. It reports whether there was one.
func (s *Store) CancelRemove(c context.Context, cartID string) bool {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Store CancelRemove").
		Str(log.KEY_CART_ID, cartID).
		Logger()

	s.mu.Lock()
	timer, ok := s.pending[cartID]
	if ok {
		timer.Stop()
		delete(s.pending, cartID)
	}
	s.mu.Unlock()

	if ok {
		logger.Info().Msg("cancelled pending removal")
	}
	return ok
}

// RemovalPending reports whether a cart line sits inside its undo window.
func (s *Store) RemovalPending(cartID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[cartID]
	return ok
}

func (s *Store) requireToken(c context.Context, logger zerolog.Logger) bool {
	t := s.tokens.Token()
	if t == "" {
		logger.Error().Err(inErrors.ErrEmptyAuth).Msg(inErrors.ErrEmptyAuth.Error())
		s.notifier.Notify(c, "please sign in first")
		return false
	}
	expired, err := token.Expired(t, time.Now())
	if err == nil && expired {
		logger.Error().Err(inErrors.ErrTokenExpired).Msg(inErrors.ErrTokenExpired.Error())
		s.notifier.Notify(c, "your session has expired, please sign in again")
		return false
	}
	return true
}
