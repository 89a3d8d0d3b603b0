package devserver

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	cartRequest "github.com/heram/storefront/cart/pkg/request"
	cartResponse "github.com/heram/storefront/cart/pkg/response"
	"github.com/heram/storefront/internal/log"
	"github.com/heram/storefront/internal/otel"
	"github.com/heram/storefront/internal/token"
)

// insertCartItem is the POST /cart body. The remote API overloads the
// endpoint: a plain productId adds one unit, an items object adds a
// composite taste pyramid bundle.
type insertCartItem struct {
	ProductID string                        `json:"productId"`
	Items     *cartRequest.TastingTrayItems `json:"items"`
}

func (ctrl Controller) FindCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "Controller FindCart")
	defer span.End()

	subject := token.SubjectFromContext(c)

	ctrl.state.mu.Lock()
	items := make([]cartResponse.Item, len(ctrl.state.carts[subject]))
	copy(items, ctrl.state.carts[subject])
	ctrl.state.mu.Unlock()

	// the real API wraps the list in a cart field
	writeData(c, w, map[string]interface{}{"cart": items})
}

func (ctrl Controller) InsertCartItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "Controller InsertCartItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Controller InsertCartItem").
		Logger()

	subject := token.SubjectFromContext(c)

	reqBody := insertCartItem{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		logger.Error().Err(err).Msg("failed decoding request body")
		writeFail(c, w, http.StatusBadRequest, "invalid request body")
		return
	}

	if reqBody.Items != nil {
		ctrl.insertComposite(c, w, subject, *reqBody.Items)
		return
	}

	ctrl.state.mu.Lock()
	product, ok := ctrl.state.findProduct(reqBody.ProductID)
	if !ok {
		ctrl.state.mu.Unlock()
		logger.Error().
			Str(log.KEY_PRODUCT_ID, reqBody.ProductID).
			Msg("product not found")
		writeFail(c, w, http.StatusNotFound, "product not found")
		return
	}

	items := ctrl.state.carts[subject]
	found := false
	for i := range items {
		if !items[i].IsComposite && items[i].Product.ID == product.ID {
			items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		items = append(items, cartResponse.Item{
			ID:       uuid.NewString(),
			Product:  product,
			Quantity: 1,
		})
	}
	ctrl.state.carts[subject] = items
	ctrl.state.mu.Unlock()

	logger.Info().
		Str(log.KEY_PRODUCT_ID, product.ID).
		Msg("inserted cart item")
	writeData(c, w, map[string]interface{}{"cart": items})
}

func (ctrl Controller) insertComposite(
	c context.Context,
	w http.ResponseWriter,
	subject string,
	trayItems cartRequest.TastingTrayItems,
) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Controller insertComposite").
		Logger()

	ctrl.state.mu.Lock()
	stages := cartResponse.Stages{Count: trayItems.Count}
	for _, stage := range []struct {
		in  []cartRequest.StageItem
		out *[]cartResponse.StageItem
	}{
		{trayItems.Stage1, &stages.Stage1},
		{trayItems.Stage2, &stages.Stage2},
		{trayItems.Stage3, &stages.Stage3},
		{trayItems.Stage4, &stages.Stage4},
	} {
		for _, sub := range stage.in {
			product, ok := ctrl.state.findProduct(sub.ProductID)
			if !ok {
				ctrl.state.mu.Unlock()
				logger.Error().
					Str(log.KEY_PRODUCT_ID, sub.ProductID).
					Msg("stage product not found")
				writeFail(c, w, http.StatusNotFound, "product not found")
				return
			}
			*stage.out = append(*stage.out, cartResponse.StageItem{
				ProductID: sub.ProductID,
				Quantity:  sub.Quantity,
				Price:     product.DiscountedPrice(),
			})
		}
	}

	items := append(ctrl.state.carts[subject], cartResponse.Item{
		ID:          uuid.NewString(),
		Quantity:    trayItems.Count,
		IsComposite: true,
		Stages:      &stages,
	})
	ctrl.state.carts[subject] = items
	ctrl.state.mu.Unlock()

	logger.Info().Msg("inserted composite cart item")
	writeData(c, w, map[string]interface{}{"cart": items})
}

func (ctrl Controller) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "Controller UpdateCartItem")
	defer span.End()

	cartID := mux.Vars(r)["cartId"]
	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Controller UpdateCartItem").
		Str(log.KEY_CART_ID, cartID).
		Logger()

	subject := token.SubjectFromContext(c)

	reqBody := cartRequest.UpdateQuantity{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		logger.Error().Err(err).Msg("failed decoding request body")
		writeFail(c, w, http.StatusBadRequest, "invalid request body")
		return
	}
	if reqBody.Quantity < 1 {
		logger.Error().
			Int64(log.KEY_QUANTITY, reqBody.Quantity).
			Msg("quantity below one")
		writeFail(c, w, http.StatusBadRequest, "quantity must be at least 1")
		return
	}

	ctrl.state.mu.Lock()
	items := ctrl.state.carts[subject]
	found := false
	for i := range items {
		if items[i].ID == cartID {
			items[i].Quantity = reqBody.Quantity
			found = true
			break
		}
	}
	ctrl.state.mu.Unlock()
	if !found {
		logger.Error().Msgf("cartId=%s not found", cartID)
		writeFail(c, w, http.StatusNotFound, "cart item not found")
		return
	}

	logger.Info().
		Int64(log.KEY_QUANTITY, reqBody.Quantity).
		Msg("updated cart item")
	writeData(c, w, map[string]interface{}{"cart": items})
}

func (ctrl Controller) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "Controller RemoveCartItem")
	defer span.End()

	cartID := mux.Vars(r)["cartId"]
	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Controller RemoveCartItem").
		Str(log.KEY_CART_ID, cartID).
		Logger()

	subject := token.SubjectFromContext(c)

	ctrl.state.mu.Lock()
	items := ctrl.state.carts[subject]
	found := false
	for i := range items {
		if items[i].ID == cartID {
			items = append(items[:i], items[i+1:]...)
			found = true
			break
		}
	}
	ctrl.state.carts[subject] = items
	ctrl.state.mu.Unlock()
	if !found {
		logger.Error().Msgf("cartId=%s not found", cartID)
		writeFail(c, w, http.StatusNotFound, "cart item not found")
		return
	}

	logger.Info().Msg("removed cart item")
	writeData(c, w, map[string]interface{}{"cart": items})
}
