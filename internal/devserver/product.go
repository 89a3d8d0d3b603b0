package devserver

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	catalogResponse "github.com/heram/storefront/catalog/pkg/response"
	"github.com/heram/storefront/internal/log"
	"github.com/heram/storefront/internal/otel"
)

func (ctrl Controller) FindProducts(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "Controller FindProducts")
	defer span.End()

	ctrl.state.mu.Lock()
	products := make([]catalogResponse.Product, len(ctrl.state.products))
	copy(products, ctrl.state.products)
	ctrl.state.mu.Unlock()

	writeData(c, w, products)
}

func (ctrl Controller) FindProductById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "Controller FindProductById")
	defer span.End()

	productID := mux.Vars(r)["productId"]
	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Controller FindProductById").
		Str(log.KEY_PRODUCT_ID, productID).
		Logger()

	ctrl.state.mu.Lock()
	product, ok := ctrl.state.findProduct(productID)
	ctrl.state.mu.Unlock()
	if !ok {
		logger.Error().Msgf("productId=%s not found", productID)
		writeFail(c, w, http.StatusNotFound, "product not found")
		return
	}

	writeData(c, w, product)
}

func (ctrl Controller) FindProductsByCategory(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "Controller FindProductsByCategory")
	defer span.End()

	categoryID := mux.Vars(r)["categoryId"]

	ctrl.state.mu.Lock()
	products := []catalogResponse.Product{}
	for _, p := range ctrl.state.products {
		for _, cat := range p.Categories {
			if cat == categoryID {
				products = append(products, p)
				break
			}
		}
	}
	ctrl.state.mu.Unlock()

	writeData(c, w, products)
}

func (ctrl Controller) FindTastingTray(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "Controller FindTastingTray")
	defer span.End()

	ctrl.state.mu.Lock()
	tray := ctrl.state.tray
	ctrl.state.mu.Unlock()

	writeData(c, w, tray)
}
