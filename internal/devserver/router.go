package devserver

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/heram/storefront/internal/constants"
	"github.com/heram/storefront/internal/middleware"
)

// NewRouter wires the full stub API surface. Everything lives in memory;
// cart, profile and address routes require a bearer token from /users/otp.
func NewRouter(state *State) *mux.Router {
	router := mux.NewRouter()
	router.Use(otelmux.Middleware(constants.APP_DEV_SERVER))
	router.Use(middleware.Logging)
	router.Use(middleware.RecoverPanic)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	controller := Controller{state: state}

	product := router.PathPrefix("/product").Subrouter()
	product.HandleFunc("/tasting-tray", controller.FindTastingTray).Methods(http.MethodGet)
	product.HandleFunc("/cat/{categoryId}", controller.FindProductsByCategory).
		Methods(http.MethodGet)
	product.HandleFunc("/{productId}", controller.FindProductById).Methods(http.MethodGet)
	product.HandleFunc("", controller.FindProducts).Methods(http.MethodGet)

	schedule := router.PathPrefix("/delivery-time").Subrouter()
	schedule.HandleFunc("/{scheduleType}", controller.FindDeliveryTimes).Methods(http.MethodGet)
	schedule.HandleFunc("", controller.FindDeliveryTimes).Methods(http.MethodGet)

	profile := router.PathPrefix("/users/profile").Subrouter()
	profile.Use(middleware.Auth(state.secretKey))
	profile.HandleFunc("", controller.FindProfile).Methods(http.MethodGet)
	profile.HandleFunc("", controller.UpdateProfile).Methods(http.MethodPost)

	users := router.PathPrefix("/users").Subrouter()
	users.HandleFunc("/auth", controller.RequestOtp).Methods(http.MethodPost)
	users.HandleFunc("/otp", controller.VerifyOtp).Methods(http.MethodPost)

	cart := router.PathPrefix("/cart").Subrouter()
	cart.Use(middleware.Auth(state.secretKey))
	cart.HandleFunc("", controller.FindCart).Methods(http.MethodGet)
	cart.HandleFunc("", controller.InsertCartItem).Methods(http.MethodPost)
	cart.HandleFunc("/{cartId}", controller.UpdateCartItem).Methods(http.MethodPatch)
	cart.HandleFunc("/{cartId}", controller.RemoveCartItem).Methods(http.MethodDelete)

	address := router.PathPrefix("/address").Subrouter()
	address.Use(middleware.Auth(state.secretKey))
	address.HandleFunc("", controller.FindAddresses).Methods(http.MethodGet)
	address.HandleFunc("", controller.InsertAddress).Methods(http.MethodPost)
	address.HandleFunc("/{addressId}", controller.UpdateAddress).Methods(http.MethodPatch)
	address.HandleFunc("/{addressId}", controller.RemoveAddress).Methods(http.MethodDelete)

	discount := router.PathPrefix("/discount").Subrouter()
	discount.HandleFunc("/change-status/{discountId}", controller.ToggleDiscountStatus).
		Methods(http.MethodPost)
	discount.HandleFunc("", controller.FindDiscounts).Methods(http.MethodGet)
	discount.HandleFunc("", controller.InsertDiscount).Methods(http.MethodPost)

	setting := router.PathPrefix("/setting").Subrouter()
	setting.HandleFunc("/{settingType}", controller.FindSetting).Methods(http.MethodGet)
	setting.HandleFunc("", controller.UpsertSetting).Methods(http.MethodPost)

	category := router.PathPrefix("/category").Subrouter()
	category.HandleFunc("", controller.FindCategories).Methods(http.MethodGet)
	category.HandleFunc("", controller.InsertCategory).Methods(http.MethodPost)

	media := router.PathPrefix("/store").Subrouter()
	media.HandleFunc("", controller.FindMedia).Methods(http.MethodGet)
	media.HandleFunc("", controller.UploadMedia).Methods(http.MethodPost)

	return router
}

type Controller struct {
	state *State
}
