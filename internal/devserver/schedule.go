package devserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	addressRequest "github.com/heram/storefront/address/pkg/request"
	addressResponse "github.com/heram/storefront/address/pkg/response"
	"github.com/heram/storefront/internal/log"
	"github.com/heram/storefront/internal/otel"
	"github.com/heram/storefront/internal/token"
)

// FindDeliveryTimes serves both the untyped and the typed slot listing.
// The stub inventory is identical for every service type.
func (ctrl Controller) FindDeliveryTimes(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "Controller FindDeliveryTimes")
	defer span.End()

	writeData(c, w, ctrl.state.deliveryDays(time.Now()))
}

func (ctrl Controller) FindAddresses(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "Controller FindAddresses")
	defer span.End()

	subject := token.SubjectFromContext(c)

	ctrl.state.mu.Lock()
	addresses := make([]addressResponse.Address, len(ctrl.state.addresses[subject]))
	copy(addresses, ctrl.state.addresses[subject])
	ctrl.state.mu.Unlock()

	writeData(c, w, addresses)
}

func (ctrl Controller) InsertAddress(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "Controller InsertAddress")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Controller InsertAddress").
		Logger()

	subject := token.SubjectFromContext(c)

	reqBody := addressRequest.UpsertAddress{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		logger.Error().Err(err).Msg("failed decoding request body")
		writeFail(c, w, http.StatusBadRequest, "invalid request body")
		return
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		logger.Error().Err(err).Msg("failed validating request body")
		writeFail(c, w, http.StatusBadRequest, "all address fields are required")
		return
	}

	address := addressResponse.Address{
		ID:       uuid.NewString(),
		Title:    reqBody.Title,
		Province: reqBody.Province,
		City:     reqBody.City,
		Street:   reqBody.Street,
		Plaque:   reqBody.Plaque,
	}
	ctrl.state.mu.Lock()
	ctrl.state.addresses[subject] = append(ctrl.state.addresses[subject], address)
	ctrl.state.mu.Unlock()

	logger.Info().Str(log.KEY_ADDRESS_ID, address.ID).Msg("inserted address")
	writeData(c, w, address)
}

func (ctrl Controller) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "Controller UpdateAddress")
	defer span.End()

	addressID := mux.Vars(r)["addressId"]
	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Controller UpdateAddress").
		Str(log.KEY_ADDRESS_ID, addressID).
		Logger()

	subject := token.SubjectFromContext(c)

	reqBody := addressRequest.UpsertAddress{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		logger.Error().Err(err).Msg("failed decoding request body")
		writeFail(c, w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctrl.state.mu.Lock()
	addresses := ctrl.state.addresses[subject]
	var updated *addressResponse.Address
	for i := range addresses {
		if addresses[i].ID == addressID {
			addresses[i].Title = reqBody.Title
			addresses[i].Province = reqBody.Province
			addresses[i].City = reqBody.City
			addresses[i].Street = reqBody.Street
			addresses[i].Plaque = reqBody.Plaque
			updated = &addresses[i]
			break
		}
	}
	ctrl.state.mu.Unlock()
	if updated == nil {
		logger.Error().Msgf("addressId=%s not found", addressID)
		writeFail(c, w, http.StatusNotFound, "address not found")
		return
	}

	logger.Info().Msg("updated address")
	writeData(c, w, *updated)
}

func (ctrl Controller) RemoveAddress(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "Controller RemoveAddress")
	defer span.End()

	addressID := mux.Vars(r)["addressId"]
	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Controller RemoveAddress").
		Str(log.KEY_ADDRESS_ID, addressID).
		Logger()

	subject := token.SubjectFromContext(c)

	ctrl.state.mu.Lock()
	addresses := ctrl.state.addresses[subject]
	found := false
	for i := range addresses {
		if addresses[i].ID == addressID {
			ctrl.state.addresses[subject] = append(addresses[:i], addresses[i+1:]...)
			found = true
			break
		}
	}
	ctrl.state.mu.Unlock()
	if !found {
		logger.Error().Msgf("addressId=%s not found", addressID)
		writeFail(c, w, http.StatusNotFound, "address not found")
		return
	}

	logger.Info().Msg("removed address")
	writeData(c, w, nil)
}
