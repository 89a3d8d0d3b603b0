package devserver

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	adminRequest "github.com/heram/storefront/admin/pkg/request"
	adminResponse "github.com/heram/storefront/admin/pkg/response"
	"github.com/heram/storefront/internal/log"
	"github.com/heram/storefront/internal/otel"
)

func (ctrl Controller) FindDiscounts(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "Controller FindDiscounts")
	defer span.End()

	ctrl.state.mu.Lock()
	discounts := make([]adminResponse.Discount, len(ctrl.state.discounts))
	copy(discounts, ctrl.state.discounts)
	ctrl.state.mu.Unlock()

	writeData(c, w, discounts)
}

func (ctrl Controller) InsertDiscount(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "Controller InsertDiscount")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Controller InsertDiscount").
		Logger()

	reqBody := adminRequest.Discount{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		logger.Error().Err(err).Msg("failed decoding request body")
		writeFail(c, w, http.StatusBadRequest, "invalid request body")
		return
	}

	discount := adminResponse.Discount{
		ID:      uuid.NewString(),
		Code:    reqBody.Code,
		Percent: reqBody.Percent,
		Active:  true,
	}
	ctrl.state.mu.Lock()
	ctrl.state.discounts = append(ctrl.state.discounts, discount)
	ctrl.state.mu.Unlock()

	logger.Info().Msgf("inserted discount code=%s", discount.Code)
	writeData(c, w, discount)
}

func (ctrl Controller) ToggleDiscountStatus(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "Controller ToggleDiscountStatus")
	defer span.End()

	discountID := mux.Vars(r)["discountId"]
	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Controller ToggleDiscountStatus").
		Logger()

	ctrl.state.mu.Lock()
	var toggled *adminResponse.Discount
	for i := range ctrl.state.discounts {
		if ctrl.state.discounts[i].ID == discountID {
			ctrl.state.discounts[i].Active = !ctrl.state.discounts[i].Active
			toggled = &ctrl.state.discounts[i]
			break
		}
	}
	ctrl.state.mu.Unlock()
	if toggled == nil {
		logger.Error().Msgf("discountId=%s not found", discountID)
		writeFail(c, w, http.StatusNotFound, "discount not found")
		return
	}

	logger.Info().Msgf("toggled discountId=%s active=%t", discountID, toggled.Active)
	writeData(c, w, *toggled)
}

func (ctrl Controller) FindSetting(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "Controller FindSetting")
	defer span.End()

	settingType := mux.Vars(r)["settingType"]

	ctrl.state.mu.Lock()
	setting, ok := ctrl.state.settings[settingType]
	ctrl.state.mu.Unlock()
	if !ok {
		writeFail(c, w, http.StatusNotFound, "setting not found")
		return
	}

	writeData(c, w, setting)
}

func (ctrl Controller) UpsertSetting(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "Controller UpsertSetting")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Controller UpsertSetting").
		Logger()

	reqBody := adminRequest.Setting{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		logger.Error().Err(err).Msg("failed decoding request body")
		writeFail(c, w, http.StatusBadRequest, "invalid request body")
		return
	}

	setting := adminResponse.Setting{
		Type:         "shop",
		TaxPercent:   reqBody.TaxPercent,
		ShippingCost: reqBody.ShippingCost,
	}
	ctrl.state.mu.Lock()
	ctrl.state.settings[setting.Type] = setting
	ctrl.state.mu.Unlock()

	logger.Info().Msg("upserted setting")
	writeData(c, w, setting)
}

func (ctrl Controller) FindCategories(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "Controller FindCategories")
	defer span.End()

	ctrl.state.mu.Lock()
	categories := make([]adminResponse.Category, len(ctrl.state.categories))
	copy(categories, ctrl.state.categories)
	ctrl.state.mu.Unlock()

	writeData(c, w, categories)
}

func (ctrl Controller) InsertCategory(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "Controller InsertCategory")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Controller InsertCategory").
		Logger()

	reqBody := adminRequest.Category{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		logger.Error().Err(err).Msg("failed decoding request body")
		writeFail(c, w, http.StatusBadRequest, "invalid request body")
		return
	}

	category := adminResponse.Category{
		ID:       uuid.NewString(),
		Title:    reqBody.Title,
		ParentID: reqBody.ParentID,
	}
	ctrl.state.mu.Lock()
	ctrl.state.categories = append(ctrl.state.categories, category)
	ctrl.state.mu.Unlock()

	logger.Info().Msgf("inserted category title=%s", category.Title)
	writeData(c, w, category)
}

func (ctrl Controller) FindMedia(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "Controller FindMedia")
	defer span.End()

	ctrl.state.mu.Lock()
	media := make([]adminResponse.Media, len(ctrl.state.media))
	copy(media, ctrl.state.media)
	ctrl.state.mu.Unlock()

	writeData(c, w, media)
}

func (ctrl Controller) UploadMedia(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "Controller UploadMedia")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Controller UploadMedia").
		Logger()

	reqBody := adminRequest.Media{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		logger.Error().Err(err).Msg("failed decoding request body")
		writeFail(c, w, http.StatusBadRequest, "invalid request body")
		return
	}

	media := adminResponse.Media{
		ID:  uuid.NewString(),
		URL: "/media/" + reqBody.Filename,
	}
	ctrl.state.mu.Lock()
	ctrl.state.media = append(ctrl.state.media, media)
	ctrl.state.mu.Unlock()

	logger.Info().Msgf("uploaded media filename=%s", reqBody.Filename)
	writeData(c, w, media)
}
