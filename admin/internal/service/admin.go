package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/heram/storefront/admin/pkg/request"
	"github.com/heram/storefront/admin/pkg/response"
	"github.com/heram/storefront/internal/api"
	inErrors "github.com/heram/storefront/internal/errors"
	"github.com/heram/storefront/internal/log"
	"github.com/heram/storefront/internal/otel"
)

// AdminService is the dashboard's client surface: discount codes, site
// settings, the category tree and the media gallery.
type AdminService struct {
	api *api.Client
}

func NewAdminService(apiClient *api.Client) AdminService {
	return AdminService{api: apiClient}
}

func (svc AdminService) FindDiscounts(c context.Context) ([]response.Discount, error) {
	c, span := otel.Tracer.Start(c, "AdminService FindDiscounts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "AdminService FindDiscounts").
		Str(log.KEY_PROCESS, "finding discounts").
		Logger()

	logger.Info().Msg("finding discounts")
	discounts := []response.Discount{}
	err := svc.api.Get(c, "/discount", &discounts)
	if err != nil {
		err = fmt.Errorf("failed finding discounts with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d discounts", len(discounts))

	return discounts, nil
}

func (svc AdminService) InsertDiscount(
	c context.Context,
	param request.Discount,
) (response.Discount, error) {
	c, span := otel.Tracer.Start(c, "AdminService InsertDiscount")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "AdminService InsertDiscount").
		Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "validating discount").Logger()
	logger.Info().Msg("validating discount")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, param); err != nil {
		err = fmt.Errorf("failed validating discount with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Discount{}, err
	}
	logger.Info().Msg("validated discount")

	logger = logger.With().Str(log.KEY_PROCESS, "inserting discount").Logger()
	logger.Info().Msg("inserting discount")
	discount := response.Discount{}
	err := svc.api.Post(c, "/discount", param, &discount)
	if err != nil {
		err = fmt.Errorf("failed inserting discount with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Discount{}, err
	}
	logger.Info().Msg("inserted discount")

	return discount, nil
}

func (svc AdminService) ToggleDiscountStatus(
	c context.Context,
	discountID string,
) (response.Discount, error) {
	c, span := otel.Tracer.Start(c, "AdminService ToggleDiscountStatus")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "AdminService ToggleDiscountStatus").
		Str(log.KEY_PROCESS, "toggling discount status").
		Logger()

	logger.Info().Msg("toggling discount status")
	discount := response.Discount{}
	err := svc.api.Post(c, "/discount/change-status/"+discountID, nil, &discount)
	if err != nil {
		err = fmt.Errorf(
			"failed toggling status of discountId=%s with error=%w",
			discountID,
			err,
		)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Discount{}, err
	}
	logger.Info().Msg("toggled discount status")

	return discount, nil
}

func (svc AdminService) FindSetting(
	c context.Context,
	settingType string,
) (response.Setting, error) {
	c, span := otel.Tracer.Start(c, "AdminService FindSetting")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "AdminService FindSetting").
		Str(log.KEY_PROCESS, "finding setting").
		Logger()

	logger.Info().Msg("finding setting")
	setting := response.Setting{}
	err := svc.api.Get(c, "/setting/"+settingType, &setting)
	if err != nil {
		err = fmt.Errorf("failed finding setting type=%s with error=%w", settingType, err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Setting{}, err
	}
	logger.Info().Msg("found setting")

	return setting, nil
}

func (svc AdminService) UpsertSetting(
	c context.Context,
	param request.Setting,
) (response.Setting, error) {
	c, span := otel.Tracer.Start(c, "AdminService UpsertSetting")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "AdminService UpsertSetting").
		Str(log.KEY_PROCESS, "upserting setting").
		Logger()

	logger.Info().Msg("upserting setting")
	setting := response.Setting{}
	err := svc.api.Post(c, "/setting", param, &setting)
	if err != nil {
		err = fmt.Errorf("failed upserting setting with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Setting{}, err
	}
	logger.Info().Msg("upserted setting")

	return setting, nil
}

func (svc AdminService) FindCategories(c context.Context) ([]response.Category, error) {
	c, span := otel.Tracer.Start(c, "AdminService FindCategories")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "AdminService FindCategories").
		Str(log.KEY_PROCESS, "finding categories").
		Logger()

	logger.Info().Msg("finding categories")
	categories := []response.Category{}
	err := svc.api.Get(c, "/category", &categories)
	if err != nil {
		err = fmt.Errorf("failed finding categories with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d categories", len(categories))

	return categories, nil
}

func (svc AdminService) InsertCategory(
	c context.Context,
	param request.Category,
) (response.Category, error) {
	c, span := otel.Tracer.Start(c, "AdminService InsertCategory")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "AdminService InsertCategory").
		Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "validating category").Logger()
	logger.Info().Msg("validating category")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, param); err != nil {
		err = fmt.Errorf("failed validating category with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Category{}, err
	}
	logger.Info().Msg("validated category")

	logger = logger.With().Str(log.KEY_PROCESS, "inserting category").Logger()
	logger.Info().Msg("inserting category")
	category := response.Category{}
	err := svc.api.Post(c, "/category", param, &category)
	if err != nil {
		err = fmt.Errorf("failed inserting category with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Category{}, err
	}
	logger.Info().Msg("inserted category")

	return category, nil
}

func (svc AdminService) FindMedia(c context.Context) ([]response.Media, error) {
	c, span := otel.Tracer.Start(c, "AdminService FindMedia")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "AdminService FindMedia").
		Str(log.KEY_PROCESS, "finding media").
		Logger()

	logger.Info().Msg("finding media")
	media := []response.Media{}
	err := svc.api.Get(c, "/store", &media)
	if err != nil {
		err = fmt.Errorf("failed finding media with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d media files", len(media))

	return media, nil
}

func (svc AdminService) UploadMedia(
	c context.Context,
	param request.Media,
) (response.Media, error) {
	c, span := otel.Tracer.Start(c, "AdminService UploadMedia")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "AdminService UploadMedia").
		Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "validating media").Logger()
	logger.Info().Msg("validating media")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, param); err != nil {
		err = fmt.Errorf("failed validating media with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Media{}, err
	}
	logger.Info().Msg("validated media")

	logger = logger.With().Str(log.KEY_PROCESS, "uploading media").Logger()
	logger.Info().Msg("uploading media")
	media := response.Media{}
	err := svc.api.Post(c, "/store", param, &media)
	if err != nil {
		err = fmt.Errorf("failed uploading media with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Media{}, err
	}
	logger.Info().Msg("uploaded media")

	return media, nil
}
