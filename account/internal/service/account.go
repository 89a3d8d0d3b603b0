package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/heram/storefront/account/pkg/request"
	"github.com/heram/storefront/account/pkg/response"
	"github.com/heram/storefront/internal/api"
	inErrors "github.com/heram/storefront/internal/errors"
	"github.com/heram/storefront/internal/log"
	"github.com/heram/storefront/internal/otel"
	"github.com/heram/storefront/internal/token"
)

type AccountService struct {
	api    *api.Client
	tokens *token.StaticSource
}

func NewAccountService(apiClient *api.Client, tokens *token.StaticSource) AccountService {
	return AccountService{api: apiClient, tokens: tokens}
}

// RequestOtp asks the API to send a one-time code to the given phone.
func (svc AccountService) RequestOtp(c context.Context, param request.Auth) error {
	c, span := otel.Tracer.Start(c, "AccountService RequestOtp")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "AccountService RequestOtp").
		Str(log.KEY_PHONE, param.Phone).
		Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "validating phone").Logger()
	logger.Info().Msg("validating phone")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, param); err != nil {
		err = fmt.Errorf("failed validating phone with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("validated phone")

	logger = logger.With().Str(log.KEY_PROCESS, "requesting otp").Logger()
	logger.Info().Msg("requesting otp")
	err := svc.api.Post(c, "/users/auth", param, nil)
	if err != nil {
		err = fmt.Errorf("failed requesting otp with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("requested otp")

	return nil
}

// VerifyOtp exchanges a one-time code for a bearer token and installs it
// into the client's token source.
func (svc AccountService) VerifyOtp(c context.Context, param request.Otp) (string, error) {
	c, span := otel.Tracer.Start(c, "AccountService VerifyOtp")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "AccountService VerifyOtp").
		Str(log.KEY_PHONE, param.Phone).
		Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "validating otp").Logger()
	logger.Info().Msg("validating otp")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, param); err != nil {
		err = fmt.Errorf("failed validating otp with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	logger.Info().Msg("validated otp")

	logger = logger.With().Str(log.KEY_PROCESS, "verifying otp").Logger()
	logger.Info().Msg("verifying otp")
	auth := response.Auth{}
	err := svc.api.Post(c, "/users/otp", param, &auth)
	if err != nil {
		err = fmt.Errorf("failed verifying otp with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	logger.Info().Msg("verified otp")

	svc.tokens.Set(auth.Token)
	return auth.Token, nil
}

func (svc AccountService) FindProfile(c context.Context) (response.Profile, error) {
	c, span := otel.Tracer.Start(c, "AccountService FindProfile")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "AccountService FindProfile").
		Str(log.KEY_PROCESS, "finding profile").
		Logger()

	logger.Info().Msg("finding profile")
	profile := response.Profile{}
	err := svc.api.Get(c, "/users/profile", &profile)
	if err != nil {
		err = fmt.Errorf("failed finding profile with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Profile{}, err
	}
	logger.Info().Msg("found profile")

	return profile, nil
}

func (svc AccountService) UpdateProfile(
	c context.Context,
	param request.Profile,
) (response.Profile, error) {
	c, span := otel.Tracer.Start(c, "AccountService UpdateProfile")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "AccountService UpdateProfile").
		Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "validating profile").Logger()
	logger.Info().Msg("validating profile")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, param); err != nil {
		err = fmt.Errorf("failed validating profile with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Profile{}, err
	}
	logger.Info().Msg("validated profile")

	logger = logger.With().Str(log.KEY_PROCESS, "updating profile").Logger()
	logger.Info().Msg("updating profile")
	profile := response.Profile{}
	err := svc.api.Post(c, "/users/profile", param, &profile)
	if err != nil {
		err = fmt.Errorf("failed updating profile with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Profile{}, err
	}
	logger.Info().Msg("updated profile")

	return profile, nil
}
