package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/heram/storefront/address/pkg/request"
	"github.com/heram/storefront/address/pkg/response"
	"github.com/heram/storefront/internal/api"
	inErrors "github.com/heram/storefront/internal/errors"
	"github.com/heram/storefront/internal/log"
	"github.com/heram/storefront/internal/otel"
)

type AddressService struct {
	api *api.Client
}

func NewAddressService(apiClient *api.Client) AddressService {
	return AddressService{api: apiClient}
}

func (svc AddressService) FindAddresses(c context.Context) ([]response.Address, error) {
	c, span := otel.Tracer.Start(c, "AddressService FindAddresses")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "AddressService FindAddresses").
		Str(log.KEY_PROCESS, "finding addresses").
		Logger()

	logger.Info().Msg("finding addresses")
	addresses := []response.Address{}
	err := svc.api.Get(c, "/address", &addresses)
	if err != nil {
		err = fmt.Errorf("failed finding addresses with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d addresses", len(addresses))

	return addresses, nil
}

func (svc AddressService) InsertAddress(
	c context.Context,
	param request.UpsertAddress,
) (response.Address, error) {
	c, span := otel.Tracer.Start(c, "AddressService InsertAddress")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "AddressService InsertAddress").
		Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "validating address").Logger()
	logger.Info().Msg("validating address")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, param); err != nil {
		err = fmt.Errorf("failed validating address with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Address{}, err
	}
	logger.Info().Msg("validated address")

	logger = logger.With().Str(log.KEY_PROCESS, "inserting address").Logger()
	logger.Info().Msg("inserting address")
	address := response.Address{}
	err := svc.api.Post(c, "/address", param, &address)
	if err != nil {
		err = fmt.Errorf("failed inserting address with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Address{}, err
	}
	logger = logger.With().Str(log.KEY_ADDRESS_ID, address.ID).Logger()
	logger.Info().Msg("inserted address")

	return address, nil
}

func (svc AddressService) UpdateAddress(
	c context.Context,
	addressID string,
	param request.UpsertAddress,
) (response.Address, error) {
	c, span := otel.Tracer.Start(c, "AddressService UpdateAddress")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "AddressService UpdateAddress").
		Str(log.KEY_ADDRESS_ID, addressID).
		Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "validating address").Logger()
	logger.Info().Msg("validating address")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, param); err != nil {
		err = fmt.Errorf("failed validating address with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Address{}, err
	}
	logger.Info().Msg("validated address")

	logger = logger.With().Str(log.KEY_PROCESS, "updating address").Logger()
	logger.Info().Msg("updating address")
	address := response.Address{}
	err := svc.api.Patch(c, "/address/"+addressID, param, &address)
	if err != nil {
		err = fmt.Errorf("failed updating addressId=%s with error=%w", addressID, err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Address{}, err
	}
	logger.Info().Msg("updated address")

	return address, nil
}

func (svc AddressService) RemoveAddress(c context.Context, addressID string) error {
	c, span := otel.Tracer.Start(c, "AddressService RemoveAddress")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "AddressService RemoveAddress").
		Str(log.KEY_ADDRESS_ID, addressID).
		Str(log.KEY_PROCESS, "removing address").
		Logger()

	logger.Info().Msg("removing address")
	err := svc.api.Delete(c, "/address/"+addressID)
	if err != nil {
		err = fmt.Errorf("failed removing addressId=%s with error=%w", addressID, err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("removed address")

	return nil
}
