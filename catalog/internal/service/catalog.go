package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/heram/storefront/catalog/pkg/response"
	"github.com/heram/storefront/internal/api"
	inErrors "github.com/heram/storefront/internal/errors"
	"github.com/heram/storefront/internal/log"
	"github.com/heram/storefront/internal/otel"
)

type CatalogService struct {
	api *api.Client
}

func NewCatalogService(apiClient *api.Client) CatalogService {
	return CatalogService{api: apiClient}
}

func (svc CatalogService) FindProducts(c context.Context) ([]response.Product, error) {
	c, span := otel.Tracer.Start(c, "CatalogService FindProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "CatalogService FindProducts").
		Str(log.KEY_PROCESS, "finding products").
		Logger()

	logger.Info().Msg("finding products")
	products := []response.Product{}
	err := svc.api.Get(c, "/product", &products)
	if err != nil {
		err = fmt.Errorf("failed finding products with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d products", len(products))

	return products, nil
}

func (svc CatalogService) FindProductById(
	c context.Context,
	productID string,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "CatalogService FindProductById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "CatalogService FindProductById").
		Str(log.KEY_PRODUCT_ID, productID).
		Str(log.KEY_PROCESS, "finding product by id").
		Logger()

	logger.Info().Msg("finding product by id")
	product := response.Product{}
	err := svc.api.Get(c, "/product/"+productID, &product)
	if err != nil {
		err = fmt.Errorf("failed finding productId=%s with error=%w", productID, err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msg("found product by id")

	return product, nil
}

func (svc CatalogService) FindProductsByCategory(
	c context.Context,
	categoryID string,
) ([]response.Product, error) {
	c, span := otel.Tracer.Start(c, "CatalogService FindProductsByCategory")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "CatalogService FindProductsByCategory").
		Str(log.KEY_PROCESS, "finding products by category").
		Logger()

	logger.Info().Msg("finding products by category")
	products := []response.Product{}
	err := svc.api.Get(c, "/product/cat/"+categoryID, &products)
	if err != nil {
		err = fmt.Errorf(
			"failed finding products by categoryId=%s with error=%w",
			categoryID,
			err,
		)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d products by category", len(products))

	return products, nil
}

// FindTastingTray returns the catalog of the four-tier taste pyramid, one
// product list per tier.
func (svc CatalogService) FindTastingTray(
	c context.Context,
) (response.TastingTray, error) {
	c, span := otel.Tracer.Start(c, "CatalogService FindTastingTray")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "CatalogService FindTastingTray").
		Str(log.KEY_PROCESS, "finding tasting tray").
		Logger()

	logger.Info().Msg("finding tasting tray")
	tray := response.TastingTray{}
	err := svc.api.Get(c, "/product/tasting-tray", &tray)
	if err != nil {
		err = fmt.Errorf("failed finding tasting tray with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.TastingTray{}, err
	}
	logger.Info().Msg("found tasting tray")

	return tray, nil
}
