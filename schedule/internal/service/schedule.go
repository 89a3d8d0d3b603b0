package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/heram/storefront/internal/api"
	inErrors "github.com/heram/storefront/internal/errors"
	"github.com/heram/storefront/internal/log"
	"github.com/heram/storefront/internal/otel"
	"github.com/heram/storefront/schedule/pkg/response"
)

type ScheduleService struct {
	api *api.Client
}

func NewScheduleService(apiClient *api.Client) ScheduleService {
	return ScheduleService{api: apiClient}
}

// FindDeliveryTimes returns the slot inventory with past slots already
// filtered out.
func (svc ScheduleService) FindDeliveryTimes(
	c context.Context,
) ([]response.DaySchedule, error) {
	return svc.find(c, "/delivery-time")
}

// FindDeliveryTimesByType returns the slot inventory of one service type
// (shop delivery vs cleaning visit), past slots filtered out.
func (svc ScheduleService) FindDeliveryTimesByType(
	c context.Context,
	scheduleType string,
) ([]response.DaySchedule, error) {
	return svc.find(c, "/delivery-time/"+scheduleType)
}

func (svc ScheduleService) find(
	c context.Context,
	path string,
) ([]response.DaySchedule, error) {
	c, span := otel.Tracer.Start(c, "ScheduleService find")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "ScheduleService find").
		Str(log.KEY_PROCESS, "finding delivery times").
		Str(log.KEY_REQUEST_URI, path).
		Logger()

	logger.Info().Msg("finding delivery times")
	days := []response.DaySchedule{}
	err := svc.api.Get(c, path, &days)
	if err != nil {
		err = fmt.Errorf("failed finding delivery times with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	days = response.Upcoming(days, time.Now())
	logger.Info().Msgf("found delivery times for %d days", len(days))

	return days, nil
}
