package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/heram/storefront/internal/api"
	"github.com/heram/storefront/internal/token"
	"github.com/heram/storefront/schedule/pkg/response"
)

func TestFindDeliveryTimesFiltersPastSlots(t *testing.T) {
	now := time.Now()
	days := []response.DaySchedule{
		{
			Date: now.Format("2006-01-02"),
			Slots: []response.TimeSlot{
				{ID: "past", Start: now.Add(-2 * time.Hour), End: now.Add(-time.Hour)},
				{ID: "future", Start: now.Add(time.Hour), End: now.Add(2 * time.Hour)},
			},
		},
		{
			Date: now.AddDate(0, 0, -1).Format("2006-01-02"),
			Slots: []response.TimeSlot{
				{ID: "yesterday", Start: now.Add(-24 * time.Hour), End: now.Add(-22 * time.Hour)},
			},
		},
	}
	body, err := json.Marshal(days)
	assert.NoError(t, err)

	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/delivery-time", r.URL.Path)
			w.Write([]byte(`{"status":"success","error":false,"data":` + string(body) + `}`))
		}),
	)
	defer server.Close()
	svc := NewScheduleService(api.NewClient(server.URL, token.NewStaticSource("")))

	upcoming, err := svc.FindDeliveryTimes(context.Background())

	assert.NoError(t, err)
	assert.Len(t, upcoming, 1)
	assert.Len(t, upcoming[0].Slots, 1)
	assert.Equal(t, "future", upcoming[0].Slots[0].ID)
}

func TestFindDeliveryTimesByType(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/delivery-time/cleaning", r.URL.Path)
			w.Write([]byte(`{"status":"success","error":false,"data":[]}`))
		}),
	)
	defer server.Close()
	svc := NewScheduleService(api.NewClient(server.URL, token.NewStaticSource("")))

	days, err := svc.FindDeliveryTimesByType(context.Background(), "cleaning")

	assert.NoError(t, err)
	assert.Empty(t, days)
}
