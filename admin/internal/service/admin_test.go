package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heram/storefront/admin/pkg/request"
	"github.com/heram/storefront/internal/api"
	"github.com/heram/storefront/internal/token"
)

func newTestService(t *testing.T, handler http.HandlerFunc) AdminService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewAdminService(api.NewClient(server.URL, token.NewStaticSource("test-token")))
}

func TestFindDiscounts(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/discount", r.URL.Path)
		w.Write([]byte(`{"status":"success","error":false,"data":[
			{"id":"disc-1","code":"WELCOME","percent":10,"active":true}
		]}`))
	})

	discounts, err := svc.FindDiscounts(context.Background())

	assert.NoError(t, err)
	assert.Len(t, discounts, 1)
	assert.True(t, discounts[0].Active)
}

func TestInsertDiscountRejectsInvalidPercent(t *testing.T) {
	requests := 0
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
	})

	_, err := svc.InsertDiscount(
		context.Background(),
		request.Discount{Code: "TOOMUCH", Percent: 150},
	)

	assert.Error(t, err)
	assert.Equal(t, 0, requests)
}

func TestToggleDiscountStatus(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/discount/change-status/disc-1", r.URL.Path)
		w.Write([]byte(`{"status":"success","error":false,"data":{"id":"disc-1","active":false}}`))
	})

	discount, err := svc.ToggleDiscountStatus(context.Background(), "disc-1")

	assert.NoError(t, err)
	assert.False(t, discount.Active)
}

func TestFindSetting(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/setting/shop", r.URL.Path)
		w.Write([]byte(`{"status":"success","error":false,"data":{
			"type":"shop","taxPercent":"9","shippingCost":"35000"
		}}`))
	})

	setting, err := svc.FindSetting(context.Background(), "shop")

	assert.NoError(t, err)
	assert.Equal(t, "shop", setting.Type)
	assert.Equal(t, "35000", setting.ShippingCost.String())
}
