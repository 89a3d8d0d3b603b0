package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heram/storefront/address/pkg/request"
	"github.com/heram/storefront/internal/api"
	"github.com/heram/storefront/internal/token"
)

func newTestService(t *testing.T, handler http.HandlerFunc) AddressService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewAddressService(api.NewClient(server.URL, token.NewStaticSource("test-token")))
}

func TestFindAddresses(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/address", r.URL.Path)
		w.Write([]byte(`{"status":"success","error":false,"data":[
			{"id":"addr-1","title":"home","province":"Tehran","city":"Tehran","street":"Valiasr","plaque":"12"}
		]}`))
	})

	addresses, err := svc.FindAddresses(context.Background())

	assert.NoError(t, err)
	assert.Len(t, addresses, 1)
	assert.Equal(t, "home", addresses[0].Title)
}

func TestInsertAddressRejectsIncompleteForm(t *testing.T) {
	requests := 0
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
	})

	_, err := svc.InsertAddress(context.Background(), request.UpsertAddress{Title: "home"})

	assert.Error(t, err)
	assert.Equal(t, 0, requests)
}

func TestInsertAddress(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{"status":"success","error":false,"data":{"id":"addr-1","title":"home"}}`))
	})

	address, err := svc.InsertAddress(context.Background(), request.UpsertAddress{
		Title:    "home",
		Province: "Tehran",
		City:     "Tehran",
		Street:   "Valiasr",
		Plaque:   "12",
	})

	assert.NoError(t, err)
	assert.Equal(t, "addr-1", address.ID)
}

func TestRemoveAddress(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/address/addr-1", r.URL.Path)
		w.Write([]byte(`{"status":"success","error":false}`))
	})

	assert.NoError(t, svc.RemoveAddress(context.Background(), "addr-1"))
}
