package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heram/storefront/internal/token"
)

func TestClientDecodesEnvelopeData(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
			w.Write([]byte(`{"status":"success","error":false,"data":{"id":"p1","title":"Espresso"}}`))
		}),
	)
	defer server.Close()

	client := NewClient(server.URL, token.NewStaticSource("test-token"))
	out := struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}{}

	err := client.Get(context.Background(), "/product/p1", &out)

	assert.NoError(t, err)
	assert.Equal(t, "p1", out.ID)
	assert.Equal(t, "Espresso", out.Title)
}

func TestClientEnvelopeErrorFlag(t *testing.T) {
	// error flag set with a 200 status still counts as failure
	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"failed","error":true,"message":"product not found"}`))
		}),
	)
	defer server.Close()

	client := NewClient(server.URL, token.NewStaticSource(""))

	err := client.Get(context.Background(), "/product/missing", nil)

	assert.Error(t, err)
	assert.Equal(t, "product not found", UserMessage(err))
}

func TestClientNon2xxStatus(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"status":"failed","error":true,"message":["missing","authorization"]}`))
		}),
	)
	defer server.Close()

	client := NewClient(server.URL, token.NewStaticSource(""))

	err := client.Get(context.Background(), "/cart", nil)

	assert.Error(t, err)
	apiErr := &Error{}
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "missing authorization", apiErr.Message)
}

func TestClientHasToken(t *testing.T) {
	tokens := token.NewStaticSource("")
	client := NewClient("http://localhost", tokens)

	assert.False(t, client.HasToken())

	tokens.Set("test-token")
	assert.True(t, client.HasToken())
}
