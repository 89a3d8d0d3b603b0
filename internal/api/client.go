package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	inErrors "github.com/heram/storefront/internal/errors"
	inHttp "github.com/heram/storefront/internal/http"
	"github.com/heram/storefront/internal/log"
	"github.com/heram/storefront/internal/otel"
	"github.com/heram/storefront/internal/token"
)

// Error is a failed API call flattened into its user-facing message.
type Error struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api call failed with statusCode=%d message=%s", e.StatusCode, e.Message)
}

// UserMessage converts any error into the text shown to the user. API errors
// carry the envelope message; everything else is stringified.
func UserMessage(err error) string {
	if err == nil {
		return unknownErrorMessage
	}
	apiErr := &Error{}
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

type Client struct {
	baseUrl string
	client  *http.Client
	tokens  token.Source
}

func NewClient(baseUrl string, tokens token.Source) *Client {
	return &Client{
		baseUrl: strings.TrimRight(baseUrl, "/"),
		client:  &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		tokens:  tokens,
	}
}

// HasToken reports whether a bearer token is currently available.
// Privileged operations consult this before issuing any network I/O.
func (cl *Client) HasToken() bool {
	return cl.tokens.Token() != ""
}

func (cl *Client) Get(c context.Context, path string, out interface{}) error {
	return cl.do(c, http.MethodGet, path, nil, out)
}

func (cl *Client) Post(c context.Context, path string, body, out interface{}) error {
	return cl.do(c, http.MethodPost, path, body, out)
}

func (cl *Client) Patch(c context.Context, path string, body, out interface{}) error {
	return cl.do(c, http.MethodPatch, path, body, out)
}

func (cl *Client) Delete(c context.Context, path string) error {
	return cl.do(c, http.MethodDelete, path, nil, nil)
}

func (cl *Client) do(
	c context.Context,
	method, path string,
	body, out interface{},
) error {
	c, span := otel.Tracer.Start(c, "Client "+method+" "+path)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Client do").
		Str(log.KEY_REQUEST_METHOD, method).
		Str(log.KEY_REQUEST_URL, cl.baseUrl+path).
		Logger()

	var reader *bytes.Buffer
	if body != nil {
		bodyJson, err := json.Marshal(body)
		if err != nil {
			err = fmt.Errorf("failed marshaling request body with error=%w", err)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return err
		}
		reader = bytes.NewBuffer(bodyJson)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(c, method, cl.baseUrl+path, reader)
	if err != nil {
		err = fmt.Errorf("failed creating request with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	req.Header.Set(inHttp.KEY_HEADER_CONTENT_TYPE, inHttp.VALUE_HEADER_APPLICATION_JSON)
	if t := cl.tokens.Token(); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}
	if requestId := log.RequestIDFromContext(c); requestId != "" {
		req.Header.Set(inHttp.KEY_HEADER_REQUEST_ID, requestId)
	}

	logger.Trace().Msg("sending request")
	resp, err := cl.client.Do(req)
	if err != nil {
		err = fmt.Errorf("failed sending request with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	defer resp.Body.Close()
	logger.Trace().Msgf("received response with statusCode=%d", resp.StatusCode)

	envelope := Envelope{}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		err = fmt.Errorf("failed decoding response envelope with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices ||
		envelope.Error {
		err = &Error{
			StatusCode: resp.StatusCode,
			Status:     envelope.Status,
			Message:    envelope.UserMessage(),
		}
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	if out == nil || len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		err = fmt.Errorf("failed unmarshaling response data with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	return nil
}
