package devserver

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	accountRequest "github.com/heram/storefront/account/pkg/request"
	accountResponse "github.com/heram/storefront/account/pkg/response"
	"github.com/heram/storefront/internal/constants"
	"github.com/heram/storefront/internal/log"
	"github.com/heram/storefront/internal/otel"
	"github.com/heram/storefront/internal/token"
)

func (ctrl Controller) RequestOtp(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "Controller RequestOtp")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Controller RequestOtp").
		Logger()

	reqBody := accountRequest.Auth{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		logger.Error().Err(err).Msg("failed decoding request body")
		writeFail(c, w, http.StatusBadRequest, "invalid request body")
		return
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		logger.Error().Err(err).Msg("failed validating request body")
		writeFail(c, w, http.StatusBadRequest, "phone number must be 11 digits")
		return
	}
	logger = logger.With().Str(log.KEY_PHONE, reqBody.Phone).Logger()

	n, err := rand.Int(rand.Reader, big.NewInt(100000))
	if err != nil {
		logger.Error().Err(err).Msg("failed generating otp")
		writeFail(c, w, http.StatusInternalServerError, "failed generating otp")
		return
	}
	code := fmt.Sprintf("%05d", n.Int64())

	hashed, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		logger.Error().Err(err).Msg("failed hashing otp")
		writeFail(c, w, http.StatusInternalServerError, "failed generating otp")
		return
	}

	ctrl.state.mu.Lock()
	ctrl.state.otps[reqBody.Phone] = hashed
	ctrl.state.mu.Unlock()

	// no SMS gateway here, the code goes to the log instead
	logger.Info().Msgf("otp for phone=%s is %s", reqBody.Phone, code)
	writeData(c, w, nil)
}

func (ctrl Controller) VerifyOtp(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "Controller VerifyOtp")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Controller VerifyOtp").
		Logger()

	reqBody := accountRequest.Otp{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		logger.Error().Err(err).Msg("failed decoding request body")
		writeFail(c, w, http.StatusBadRequest, "invalid request body")
		return
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		logger.Error().Err(err).Msg("failed validating request body")
		writeFail(c, w, http.StatusBadRequest, "otp code must be 5 digits")
		return
	}
	logger = logger.With().Str(log.KEY_PHONE, reqBody.Phone).Logger()

	ctrl.state.mu.Lock()
	hashed, ok := ctrl.state.otps[reqBody.Phone]
	if ok {
		delete(ctrl.state.otps, reqBody.Phone)
	}
	ctrl.state.mu.Unlock()
	if !ok {
		logger.Error().Msg("no otp requested for phone")
		writeFail(c, w, http.StatusUnauthorized, "otp code is wrong or expired")
		return
	}
	if err := bcrypt.CompareHashAndPassword(hashed, []byte(reqBody.Code)); err != nil {
		logger.Error().Err(err).Msg("otp mismatch")
		writeFail(c, w, http.StatusUnauthorized, "otp code is wrong or expired")
		return
	}

	logger = logger.With().Str(log.KEY_PROCESS, "creating token").Logger()
	logger.Info().Msg("creating token")
	tokenCreationTime := time.Now()
	jwtToken := jwt.NewWithClaims(
		jwt.SigningMethodHS256,
		jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{constants.AUDIENCE_CUSTOMER},
			Issuer:    constants.APP_DEV_SERVER,
			Subject:   reqBody.Phone,
			ExpiresAt: jwt.NewNumericDate(tokenCreationTime.Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(tokenCreationTime),
		},
	)
	signedToken, err := jwtToken.SignedString([]byte(ctrl.state.secretKey))
	if err != nil {
		logger.Error().Err(err).Msgf("failed signing token with error=%s", err.Error())
		writeFail(c, w, http.StatusInternalServerError, "failed creating token")
		return
	}
	logger.Info().Msg("created token")

	writeData(c, w, accountResponse.Auth{Token: signedToken})
}

func (ctrl Controller) FindProfile(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "Controller FindProfile")
	defer span.End()

	subject := token.SubjectFromContext(c)

	ctrl.state.mu.Lock()
	p := ctrl.state.profiles[subject]
	ctrl.state.mu.Unlock()

	writeData(c, w, accountResponse.Profile{
		Phone:     subject,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
	})
}

func (ctrl Controller) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "Controller UpdateProfile")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Controller UpdateProfile").
		Logger()

	subject := token.SubjectFromContext(c)

	reqBody := accountRequest.Profile{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		logger.Error().Err(err).Msg("failed decoding request body")
		writeFail(c, w, http.StatusBadRequest, "invalid request body")
		return
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		logger.Error().Err(err).Msg("failed validating request body")
		writeFail(c, w, http.StatusBadRequest, "first and last name are required")
		return
	}

	ctrl.state.mu.Lock()
	ctrl.state.profiles[subject] = profile{
		FirstName: reqBody.FirstName,
		LastName:  reqBody.LastName,
		Email:     reqBody.Email,
	}
	ctrl.state.mu.Unlock()

	logger.Info().Msg("updated profile")
	writeData(c, w, accountResponse.Profile{
		Phone:     subject,
		FirstName: reqBody.FirstName,
		LastName:  reqBody.LastName,
		Email:     reqBody.Email,
	})
}
