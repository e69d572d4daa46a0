package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flexprice/pricing/internal/api/dto"
	v1 "github.com/flexprice/pricing/internal/api/v1"
	"github.com/flexprice/pricing/internal/config"
	ierr "github.com/flexprice/pricing/internal/errors"
	"github.com/flexprice/pricing/internal/logger"
	"github.com/flexprice/pricing/internal/pyroscope"
	"github.com/flexprice/pricing/internal/rest/middleware"
	"github.com/flexprice/pricing/internal/types"
	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type stubPricingService struct {
	quote     *dto.QuoteResponse
	batch     *dto.BatchQuoteResponse
	check     *dto.CheckCouponResponse
	err       error
	requestID string
}

func (s *stubPricingService) Quote(ctx context.Context, _ dto.QuoteRequest) (*dto.QuoteResponse, error) {
	s.requestID = types.GetRequestID(ctx)
	return s.quote, s.err
}

func (s *stubPricingService) QuoteBatch(_ context.Context, _ dto.BatchQuoteRequest) (*dto.BatchQuoteResponse, error) {
	return s.batch, s.err
}

func (s *stubPricingService) CheckCoupon(_ context.Context, _ dto.CheckCouponRequest) (*dto.CheckCouponResponse, error) {
	return s.check, s.err
}

func newTestRouter(svc *stubPricingService) *gin.Engine {
	return newTestRouterWithConfig(svc, config.GetDefaultConfig())
}

func newTestRouterWithConfig(svc *stubPricingService, cfg *config.Configuration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.NewNoopLogger()
	return NewRouter(Handlers{
		Health: v1.NewHealthHandler(log),
		Quote:  v1.NewQuoteHandler(svc, log),
		Coupon: v1.NewCouponHandler(svc, log),
	}, cfg, log, pyroscope.NewPyroscopeService(cfg, log))
}

func doRequest(r http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&stubPricingService{})

	w := doRequest(r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(types.HeaderRequestID))
}

func TestCreateQuote(t *testing.T) {
	svc := &stubPricingService{quote: &dto.QuoteResponse{ID: "quote_1", Currency: "USD"}}
	r := newTestRouter(svc)

	w := doRequest(r, http.MethodPost, "/v1/quotes", `{"items":[]}`, map[string]string{
		types.HeaderRequestID: "req-123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-123", w.Header().Get(types.HeaderRequestID))
	assert.Equal(t, "req-123", svc.requestID)

	var resp dto.QuoteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "quote_1", resp.ID)
}

func TestCreateQuoteMalformedBody(t *testing.T) {
	r := newTestRouter(&stubPricingService{})

	w := doRequest(r, http.MethodPost, "/v1/quotes", `{"items":`, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid request format", resp.Error.Display)
}

func TestServiceErrorsMapToStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		hint   string
	}{
		{
			name:   "not found",
			err:    ierr.NewError("coupon missing").WithHint("Coupon NOPE was not found").Mark(ierr.ErrNotFound),
			status: http.StatusNotFound,
			hint:   "Coupon NOPE was not found",
		},
		{
			name:   "validation",
			err:    ierr.NewError("bad currency").WithHint("Currency is required").Mark(ierr.ErrValidation),
			status: http.StatusBadRequest,
			hint:   "Currency is required",
		},
		{
			name:   "system",
			err:    ierr.NewError("boom").Mark(ierr.ErrSystem),
			status: http.StatusInternalServerError,
			hint:   "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&stubPricingService{err: tt.err})

			w := doRequest(r, http.MethodPost, "/v1/coupons/check", `{"code":"NOPE"}`, nil)
			require.Equal(t, tt.status, w.Code)

			var resp middleware.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.hint, resp.Error.Display)
		})
	}
}

func TestCreateQuoteBatch(t *testing.T) {
	svc := &stubPricingService{batch: &dto.BatchQuoteResponse{Quotes: []*dto.QuoteResponse{{ID: "a"}, {ID: "b"}}}}
	r := newTestRouter(svc)

	w := doRequest(r, http.MethodPost, "/v1/quotes/batch", `{"quotes":[{},{}]}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.BatchQuoteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Quotes, 2)
	assert.Equal(t, "a", resp.Quotes[0].ID)
	assert.Equal(t, "b", resp.Quotes[1].ID)
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(&stubPricingService{})

	w := doRequest(r, http.MethodOptions, "/v1/quotes", "", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Server.RateLimit = 0.001
	cfg.Server.RateBurst = 1
	r := newTestRouterWithConfig(&stubPricingService{check: &dto.CheckCouponResponse{Code: "A"}}, cfg)

	w := doRequest(r, http.MethodPost, "/v1/coupons/check", `{"code":"A"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodPost, "/v1/coupons/check", `{"code":"A"}`, nil)
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	// health is outside the limited group
	w = doRequest(r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
