package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/towfit/towbar-filter-service/internal/apperr"
	"github.com/towfit/towbar-filter-service/internal/auth"
	"github.com/towfit/towbar-filter-service/internal/filter/dto"
	"github.com/towfit/towbar-filter-service/internal/filter/handler"
	"github.com/towfit/towbar-filter-service/pkg/logger"
)

// stubUseCase records the last call and returns canned results.
type stubUseCase struct {
	brands     []dto.TermDTO
	models     []dto.TermDTO
	ranges     []dto.YearRangeDTO
	summary    *dto.ProductSummary
	err        error
	lastAction string
	lastInput  *dto.ResolveProductInput
	lastID     int64
}

func (s *stubUseCase) ListBrands(ctx context.Context) ([]dto.TermDTO, error) {
	s.lastAction = "brands"
	return s.brands, s.err
}

func (s *stubUseCase) ListModels(ctx context.Context, brandID int64) ([]dto.TermDTO, error) {
	s.lastAction = "models"
	s.lastID = brandID
	return s.models, s.err
}

func (s *stubUseCase) ListYearRanges(ctx context.Context, modelID int64) ([]dto.YearRangeDTO, error) {
	s.lastAction = "years"
	s.lastID = modelID
	return s.ranges, s.err
}

func (s *stubUseCase) ResolveProduct(ctx context.Context, input *dto.ResolveProductInput) (*dto.ProductSummary, error) {
	s.lastAction = "resolve"
	s.lastInput = input
	return s.summary, s.err
}

func (s *stubUseCase) InvalidateTermCache(ctx context.Context) error {
	return nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func newHandler(uc *stubUseCase) (*handler.FilterHandler, *auth.Nonce) {
	nonce := auth.NewNonce("test-secret", 24*time.Hour)
	return handler.NewFilterHandler(uc, nonce, logger.NewNop()), nonce
}

func dispatch(t *testing.T, h *handler.FilterHandler, form url.Values) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/filter", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.SetupRoutes().ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestDispatch_MissingNonce(t *testing.T) {
	uc := &stubUseCase{}
	h, _ := newHandler(uc)

	rec, env := dispatch(t, h, url.Values{"action": {"get_car_brands"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, `"Security check failed"`, string(env.Data))
	// No catalog access before the token check.
	assert.Empty(t, uc.lastAction)
}

func TestDispatch_BadNonce(t *testing.T) {
	uc := &stubUseCase{}
	h, _ := newHandler(uc)

	_, env := dispatch(t, h, url.Values{
		"action": {"get_car_brands"},
		"nonce":  {"0123456789"},
	})
	assert.False(t, env.Success)
	assert.Empty(t, uc.lastAction)
}

func TestDispatch_UnknownAction(t *testing.T) {
	uc := &stubUseCase{}
	h, nonce := newHandler(uc)

	_, env := dispatch(t, h, url.Values{
		"action": {"drop_tables"},
		"nonce":  {nonce.Issue()},
	})
	assert.False(t, env.Success)
	assert.Equal(t, `"Invalid action"`, string(env.Data))
}

func TestDispatch_GetBrands(t *testing.T) {
	uc := &stubUseCase{brands: []dto.TermDTO{{ID: 1, Name: "Toyota", Slug: "toyota"}}}
	h, nonce := newHandler(uc)

	rec, env := dispatch(t, h, url.Values{
		"action": {"get_car_brands"},
		"nonce":  {nonce.Issue()},
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	var brands []dto.TermDTO
	require.NoError(t, json.Unmarshal(env.Data, &brands))
	require.Len(t, brands, 1)
	assert.Equal(t, "Toyota", brands[0].Name)
}

func TestDispatch_GetModels_ParsesBrandID(t *testing.T) {
	uc := &stubUseCase{models: []dto.TermDTO{}}
	h, nonce := newHandler(uc)

	_, env := dispatch(t, h, url.Values{
		"action":   {"get_models_by_brand"},
		"nonce":    {nonce.Issue()},
		"brand_id": {"42"},
	})
	assert.True(t, env.Success)
	assert.Equal(t, "models", uc.lastAction)
	assert.Equal(t, int64(42), uc.lastID)
}

func TestDispatch_GetYears_FailurePassthrough(t *testing.T) {
	uc := &stubUseCase{err: apperr.NotFound("No products found for this model")}
	h, nonce := newHandler(uc)

	rec, env := dispatch(t, h, url.Values{
		"action":   {"get_years_by_model"},
		"nonce":    {nonce.Issue()},
		"model_id": {"10"},
	})
	// Failures still answer 200 with the envelope; the widget switches on
	// the success flag.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, `"No products found for this model"`, string(env.Data))
}

func TestDispatch_GetProductDetails(t *testing.T) {
	uc := &stubUseCase{summary: &dto.ProductSummary{ProductID: 100, TotalPrice: 6500}}
	h, nonce := newHandler(uc)

	_, env := dispatch(t, h, url.Values{
		"action":     {"get_product_details"},
		"nonce":      {nonce.Issue()},
		"brand_id":   {"1"},
		"model_id":   {"10"},
		"year_start": {"2015"},
		"year_end":   {"2018"},
	})
	assert.True(t, env.Success)
	require.NotNil(t, uc.lastInput)
	assert.Equal(t, &dto.ResolveProductInput{BrandID: 1, ModelID: 10, YearStart: 2015, YearEnd: 2018}, uc.lastInput)

	var summary dto.ProductSummary
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, int64(100), summary.ProductID)
}

func TestDispatch_UnparseableNumbersReadAsZero(t *testing.T) {
	uc := &stubUseCase{err: apperr.InvalidArgument("All parameters are required")}
	h, nonce := newHandler(uc)

	_, env := dispatch(t, h, url.Values{
		"action":     {"get_product_details"},
		"nonce":      {nonce.Issue()},
		"brand_id":   {"1"},
		"model_id":   {"10"},
		"year_start": {"twenty15"},
		"year_end":   {"2018"},
	})
	assert.False(t, env.Success)
	assert.Equal(t, 0, uc.lastInput.YearStart)
}

func TestDispatch_UnclassifiedErrorHidden(t *testing.T) {
	uc := &stubUseCase{err: assert.AnError}
	h, nonce := newHandler(uc)

	_, env := dispatch(t, h, url.Values{
		"action": {"get_car_brands"},
		"nonce":  {nonce.Issue()},
	})
	assert.False(t, env.Success)
	assert.Equal(t, `"Internal error"`, string(env.Data))
}

func TestToken(t *testing.T) {
	uc := &stubUseCase{}
	h, nonce := newHandler(uc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/filter/token", nil)
	rec := httptest.NewRecorder()
	h.SetupRoutes().ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.True(t, env.Success)

	var data map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.True(t, nonce.Verify(data["nonce"]))
}

func TestHealth(t *testing.T) {
	uc := &stubUseCase{}
	h, _ := newHandler(uc)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.SetupRoutes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
