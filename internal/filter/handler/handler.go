package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/towfit/towbar-filter-service/internal/apperr"
	"github.com/towfit/towbar-filter-service/internal/auth"
	"github.com/towfit/towbar-filter-service/internal/filter"
	"github.com/towfit/towbar-filter-service/internal/filter/dto"
	"github.com/towfit/towbar-filter-service/pkg/logger"
	"go.uber.org/zap"
)

// Action names are the ones the deployed widget script already sends.
const (
	actionGetBrands         = "get_car_brands"
	actionGetModelsByBrand  = "get_models_by_brand"
	actionGetYearsByModel   = "get_years_by_model"
	actionGetProductDetails = "get_product_details"
)

// envelope matches the legacy success/failure JSON shape. Failures carry the
// user-facing message as data.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

type FilterHandler struct {
	uc     filter.UseCase
	nonce  *auth.Nonce
	logger logger.ZapLogger
}

func NewFilterHandler(uc filter.UseCase, nonce *auth.Nonce, log logger.ZapLogger) *FilterHandler {
	return &FilterHandler{
		uc:     uc,
		nonce:  nonce,
		logger: log,
	}
}

func (h *FilterHandler) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/filter", h.Dispatch)
	mux.HandleFunc("GET /api/v1/filter/token", h.Token)
	mux.HandleFunc("GET /health", h.Health)

	return mux
}

// Dispatch routes one action-named form request to the resolver. The token is
// checked before anything else; on failure nothing touches the catalog.
func (h *FilterHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Malformed request body", http.StatusBadRequest)
		return
	}

	if !h.nonce.Verify(r.PostFormValue("nonce")) {
		h.writeFailure(w, apperr.AuthFailure("Security check failed"))
		return
	}

	switch r.PostFormValue("action") {
	case actionGetBrands:
		h.getBrands(w, r)
	case actionGetModelsByBrand:
		h.getModelsByBrand(w, r)
	case actionGetYearsByModel:
		h.getYearsByModel(w, r)
	case actionGetProductDetails:
		h.getProductDetails(w, r)
	default:
		h.writeFailure(w, apperr.InvalidArgument("Invalid action"))
	}
}

// Token hands the widget a fresh anti-forgery token at bootstrap.
func (h *FilterHandler) Token(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Data:    map[string]string{"nonce": h.nonce.Issue()},
	})
}

func (h *FilterHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *FilterHandler) getBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.uc.ListBrands(r.Context())
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: brands})
}

func (h *FilterHandler) getModelsByBrand(w http.ResponseWriter, r *http.Request) {
	brandID := formInt64(r, "brand_id")

	models, err := h.uc.ListModels(r.Context(), brandID)
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: models})
}

func (h *FilterHandler) getYearsByModel(w http.ResponseWriter, r *http.Request) {
	modelID := formInt64(r, "model_id")

	years, err := h.uc.ListYearRanges(r.Context(), modelID)
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: years})
}

func (h *FilterHandler) getProductDetails(w http.ResponseWriter, r *http.Request) {
	input := &dto.ResolveProductInput{
		BrandID:   formInt64(r, "brand_id"),
		ModelID:   formInt64(r, "model_id"),
		YearStart: formInt(r, "year_start"),
		YearEnd:   formInt(r, "year_end"),
	}

	summary, err := h.uc.ResolveProduct(r.Context(), input)
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: summary})
}

// writeFailure sends the failure envelope. Untagged errors never reach the
// client verbatim.
func (h *FilterHandler) writeFailure(w http.ResponseWriter, err error) {
	msg := err.Error()
	if apperr.KindOf(err) == apperr.KindUnknown {
		h.logger.Error("unclassified failure", zap.Error(err))
		msg = "Internal error"
	}
	writeJSON(w, http.StatusOK, envelope{Success: false, Data: msg})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Form numbers parse leniently: absent or unparseable reads as zero, which
// the resolver's validation then rejects.
func formInt64(r *http.Request, key string) int64 {
	v, _ := strconv.ParseInt(r.PostFormValue(key), 10, 64)
	return v
}

func formInt(r *http.Request, key string) int {
	v, _ := strconv.Atoi(r.PostFormValue(key))
	return v
}
