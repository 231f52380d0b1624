package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/herculesvale/vale-service/internal/api/middleware"
	"github.com/herculesvale/vale-service/internal/models"
	"github.com/herculesvale/vale-service/internal/service"
	"github.com/herculesvale/vale-service/internal/share"
)

// VoucherHandler exposes the voucher lifecycle over HTTP. Every route is
// scoped to the authenticated distributor.
type VoucherHandler struct {
	vouchers *service.VoucherService
	validate *validator.Validate
}

// NewVoucherHandler builds the voucher handler.
func NewVoucherHandler(vouchers *service.VoucherService) *VoucherHandler {
	return &VoucherHandler{vouchers: vouchers, validate: validator.New()}
}

type createVoucherRequest struct {
	SubClientID   string `json:"sub_client_id"`
	SubClientName string `json:"sub_client_name" validate:"required"`
	Amount        string `json:"amount" validate:"required"`
}

type voucherResponse struct {
	ID               string     `json:"id"`
	Folio            string     `json:"folio"`
	DistributorID    string     `json:"distributor_id"`
	SubClientID      string     `json:"sub_client_id,omitempty"`
	SubClientName    string     `json:"sub_client_name"`
	Amount           string     `json:"amount"`
	IsUsed           bool       `json:"is_used"`
	IsExpired        bool       `json:"is_expired"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	UsedAt           *time.Time `json:"used_at,omitempty"`
	ExpiresAt        time.Time  `json:"expires_at"`
	PaymentType      string     `json:"payment_type"`
	PaymentStartDate time.Time  `json:"payment_start_date"`
	Installments     int        `json:"installments"`
}

type shareResponse struct {
	Message string `json:"message"`
	Link    string `json:"link"`
	WebLink string `json:"web_link"`
}

// toVoucherResponse stamps the derived fields against a reference time;
// they are never read from storage.
func toVoucherResponse(v *models.Voucher, now time.Time) voucherResponse {
	return voucherResponse{
		ID:               v.ID,
		Folio:            v.Folio,
		DistributorID:    v.DistributorID,
		SubClientID:      v.SubClientID,
		SubClientName:    v.SubClientName,
		Amount:           v.Amount.String(),
		IsUsed:           v.IsUsed,
		IsExpired:        v.IsExpired(now),
		Status:           string(v.Status(now)),
		CreatedAt:        v.CreatedAt,
		UsedAt:           v.UsedAt,
		ExpiresAt:        v.ExpiresAt,
		PaymentType:      string(v.PaymentType),
		PaymentStartDate: v.PaymentStartDate,
		Installments:     v.Installments,
	}
}

// Create handles POST /vouchers.
func (h *VoucherHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createVoucherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "sub_client_name and amount required"})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, models.NewValidationError("amount", "amount must be a number"))
		return
	}

	v, err := h.vouchers.Create(r.Context(), service.CreateVoucherInput{
		DistributorID: middleware.DistributorID(r.Context()),
		SubClientID:   req.SubClientID,
		SubClientName: req.SubClientName,
		Amount:        amount,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toVoucherResponse(v, h.vouchers.Now()))
}

// List handles GET /vouchers?status=active|expired|used|all.
func (h *VoucherHandler) List(w http.ResponseWriter, r *http.Request) {
	status := models.VoucherStatusAll
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, ok := models.ParseVoucherStatus(raw)
		if !ok {
			writeError(w, models.NewValidationError("status", "status must be one of all, active, expired, used"))
			return
		}
		status = parsed
	}

	vouchers, err := h.vouchers.List(r.Context(), middleware.DistributorID(r.Context()), status)
	if err != nil {
		writeError(w, err)
		return
	}

	now := h.vouchers.Now()
	out := make([]voucherResponse, 0, len(vouchers))
	for _, v := range vouchers {
		out = append(out, toVoucherResponse(v, now))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /vouchers/{id}.
func (h *VoucherHandler) Get(w http.ResponseWriter, r *http.Request) {
	v, err := h.vouchers.Get(r.Context(), middleware.DistributorID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toVoucherResponse(v, h.vouchers.Now()))
}

// MarkUsed handles POST /vouchers/{id}/use.
func (h *VoucherHandler) MarkUsed(w http.ResponseWriter, r *http.Request) {
	v, err := h.vouchers.MarkUsed(r.Context(), middleware.DistributorID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toVoucherResponse(v, h.vouchers.Now()))
}

// Share handles GET /vouchers/{id}/share?phone=. The core only hands the
// composer the voucher's folio, client name, amount and expiry.
func (h *VoucherHandler) Share(w http.ResponseWriter, r *http.Request) {
	v, err := h.vouchers.Get(r.Context(), middleware.DistributorID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	msg := share.Message{
		Folio:         v.Folio,
		SubClientName: v.SubClientName,
		Amount:        v.Amount,
		ExpiresAt:     v.ExpiresAt,
	}
	native, web := share.Links(msg, r.URL.Query().Get("phone"))

	writeJSON(w, http.StatusOK, shareResponse{
		Message: share.Compose(msg),
		Link:    native,
		WebLink: web,
	})
}
