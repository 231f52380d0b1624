package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/herculesvale/vale-service/internal/api/middleware"
	"github.com/herculesvale/vale-service/internal/models"
	"github.com/herculesvale/vale-service/internal/service"
)

// SubClientHandler exposes the sub-client registry over HTTP.
type SubClientHandler struct {
	subClients *service.SubClientService
}

// NewSubClientHandler builds the sub-client handler.
func NewSubClientHandler(subClients *service.SubClientService) *SubClientHandler {
	return &SubClientHandler{subClients: subClients}
}

type addSubClientRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"date_of_birth"` // DD/MM/YYYY
}

type subClientResponse struct {
	ID            string    `json:"id"`
	DistributorID string    `json:"distributor_id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	Phone         string    `json:"phone"`
	DateOfBirth   string    `json:"date_of_birth"`
	CreatedAt     time.Time `json:"created_at"`
}

func toSubClientResponse(sc *models.SubClient) subClientResponse {
	return subClientResponse{
		ID:            sc.ID,
		DistributorID: sc.DistributorID,
		Name:          sc.Name,
		Address:       sc.Address,
		Phone:         sc.Phone,
		DateOfBirth:   sc.DateOfBirth.Format("02/01/2006"),
		CreatedAt:     sc.CreatedAt,
	}
}

// Add handles POST /subclients. Per-field validation errors come back as
// 400 with the offending field named.
func (h *SubClientHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addSubClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_body"})
		return
	}

	sc, err := h.subClients.Add(r.Context(), service.AddSubClientInput{
		DistributorID: middleware.DistributorID(r.Context()),
		Name:          req.Name,
		Address:       req.Address,
		Phone:         req.Phone,
		DateOfBirth:   req.DateOfBirth,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSubClientResponse(sc))
}

// List handles GET /subclients.
func (h *SubClientHandler) List(w http.ResponseWriter, r *http.Request) {
	subClients, err := h.subClients.List(r.Context(), middleware.DistributorID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]subClientResponse, 0, len(subClients))
	for _, sc := range subClients {
		out = append(out, toSubClientResponse(sc))
	}
	writeJSON(w, http.StatusOK, out)
}
