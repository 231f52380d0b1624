package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/herculesvale/vale-service/internal/auth"
	"github.com/herculesvale/vale-service/internal/directory"
)

// AuthHandler exchanges distributor credentials for a session token.
type AuthHandler struct {
	directory *directory.Directory
	tokens    *auth.TokenManager
	validate  *validator.Validate
}

// NewAuthHandler builds the login handler.
func NewAuthHandler(d *directory.Directory, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{directory: d, tokens: tokens, validate: validator.New()}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token       string              `json:"token"`
	ExpiresAt   time.Time           `json:"expires_at"`
	Distributor distributorResponse `json:"distributor"`
}

type distributorResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// Login handles POST /auth/login. A credential miss is a 401, not a 5xx.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "username and password required"})
		return
	}

	dist := h.directory.Authenticate(req.Username, req.Password)
	if dist == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid_credentials"})
		return
	}

	token, expiresAt, err := h.tokens.Issue(dist)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Distributor: distributorResponse{
			ID:       dist.ID,
			Username: dist.Username,
			Name:     dist.Name,
			Email:    dist.Email,
			Phone:    dist.Phone,
		},
	})
}
