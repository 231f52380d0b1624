package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/herculesvale/vale-service/internal/models"
)

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto HTTP statuses: validation
// failures are 400, missing records 404, redundant usage marking 409.
func writeError(w http.ResponseWriter, err error) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "validation_failed",
			"field":   verr.Field,
			"message": verr.Message,
		})
		return
	}

	var derr *models.DomainError
	if errors.As(err, &derr) {
		status := http.StatusInternalServerError
		switch derr.Code {
		case models.ErrVoucherNotFound.Code, models.ErrSubClientNotFound.Code:
			status = http.StatusNotFound
		case models.ErrVoucherUsed.Code:
			status = http.StatusConflict
		}
		writeJSON(w, status, map[string]string{
			"error":   derr.Code,
			"message": derr.Message,
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal_error"})
}
