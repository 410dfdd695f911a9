package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/domain"
)

// writeError writes the API error envelope for failures raised before a handler runs.
func writeError(w http.ResponseWriter, status int, kind domain.Kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   string(kind),
		"message": message,
	})
}
