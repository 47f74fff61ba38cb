package httpapi

import (
	"encoding/json"
	"net/http"

	"jobpilot-engine/internal/secrets"
)

type SecretsHandler struct{}

type setSecretReq struct {
	Value string `json:"value"`
}

// SetGSearchKey stores the Custom Search API key in the OS keychain; the
// engine never writes it to the config file or database.
func (h SecretsHandler) SetGSearchKey(w http.ResponseWriter, r *http.Request) {
	var req setSecretReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid json")
		return
	}
	if err := secrets.Set(secrets.GSearchAccount, req.Value); err != nil {
		WriteError(w, r, http.StatusBadRequest, "keyring_error", "failed to store key: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h SecretsHandler) DeleteGSearchKey(w http.ResponseWriter, r *http.Request) {
	if err := secrets.Delete(secrets.GSearchAccount); err != nil {
		WriteError(w, r, http.StatusBadRequest, "keyring_error", "failed to delete key: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
