package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/zalando/go-keyring"

	"truthrecruit-engine/internal/config"
	"truthrecruit-engine/internal/secrets"
)

type SecretsHandler struct {
	CfgVal *atomic.Value // stores config.Config
}

type setRedisPasswordReq struct {
	Password string `json:"password"`
}

// SetRedisPassword stores the password under store.redis_keyring_account. The
// redis backend picks it up on the next start.
func (h SecretsHandler) SetRedisPassword(w http.ResponseWriter, r *http.Request) {
	var req setRedisPasswordReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	if err := secrets.SetRedisPassword(cfg.Store.RedisKeyringAccount, req.Password); err != nil {
		WriteError(w, r, http.StatusBadRequest, "secret_rejected", "failed to store password: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteRedisPassword removes the stored password. A missing entry is not an
// error.
func (h SecretsHandler) DeleteRedisPassword(w http.ResponseWriter, r *http.Request) {
	cfg := h.CfgVal.Load().(config.Config)
	err := secrets.DeleteRedisPassword(cfg.Store.RedisKeyringAccount)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		WriteError(w, r, http.StatusBadRequest, "secret_rejected", "failed to delete password: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
