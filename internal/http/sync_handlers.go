package httpapi

import (
	"net/http"
)

// GET /obs/api/v1/sync
func (h *ObservationHandler) SyncStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, Ok(h.sess.Queue().Status()))
}

type toggleSyncRequest struct {
	Enabled bool `json:"enabled"`
}

// POST /obs/api/v1/sync/toggle
// Off stops scheduling new attempts; already-set statuses are untouched.
func (h *ObservationHandler) ToggleSync(w http.ResponseWriter, r *http.Request) {
	var req toggleSyncRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid toggle payload"))
		return
	}
	h.sess.SetAutoSend(req.Enabled)
	writeJSON(w, http.StatusOK, Ok(h.sess.Queue().Status()))
}
