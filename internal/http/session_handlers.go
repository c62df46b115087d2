package httpapi

import (
	"net/http"

	"github.com/CCAUCAM/analogue-mission-observer/internal/domain"
	"github.com/CCAUCAM/analogue-mission-observer/internal/session"
)

// GET /obs/api/v1/session
func (h *ObservationHandler) GetSession(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, Ok(h.sess.Status()))
}

// POST /obs/api/v1/session/start
func (h *ObservationHandler) StartSession(w http.ResponseWriter, _ *http.Request) {
	h.sess.Start()
	writeJSON(w, http.StatusOK, Ok(h.sess.Status()))
}

// POST /obs/api/v1/session/pause
// Toggles the timer; the response says which way it went.
func (h *ObservationHandler) PauseResumeSession(w http.ResponseWriter, _ *http.Request) {
	running := h.sess.PauseResume()
	msg := "Paused"
	if running {
		msg = "Running"
	}
	writeJSON(w, http.StatusOK, OkMsg(msg, h.sess.Status()))
}

// POST /obs/api/v1/session/reset
func (h *ObservationHandler) ResetSession(w http.ResponseWriter, r *http.Request) {
	h.sess.Reset(r.Context())
	writeJSON(w, http.StatusOK, OkMsg("Reset", h.sess.Status()))
}

type settingsRequest struct {
	Observer        *string `json:"observer"`
	Site            *string `json:"site"`
	IntervalMinutes *int    `json:"interval_minutes"`
}

// PUT /obs/api/v1/session/settings
// Partial update; absent fields keep their value.
func (h *ObservationHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid settings payload"))
		return
	}
	if req.Observer != nil {
		if err := h.sess.SetObserver(*req.Observer); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
			return
		}
	}
	if req.Site != nil {
		if err := h.sess.SetSite(*req.Site); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
			return
		}
	}
	if req.IntervalMinutes != nil {
		if err := h.sess.SetIntervalMinutes(*req.IntervalMinutes); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
			return
		}
	}
	writeJSON(w, http.StatusOK, Ok(h.sess.Status()))
}

type optionsResponse struct {
	Roles      []domain.RoleInfo     `json:"roles"`
	Activities []domain.ActivityInfo `json:"activities"`
	Observers  []string              `json:"observers"`
	Sites      []string              `json:"sites"`
}

// GET /obs/api/v1/options
func (h *ObservationHandler) GetOptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, Ok(optionsResponse{
		Roles:      domain.Roles,
		Activities: domain.Activities,
		Observers:  session.ObserverOptions,
		Sites:      session.SiteOptions,
	}))
}
