package httpapi

import (
	"fmt"
	"net/http"

	"github.com/CCAUCAM/analogue-mission-observer/internal/session"
)

// GET /obs/api/v1/records
// Full store in insertion order (the review endpoint serves the derived
// view).
func (h *ObservationHandler) ListRecords(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, Ok(h.sess.Records().Records()))
}

type captureRequest struct {
	Badge    string  `json:"badge"`
	Role     string  `json:"role"`
	Activity string  `json:"activity"`
	IsGroup  bool    `json:"is_group"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Note     string  `json:"note"`
}

// POST /obs/api/v1/records
func (h *ObservationHandler) Capture(w http.ResponseWriter, r *http.Request) {
	var req captureRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid capture payload"))
		return
	}

	rec, err := h.sess.Capture(r.Context(), session.CaptureInput{
		Badge:    req.Badge,
		Role:     req.Role,
		Activity: req.Activity,
		IsGroup:  req.IsGroup,
		X:        req.X,
		Y:        req.Y,
		Note:     req.Note,
	})
	if err != nil {
		// Validation failure: nothing was added to the store.
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, OkMsg(
		fmt.Sprintf("Recorded badge %s in %s", rec.BadgeNumber, rec.Zone), rec))
}

// POST /obs/api/v1/records/recompute-zones
func (h *ObservationHandler) RecomputeZones(w http.ResponseWriter, r *http.Request) {
	n := h.sess.Records().RecomputeZones(r.Context())
	writeJSON(w, http.StatusOK, OkMsg(
		"Recomputed zones for all markers using current zone rectangles.",
		map[string]int{"records": n}))
}
