package httpapi

import (
	"net/http"
	"time"

	"github.com/CCAUCAM/analogue-mission-observer/internal/zones"
)

// GET /obs/api/v1/zones
func (h *ObservationHandler) ListZones(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, Ok(h.sess.Records().Zones()))
}

type createZoneRequest struct {
	Name string  `json:"name"`
	AX   float64 `json:"ax"`
	AY   float64 `json:"ay"`
	BX   float64 `json:"bx"`
	BY   float64 `json:"by"`
}

// POST /obs/api/v1/zones
// Corners come from the drag gesture; degenerate rectangles are rejected,
// accepted ones are prepended so the newest zone wins resolution ties.
func (h *ObservationHandler) CreateZone(w http.ResponseWriter, r *http.Request) {
	var req createZoneRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid zone payload"))
		return
	}

	z, ok := zones.NewRect(req.Name, req.AX, req.AY, req.BX, req.BY, time.Now().UnixMilli())
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("zone rectangle too small"))
		return
	}

	h.sess.Records().PrependZone(r.Context(), z)
	writeJSON(w, http.StatusOK, Ok(z))
}

// DELETE /obs/api/v1/zones/{id}
func (h *ObservationHandler) DeleteZone(w http.ResponseWriter, r *http.Request, id string) {
	if !h.sess.Records().DeleteZone(r.Context(), id) {
		writeJSON(w, http.StatusNotFound, Fail("zone not found"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]string{"deleted": id}))
}
