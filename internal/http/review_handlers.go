package httpapi

import (
	"net/http"

	"github.com/CCAUCAM/analogue-mission-observer/internal/csvio"
	"github.com/CCAUCAM/analogue-mission-observer/internal/domain"
	"github.com/CCAUCAM/analogue-mission-observer/internal/heatmap"
	"github.com/CCAUCAM/analogue-mission-observer/internal/timeline"
)

func filterFromQuery(r *http.Request) timeline.Filter {
	q := r.URL.Query()
	f := timeline.Filter{
		Badge:     q.Get("badge"),
		GroupOnly: q.Get("group_only") == "true" || q.Get("group_only") == "1",
	}
	// "all" and empty both mean the filter is off
	if role := q.Get("role"); role != "" && role != "all" {
		f.Role = role
	}
	if activity := q.Get("activity"); activity != "" && activity != "all" {
		f.Activity = activity
	}
	return f
}

type reviewResponse struct {
	Records   []domain.Record         `json:"records"`
	Total     int                     `json:"total"`
	CutoffISO string                  `json:"cutoff_iso,omitempty"`
	Legend    map[domain.Activity]int `json:"legend"`
}

// GET /obs/api/v1/review?role=&activity=&group_only=&badge=
// Sorted timeline, filters ANDed, playback cutoff applied when enabled.
func (h *ObservationHandler) Review(w http.ResponseWriter, r *http.Request) {
	view, cutoff := h.sess.Review(filterFromQuery(r))

	resp := reviewResponse{
		Records: view,
		Total:   len(view),
		Legend:  timeline.LegendCounts(view),
	}
	if cutoff != nil {
		resp.CutoffISO = csvio.FormatCreatedAt(int64(*cutoff))
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

// GET /obs/api/v1/review/heatmap?grid=60&role=...
// Heatmap over the same derived view the review endpoint serves.
func (h *ObservationHandler) Heatmap(w http.ResponseWriter, r *http.Request) {
	view, _ := h.sess.Review(filterFromQuery(r))

	points := make([]heatmap.Point, len(view))
	for i := range view {
		points[i] = heatmap.Point{X: view[i].X, Y: view[i].Y}
	}

	grid := parseIntParam(r.URL.Query().Get("grid"), 60)
	writeJSON(w, http.StatusOK, Ok(heatmap.Build(points, grid)))
}

type playbackRequest struct {
	Enabled  *bool `json:"enabled"`
	Playing  *bool `json:"playing"`
	Speed    *int  `json:"speed"`
	Position *int  `json:"position"`
}

// PUT /obs/api/v1/playback
// Partial update of the replay transport.
func (h *ObservationHandler) UpdatePlayback(w http.ResponseWriter, r *http.Request) {
	var req playbackRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid playback payload"))
		return
	}
	if req.Enabled != nil {
		h.sess.SetPlaybackEnabled(*req.Enabled)
	}
	if req.Speed != nil {
		if err := h.sess.SetPlaybackSpeed(*req.Speed); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
			return
		}
	}
	if req.Position != nil {
		h.sess.SetPlaybackPosition(*req.Position)
	}
	if req.Playing != nil {
		h.sess.SetPlaying(*req.Playing)
	}
	writeJSON(w, http.StatusOK, Ok(h.sess.Playback()))
}
