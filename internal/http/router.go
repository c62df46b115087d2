package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Router wraps the standard library http.ServeMux (no third-party router
// dependency needed for a surface this size).
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

func methodOnly(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.Method != method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h(w, req)
	}
}

// RegisterObservationRoutes wires the full API surface.
func (r *Router) RegisterObservationRoutes(h *ObservationHandler) {
	// session lifecycle
	r.Handle("/obs/api/v1/session", methodOnly(http.MethodGet, h.GetSession))
	r.Handle("/obs/api/v1/session/start", methodOnly(http.MethodPost, h.StartSession))
	r.Handle("/obs/api/v1/session/pause", methodOnly(http.MethodPost, h.PauseResumeSession))
	r.Handle("/obs/api/v1/session/reset", methodOnly(http.MethodPost, h.ResetSession))
	r.Handle("/obs/api/v1/session/settings", methodOnly(http.MethodPut, h.UpdateSettings))
	r.Handle("/obs/api/v1/options", methodOnly(http.MethodGet, h.GetOptions))

	// records
	r.Handle("/obs/api/v1/records", func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			h.ListRecords(w, req)
		case http.MethodPost:
			h.Capture(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	r.Handle("/obs/api/v1/records/recompute-zones", methodOnly(http.MethodPost, h.RecomputeZones))

	// zones
	r.Handle("/obs/api/v1/zones", func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			h.ListZones(w, req)
		case http.MethodPost:
			h.CreateZone(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	r.Handle("/obs/api/v1/zones/", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodDelete {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		id := strings.TrimPrefix(req.URL.Path, "/obs/api/v1/zones/")
		if id == "" || strings.Contains(id, "/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.DeleteZone(w, req, id)
	})

	// transfer
	r.Handle("/obs/api/v1/export/csv", methodOnly(http.MethodGet, h.ExportCSV))
	r.Handle("/obs/api/v1/export/xlsx", methodOnly(http.MethodGet, h.ExportXLSX))
	r.Handle("/obs/api/v1/import/csv", methodOnly(http.MethodPost, h.ImportCSV))

	// review
	r.Handle("/obs/api/v1/review", methodOnly(http.MethodGet, h.Review))
	r.Handle("/obs/api/v1/review/heatmap", methodOnly(http.MethodGet, h.Heatmap))
	r.Handle("/obs/api/v1/playback", methodOnly(http.MethodPut, h.UpdatePlayback))

	// sync queue
	r.Handle("/obs/api/v1/sync", methodOnly(http.MethodGet, h.SyncStatus))
	r.Handle("/obs/api/v1/sync/toggle", methodOnly(http.MethodPost, h.ToggleSync))
}
