package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/CCAUCAM/analogue-mission-observer/internal/csvio"
)

// maxImportBytes bounds an uploaded CSV (untrusted input).
const maxImportBytes = 32 << 20

// GET /obs/api/v1/export/csv
func (h *ObservationHandler) ExportCSV(w http.ResponseWriter, _ *http.Request) {
	doc := csvio.Export(h.sess.Records().Records(), h.sess.IntervalMinutes())

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", csvio.ExportFilename(time.Now())))
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, doc)
}

// GET /obs/api/v1/export/xlsx
func (h *ObservationHandler) ExportXLSX(w http.ResponseWriter, _ *http.Request) {
	buf, err := csvio.GenerateWorkbook(h.sess.Records().Records(), h.sess.IntervalMinutes())
	if err != nil {
		h.logger.Error("workbook export failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to generate workbook"))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "mission_observations_"+time.Now().UTC().Format("2006-01-02")+".xlsx"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf)
}

// POST /obs/api/v1/import/csv?mode=replace|append
// Body is the raw CSV text. The import either applies fully or not at
// all: a missing required column leaves the store untouched.
func (h *ObservationHandler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = "replace"
	}
	if mode != "replace" && mode != "append" {
		writeJSON(w, http.StatusBadRequest, Fail("import mode must be replace or append"))
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("failed to read upload"))
		return
	}

	records := h.sess.Records()
	imported, err := csvio.Import(string(body), records.ResolveZone, time.Now())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}

	if mode == "replace" {
		records.ReplaceAll(r.Context(), imported)
	} else {
		records.AppendAll(r.Context(), imported)
	}
	h.sess.EnablePlaybackAfterImport()

	h.logger.Info("CSV import applied",
		zap.Int("records", len(imported)),
		zap.String("mode", mode),
	)
	writeJSON(w, http.StatusOK, OkMsg(
		csvio.ImportSummary(len(imported), mode),
		map[string]int{"imported": len(imported)}))
}
