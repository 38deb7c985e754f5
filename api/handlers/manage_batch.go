package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/parkkaro/park-karo-api/config"
	"github.com/parkkaro/park-karo-api/manage"
	"github.com/parkkaro/park-karo-api/models"
)

// batchErrorStatus reports a coordinator-level fault. Per-user failures
// never reach here; they are embedded in the batch result instead.
func batchErrorStatus(message string, w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	if errors.Is(err, manage.ErrPoolSaturated) || errors.Is(err, manage.ErrPoolClosed) {
		code = http.StatusServiceUnavailable
	}
	config.ErrorStatus(message, code, w, err)
}

func writeBatchResult(w http.ResponseWriter, fut *manage.BatchFuture, r *http.Request, message string) {
	result, err := fut.Wait(r.Context())
	if err != nil {
		batchErrorStatus(message, w, err)
		return
	}
	b, err := json.Marshal(result)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// GetManyHandler reads the aggregates for a list of users concurrently.
// Users without a document are omitted from the response map.
func (m Manage) GetManyHandler(w http.ResponseWriter, r *http.Request) {
	var userIDs []string
	if err := json.NewDecoder(r.Body).Decode(&userIDs); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	zap.S().Infow("batch profile read", "users", len(userIDs))

	fut, err := m.Batch.GetMany(r.Context(), userIDs)
	if err != nil {
		batchErrorStatus("failed to submit batch read", w, err)
		return
	}
	writeBatchResult(w, fut, r, "batch read failed")
}

// BatchAddVehiclesHandler adds vehicles for many users concurrently. The
// response maps each user to the ids that were actually added; items that
// fail validation are skipped, not fatal.
func (m Manage) BatchAddVehiclesHandler(w http.ResponseWriter, r *http.Request) {
	var userVehicles map[string][]models.Item
	if err := json.NewDecoder(r.Body).Decode(&userVehicles); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	zap.S().Infow("batch vehicle add", "users", len(userVehicles))

	fut, err := m.Batch.BatchAdd(r.Context(), models.SectionVehicles, userVehicles)
	if err != nil {
		batchErrorStatus("failed to submit batch add", w, err)
		return
	}
	writeBatchResult(w, fut, r, "batch add failed")
}

// BatchUpdateVehiclesHandler updates several vehicles of one user. The
// response lists the ids that were actually updated.
func (m Manage) BatchUpdateVehiclesHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	var updates map[string]models.Item
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	zap.S().Infow("batch vehicle update", "userId", userID, "vehicles", len(updates))

	fut, err := m.Batch.BatchUpdate(r.Context(), models.SectionVehicles, userID, updates)
	if err != nil {
		batchErrorStatus("failed to submit batch update", w, err)
		return
	}
	writeBatchResult(w, fut, r, "batch update failed")
}

// GenerateReportHandler builds a section-count report across a list of
// users, tolerating users without a document.
func (m Manage) GenerateReportHandler(w http.ResponseWriter, r *http.Request) {
	var userIDs []string
	if err := json.NewDecoder(r.Body).Decode(&userIDs); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	zap.S().Infow("batch report", "users", len(userIDs))

	fut, err := m.Batch.GenerateReport(r.Context(), userIDs)
	if err != nil {
		batchErrorStatus("failed to submit report generation", w, err)
		return
	}
	writeBatchResult(w, fut, r, "report generation failed")
}
