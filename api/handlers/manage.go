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

// Manage exported for testing purposes
type Manage struct {
	Service *manage.Service
	Batch   *manage.Coordinator
}

// manageErrorStatus maps a manage error kind onto an http response.
func manageErrorStatus(message string, w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, manage.ErrValidation):
		code = http.StatusBadRequest
	case errors.Is(err, manage.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, manage.ErrConflict):
		code = http.StatusConflict
	}
	config.ErrorStatus(message, code, w, err)
}

func decodeItem(w http.ResponseWriter, r *http.Request) (models.Item, bool) {
	var item models.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return nil, false
	}
	return item, true
}

func (m Manage) addItem(w http.ResponseWriter, r *http.Request, section string) {
	userID := mux.Vars(r)["user_id"]
	item, ok := decodeItem(w, r)
	if !ok {
		return
	}

	if err := m.Service.AddItem(r.Context(), userID, section, item); err != nil {
		manageErrorStatus("failed to add "+section+" item", w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write([]byte(`{"status": "created"}`))
}

func (m Manage) updateItem(w http.ResponseWriter, r *http.Request, section, idVar string) {
	vars := mux.Vars(r)
	userID := vars["user_id"]
	itemID := vars[idVar]
	item, ok := decodeItem(w, r)
	if !ok {
		return
	}

	if err := m.Service.UpdateItem(r.Context(), userID, section, itemID, item); err != nil {
		manageErrorStatus("failed to update "+section+" item", w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "updated"}`))
}

func (m Manage) deleteItem(w http.ResponseWriter, r *http.Request, section, idVar string) {
	vars := mux.Vars(r)
	userID := vars["user_id"]
	itemID := vars[idVar]

	if err := m.Service.DeleteItem(r.Context(), userID, section, itemID); err != nil {
		manageErrorStatus("failed to delete "+section+" item", w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "deleted"}`))
}

// ProfileHandler returns the whole aggregate for a user, sections keyed by
// surrogate id. A user with no document gets an empty profile.
func (m Manage) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	zap.S().Debugf("user_id: %v", userID)

	profile, err := m.Service.GetProfile(r.Context(), userID)
	if err != nil {
		manageErrorStatus("failed to get profile", w, err)
		return
	}

	b, err := json.Marshal(profile)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DeleteProfileHandler removes the whole aggregate document
func (m Manage) DeleteProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	if err := m.Service.DeleteProfile(r.Context(), userID); err != nil {
		manageErrorStatus("failed to delete profile", w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "deleted"}`))
}

// AddVehicleHandler adds a vehicle to a user's profile
func (m Manage) AddVehicleHandler(w http.ResponseWriter, r *http.Request) {
	m.addItem(w, r, models.SectionVehicles)
}

// UpdateVehicleHandler updates a vehicle in a user's profile
func (m Manage) UpdateVehicleHandler(w http.ResponseWriter, r *http.Request) {
	m.updateItem(w, r, models.SectionVehicles, "vehicle_id")
}

// DeleteVehicleHandler removes a vehicle from a user's profile
func (m Manage) DeleteVehicleHandler(w http.ResponseWriter, r *http.Request) {
	m.deleteItem(w, r, models.SectionVehicles, "vehicle_id")
}

// AddFavoriteSpotHandler adds a favorite spot to a user's profile
func (m Manage) AddFavoriteSpotHandler(w http.ResponseWriter, r *http.Request) {
	m.addItem(w, r, models.SectionFavoriteSpots)
}

// UpdateFavoriteSpotHandler updates a favorite spot in a user's profile
func (m Manage) UpdateFavoriteSpotHandler(w http.ResponseWriter, r *http.Request) {
	m.updateItem(w, r, models.SectionFavoriteSpots, "spot_id")
}

// DeleteFavoriteSpotHandler removes a favorite spot from a user's profile
func (m Manage) DeleteFavoriteSpotHandler(w http.ResponseWriter, r *http.Request) {
	m.deleteItem(w, r, models.SectionFavoriteSpots, "spot_id")
}

// AddHistoryHandler adds a history entry to a user's profile
func (m Manage) AddHistoryHandler(w http.ResponseWriter, r *http.Request) {
	m.addItem(w, r, models.SectionHistory)
}

// UpdateHistoryHandler updates a history entry in a user's profile
func (m Manage) UpdateHistoryHandler(w http.ResponseWriter, r *http.Request) {
	m.updateItem(w, r, models.SectionHistory, "history_id")
}

// DeleteHistoryHandler removes a history entry from a user's profile
func (m Manage) DeleteHistoryHandler(w http.ResponseWriter, r *http.Request) {
	m.deleteItem(w, r, models.SectionHistory, "history_id")
}

// AddActiveStatusHandler adds an active-status entry to a user's profile
func (m Manage) AddActiveStatusHandler(w http.ResponseWriter, r *http.Request) {
	m.addItem(w, r, models.SectionActiveStatus)
}

// UpdateActiveStatusHandler updates an active-status entry in a user's profile
func (m Manage) UpdateActiveStatusHandler(w http.ResponseWriter, r *http.Request) {
	m.updateItem(w, r, models.SectionActiveStatus, "active_id")
}

// DeleteActiveStatusHandler removes an active-status entry from a user's profile
func (m Manage) DeleteActiveStatusHandler(w http.ResponseWriter, r *http.Request) {
	m.deleteItem(w, r, models.SectionActiveStatus, "active_id")
}
