package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/parkkaro/park-karo-api/config"
	"github.com/parkkaro/park-karo-api/databases"
	"github.com/parkkaro/park-karo-api/models"
)

// ParkingSpot exported for testing purposes
type ParkingSpot struct {
	DB databases.ParkingSpotDatabase
}

// ParkingSpotsHandler returns a paginated list of parking spots, optionally
// filtered by vehicle type or availability
func (p ParkingSpot) ParkingSpotsHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 0 {
		page = 0
	}
	limit64 := int64(limit)
	skip64 := int64(page * limit)

	filter := bson.M{}
	if vehicleType := r.URL.Query().Get("vehicle_type"); vehicleType != "" {
		filter["vehicleType"] = vehicleType
	}
	if r.URL.Query().Get("available") == "true" {
		filter["availableSpaces"] = bson.M{"$gt": 0}
	}

	dbResp, err := p.DB.Find(r.Context(), filter, &options.FindOptions{Limit: &limit64, Skip: &skip64})
	if err != nil {
		config.ErrorStatus("failed to get parking spots", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.ParkingSpot{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// ParkingSpotByIDHandler returns a parking spot by ID
func (p ParkingSpot) ParkingSpotByIDHandler(w http.ResponseWriter, r *http.Request) {
	spotID := mux.Vars(r)["spot_id"]

	zap.S().Debugf("spot_id: %v", spotID)

	dbResp, err := p.DB.FindOne(r.Context(), bson.M{"_id": spotID})
	if err != nil {
		config.ErrorStatus("failed to get parking spot by ID", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CreateParkingSpotHandler inserts a new parking spot
func (p ParkingSpot) CreateParkingSpotHandler(w http.ResponseWriter, r *http.Request) {
	var spot models.ParkingSpot
	if err := json.NewDecoder(r.Body).Decode(&spot); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if spot.Name == "" {
		config.ErrorStatus("parking spot name is required", http.StatusBadRequest, w, nil)
		return
	}
	spot.CreatedAt = models.Timestamp(nowFunc())
	spot.UpdatedAt = spot.CreatedAt

	res, err := p.DB.InsertOne(r.Context(), spot)
	if err != nil {
		config.ErrorStatus("failed to create parking spot", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(map[string]interface{}{"insertedId": res.Decode()})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// UpdateParkingSpotHandler replaces a parking spot by ID
func (p ParkingSpot) UpdateParkingSpotHandler(w http.ResponseWriter, r *http.Request) {
	spotID := mux.Vars(r)["spot_id"]

	var spot models.ParkingSpot
	if err := json.NewDecoder(r.Body).Decode(&spot); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	existing, err := p.DB.FindOne(r.Context(), bson.M{"_id": spotID})
	if err != nil {
		config.ErrorStatus("failed to get parking spot by ID", http.StatusNotFound, w, err)
		return
	}

	spot.ID = spotID
	spot.CreatedAt = existing.CreatedAt
	spot.UpdatedAt = models.Timestamp(nowFunc())
	if err := p.DB.ReplaceOne(r.Context(), bson.M{"_id": spotID}, spot); err != nil {
		config.ErrorStatus("failed to update parking spot", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "updated"}`))
}

// DeleteParkingSpotHandler deletes a parking spot by ID
func (p ParkingSpot) DeleteParkingSpotHandler(w http.ResponseWriter, r *http.Request) {
	spotID := mux.Vars(r)["spot_id"]

	if err := p.DB.DeleteOne(r.Context(), bson.M{"_id": spotID}); err != nil {
		config.ErrorStatus("failed to delete parking spot", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "deleted"}`))
}
