package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/parkkaro/park-karo-api/config"
	"github.com/parkkaro/park-karo-api/databases"
	"github.com/parkkaro/park-karo-api/models"
)

// Vehicle exported for testing purposes
type Vehicle struct {
	DB databases.VehicleDatabase
}

// VehiclesHandler returns all vehicles in the catalog
func (v Vehicle) VehiclesHandler(w http.ResponseWriter, r *http.Request) {
	dbResp, err := v.DB.Find(r.Context(), bson.M{})
	if err != nil {
		config.ErrorStatus("failed to get vehicles", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Vehicle{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// VehicleByIDHandler returns a vehicle by ID
func (v Vehicle) VehicleByIDHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]

	dbResp, err := v.DB.FindOne(r.Context(), bson.M{"_id": vehicleID})
	if err != nil {
		config.ErrorStatus("failed to get vehicle by ID", http.StatusNotFound, w, err)
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

// CreateVehicleHandler inserts a new vehicle into the catalog, rejecting
// duplicate registration numbers
func (v Vehicle) CreateVehicleHandler(w http.ResponseWriter, r *http.Request) {
	var vehicle models.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if n := len(vehicle.RegistrationNumber); n < 3 || n > 20 {
		config.ErrorStatus("registration number must be between 3 and 20 characters", http.StatusBadRequest, w, nil)
		return
	}
	if vehicle.Type == "" {
		config.ErrorStatus("vehicle type is required", http.StatusBadRequest, w, nil)
		return
	}

	exists, err := v.DB.RegistrationNumberExists(r.Context(), vehicle.RegistrationNumber)
	if err != nil {
		config.ErrorStatus("failed to check registration number", http.StatusInternalServerError, w, err)
		return
	}
	if exists {
		config.ErrorStatus("a vehicle with this registration number already exists", http.StatusConflict, w, nil)
		return
	}

	if vehicle.ID == "" {
		vehicle.ID = uuid.New().String()
	}
	vehicle.CreatedAt = models.Timestamp(nowFunc())
	vehicle.UpdatedAt = vehicle.CreatedAt

	res, err := v.DB.InsertOne(r.Context(), vehicle)
	if err != nil {
		config.ErrorStatus("failed to create vehicle", http.StatusInternalServerError, w, err)
		return
	}

	zap.S().Infow("vehicle created", "vehicleId", vehicle.ID, "registrationNumber", vehicle.RegistrationNumber)

	b, err := json.Marshal(map[string]interface{}{"insertedId": res.Decode()})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// DeleteVehicleHandler removes a vehicle from the catalog
func (v Vehicle) DeleteVehicleHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]

	if err := v.DB.DeleteOne(r.Context(), bson.M{"_id": vehicleID}); err != nil {
		config.ErrorStatus("failed to delete vehicle", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
