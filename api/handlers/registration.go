package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/parkkaro/park-karo-api/config"
	"github.com/parkkaro/park-karo-api/databases"
	"github.com/parkkaro/park-karo-api/models"
)

// nowFunc is swapped in tests
var nowFunc = time.Now

// Registration exported for testing purposes
type Registration struct {
	DB  databases.RegistrationDatabase
	PDB databases.ProfileDatabase
}

// RegisterHandler creates a new registered user with a hashed password
func (g Registration) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req models.RegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		config.ErrorStatus("name, email and password are required", http.StatusBadRequest, w, nil)
		return
	}

	exists, err := g.DB.EmailExists(r.Context(), req.Email)
	if err != nil {
		config.ErrorStatus("failed to check existing registrations", http.StatusInternalServerError, w, err)
		return
	}
	if exists {
		config.ErrorStatus("email is already registered", http.StatusConflict, w, nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		config.ErrorStatus("failed to hash password", http.StatusInternalServerError, w, err)
		return
	}

	user := models.RegisteredUser{
		UserID:       uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		PhoneNumber:  req.PhoneNumber,
		CreatedAt:    models.Timestamp(nowFunc()),
	}

	if _, err := g.DB.InsertOne(r.Context(), user); err != nil {
		config.ErrorStatus("failed to create registration", http.StatusInternalServerError, w, err)
		return
	}

	// seed an empty profile so reads and reports see the new user right away;
	// a failure here is not fatal, the first add creates the document anyway
	profile := models.NewProfile(user.UserID, nowFunc())
	profile.Version = 1
	if err := g.PDB.Insert(r.Context(), profile.ToDocument()); err != nil && !errors.Is(err, databases.ErrStaleWrite) {
		zap.S().Errorw("failed to seed initial profile", "userId", user.UserID, "error", err)
	}

	zap.S().Infow("user registered", "userId", user.UserID)

	b, err := json.Marshal(user)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// UserByIDHandler returns a registered user by their application user id
func (g Registration) UserByIDHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	zap.S().Debugf("user_id: %v", userID)

	user, err := g.DB.FindOne(r.Context(), bson.M{"userId": userID})
	if err != nil {
		config.ErrorStatus("failed to get user by ID", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(user)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
