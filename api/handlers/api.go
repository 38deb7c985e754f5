package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/parkkaro/park-karo-api/api"
	"github.com/parkkaro/park-karo-api/api/scheduler"
	"github.com/parkkaro/park-karo-api/config"
	"github.com/parkkaro/park-karo-api/databases"
	"github.com/parkkaro/park-karo-api/manage"
	"github.com/parkkaro/park-karo-api/models"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	Scheduler *scheduler.Scheduler
	Pool      *manage.Pool
	dbHelper  databases.DatabaseHelper
	startedAt time.Time
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := api.MiddlewareDB{DB: databases.NewRegistrationDatabase(a.dbHelper)}
	m.SetupGoGuardian()

	r := mux.NewRouter()

	profileDB := databases.NewProfileDatabase(a.dbHelper)
	service := manage.NewService(profileDB)
	if a.Pool == nil {
		a.Pool = manage.NewPool(manage.DefaultWorkers, manage.DefaultQueueSize)
	}
	coordinator := manage.NewCoordinator(service, a.Pool)
	a.Scheduler = scheduler.NewScheduler(service, profileDB)

	mg := Manage{Service: service, Batch: coordinator}
	ps := ParkingSpot{DB: databases.NewParkingSpotDatabase(a.dbHelper)}
	vh := Vehicle{DB: databases.NewVehicleDatabase(a.dbHelper)}
	reg := Registration{DB: databases.NewRegistrationDatabase(a.dbHelper), PDB: profileDB}

	if a.startedAt.IsZero() {
		a.startedAt = time.Now()
	}

	// healthchex
	r.HandleFunc("/health", a.healthCheckHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	apiCreate.Use(api.TimeoutMiddleware(30 * time.Second))

	apiCreate.Handle("/auth/token", http.HandlerFunc(m.CreateToken)).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")

	apiCreate.Handle("/register", http.HandlerFunc(reg.RegisterHandler)).Methods("POST")
	apiCreate.Handle("/users/{user_id}", api.Middleware(http.HandlerFunc(reg.UserByIDHandler))).Methods("GET")

	apiCreate.Handle("/manage/batch/users", api.Middleware(http.HandlerFunc(mg.GetManyHandler))).Methods("POST")
	apiCreate.Handle("/manage/batch/vehicles", api.Middleware(http.HandlerFunc(mg.BatchAddVehiclesHandler))).Methods("POST")
	apiCreate.Handle("/manage/batch/report", api.Middleware(http.HandlerFunc(mg.GenerateReportHandler))).Methods("POST")
	apiCreate.Handle("/manage/{user_id}/batch/vehicles", api.Middleware(http.HandlerFunc(mg.BatchUpdateVehiclesHandler))).Methods("PUT")

	apiCreate.Handle("/manage/{user_id}", api.Middleware(http.HandlerFunc(mg.ProfileHandler))).Methods("GET")
	apiCreate.Handle("/manage/{user_id}", api.Middleware(http.HandlerFunc(mg.DeleteProfileHandler))).Methods("DELETE")

	apiCreate.Handle("/manage/{user_id}/vehicle", api.Middleware(http.HandlerFunc(mg.AddVehicleHandler))).Methods("POST")
	apiCreate.Handle("/manage/{user_id}/vehicle/{vehicle_id}", api.Middleware(http.HandlerFunc(mg.UpdateVehicleHandler))).Methods("PUT")
	apiCreate.Handle("/manage/{user_id}/vehicle/{vehicle_id}", api.Middleware(http.HandlerFunc(mg.DeleteVehicleHandler))).Methods("DELETE")

	apiCreate.Handle("/manage/{user_id}/favorite-spot", api.Middleware(http.HandlerFunc(mg.AddFavoriteSpotHandler))).Methods("POST")
	apiCreate.Handle("/manage/{user_id}/favorite-spot/{spot_id}", api.Middleware(http.HandlerFunc(mg.UpdateFavoriteSpotHandler))).Methods("PUT")
	apiCreate.Handle("/manage/{user_id}/favorite-spot/{spot_id}", api.Middleware(http.HandlerFunc(mg.DeleteFavoriteSpotHandler))).Methods("DELETE")

	apiCreate.Handle("/manage/{user_id}/history", api.Middleware(http.HandlerFunc(mg.AddHistoryHandler))).Methods("POST")
	apiCreate.Handle("/manage/{user_id}/history/{history_id}", api.Middleware(http.HandlerFunc(mg.UpdateHistoryHandler))).Methods("PUT")
	apiCreate.Handle("/manage/{user_id}/history/{history_id}", api.Middleware(http.HandlerFunc(mg.DeleteHistoryHandler))).Methods("DELETE")

	apiCreate.Handle("/manage/{user_id}/active-status", api.Middleware(http.HandlerFunc(mg.AddActiveStatusHandler))).Methods("POST")
	apiCreate.Handle("/manage/{user_id}/active-status/{active_id}", api.Middleware(http.HandlerFunc(mg.UpdateActiveStatusHandler))).Methods("PUT")
	apiCreate.Handle("/manage/{user_id}/active-status/{active_id}", api.Middleware(http.HandlerFunc(mg.DeleteActiveStatusHandler))).Methods("DELETE")

	apiCreate.Handle("/parking-spots", api.Middleware(http.HandlerFunc(ps.ParkingSpotsHandler))).Methods("GET")
	apiCreate.Handle("/parking-spots", api.Middleware(http.HandlerFunc(ps.CreateParkingSpotHandler))).Methods("POST")
	apiCreate.Handle("/parking-spots/{spot_id}", api.Middleware(http.HandlerFunc(ps.ParkingSpotByIDHandler))).Methods("GET")
	apiCreate.Handle("/parking-spots/{spot_id}", api.Middleware(http.HandlerFunc(ps.UpdateParkingSpotHandler))).Methods("PUT")
	apiCreate.Handle("/parking-spots/{spot_id}", api.Middleware(http.HandlerFunc(ps.DeleteParkingSpotHandler))).Methods("DELETE")

	apiCreate.Handle("/vehicles", api.Middleware(http.HandlerFunc(vh.VehiclesHandler))).Methods("GET")
	apiCreate.Handle("/vehicles", api.Middleware(http.HandlerFunc(vh.CreateVehicleHandler))).Methods("POST")
	apiCreate.Handle("/vehicles/{vehicle_id}", api.Middleware(http.HandlerFunc(vh.VehicleByIDHandler))).Methods("GET")
	apiCreate.Handle("/vehicles/{vehicle_id}", api.Middleware(http.HandlerFunc(vh.DeleteVehicleHandler))).Methods("DELETE")

	return r
}

// Initialize connects the database, builds the worker pool and wires the
// router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect(context.Background())
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx); err != nil {
		zap.S().With(err).Error("failed to ping database")
		return err
	}
	zap.S().Info("park-karo-api has connected to the database")

	// seed parking data on a fresh deployment; not fatal when it fails
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), time.Minute)
	defer cancelSeed()
	if err := databases.SeedParkingSpots(seedCtx, databases.NewParkingSpotDatabase(a.dbHelper)); err != nil {
		zap.S().Errorw("failed to seed parking spots", "error", err)
	}

	// initialize api router
	a.initializeRoutes()
	a.Scheduler.Start()
	return nil

}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func (a *App) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthCheckResponse{Alive: true}
	if !a.startedAt.IsZero() {
		resp.Uptime = time.Since(a.startedAt).Truncate(time.Second).String()
	}
	if a.dbHelper != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		resp.Database = "ok"
		if _, err := databases.NewProfileDatabase(a.dbHelper).Count(ctx); err != nil {
			zap.S().Warnw("health check could not reach the database", "error", err)
			resp.Database = "unreachable"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(resp)
	w.Write(b)
}
