// Package docs Park Karo API.
//
// Documentation of Park Karo API.
//
//     Schemes: https
//     BasePath: /
//     Version: 1.0.0
//     Host: https://park-karo-api.herokuapp.com
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
//     Security:
//     - basic
//
//    SecurityDefinitions:
//    basic:
//      type: basic
//
// swagger:meta
package docs

import (
	"github.com/parkkaro/park-karo-api/models"
)

// swagger:route GET /health health healthEndpointID
// Lists the healthchex of the web service api.
// responses:
//   200: healthResponse

// Shows the current health of the api. true means it is alive, false means it is not.
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body models.HealthCheckResponse
}

// swagger:route GET /api/v1/manage/{user_id} manage profileByID
// Gets a user's full profile with vehicles, favorite spots, history and
// active status keyed by their ids.
// responses:
//   200: profileByIDResponse

// Shows a single profile for the given {user_id}
// swagger:response profileByIDResponse
type profileByIDResponseWrapper struct {
	// in:body
	Body models.Profile
}

// swagger:route POST /api/v1/manage/batch/report manage batchReport
// Builds a section-count report across a list of users.
// responses:
//   200: batchReportResponse

// Shows per-user section counts and cross-user totals
// swagger:response batchReportResponse
type batchReportResponseWrapper struct {
	// in:body
	Body models.ProfileReport
}

// swagger:route GET /api/v1/vehicles vehicles listVehicles
// Lists the vehicles in the catalog.
// responses:
//   200: vehiclesResponse

// Shows all catalog vehicles
// swagger:response vehiclesResponse
type vehiclesResponseWrapper struct {
	// in:body
	Body []models.Vehicle
}

// swagger:route GET /api/v1/parking-spots parkingSpots listParkingSpots
// Lists parking spots with optional vehicle type and availability filters.
// responses:
//   200: parkingSpotsResponse

// Shows the matching parking spots
// swagger:response parkingSpotsResponse
type parkingSpotsResponseWrapper struct {
	// in:body
	Body []models.ParkingSpot
}
