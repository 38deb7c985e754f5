package databases

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/parkkaro/park-karo-api/models"
)

const seedSpotCount = 1000

// seedAreas are Mumbai post office areas used to label generated spots.
var seedAreas = []string{
	"Mumbai GPO", "Colaba PO", "Fort PO", "Marine Lines PO", "Girgaon PO",
	"Malabar Hill PO", "Byculla PO", "Worli PO", "Dadar HO", "Mahim PO",
	"Parel PO", "Matunga PO", "Sion PO", "Wadala PO", "Bandra West PO",
	"Khar West PO", "Santacruz East PO", "Juhu PO", "Vile Parle East PO",
	"Andheri West PO", "Andheri East PO", "Versova PO", "Goregaon East PO",
	"Malad West PO", "Kandivali East PO", "Borivali West PO", "Chembur PO",
	"Ghatkopar West PO", "Powai PO", "Mulund West PO", "Kurla West PO",
	"Thane HO", "Vashi PO", "Nerul PO", "CBD Belapur PO", "Panvel HO",
}

// SeedParkingSpots fills an empty parking spot collection with generated
// Mumbai data so a fresh deployment has something to serve. A non-empty
// collection is left untouched.
func SeedParkingSpots(ctx context.Context, db ParkingSpotDatabase) error {
	count, err := db.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to count parking spots: %w", err)
	}
	if count > 0 {
		return nil
	}

	zap.S().Infow("no parking data found, seeding generated spots", "count", seedSpotCount)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := models.Timestamp(time.Now())
	for i := 1; i <= seedSpotCount; i++ {
		spot := generateParkingSpot(rng, i)
		spot.CreatedAt = now
		spot.UpdatedAt = now
		if _, err := db.InsertOne(ctx, spot); err != nil {
			return fmt.Errorf("failed to seed parking spot %s: %w", spot.ID, err)
		}
	}
	return nil
}

func generateParkingSpot(rng *rand.Rand, n int) models.ParkingSpot {
	area := seedAreas[rng.Intn(len(seedAreas))]
	vehicleType := "CAR"
	if rng.Intn(2) == 1 {
		vehicleType = "BIKE"
	}
	// Mumbai-like coordinates, roughly 18.9-19.3 N and 72.8-73.1 E
	lat := 18.89 + (19.30-18.89)*rng.Float64()
	lng := 72.80 + (73.10-72.80)*rng.Float64()
	return models.ParkingSpot{
		ID:              fmt.Sprintf("PS-MUM-%04d", n),
		Name:            fmt.Sprintf("%s Parking Zone %d", strings.TrimSuffix(area, " PO"), rng.Intn(9)+1),
		Latitude:        math.Round(lat*1e6) / 1e6,
		Longitude:       math.Round(lng*1e6) / 1e6,
		AvailableSpaces: rng.Intn(121),
		HourlyRate:      math.Round((40+(250-40)*rng.Float64())*100) / 100,
		VehicleType:     vehicleType,
	}
}
