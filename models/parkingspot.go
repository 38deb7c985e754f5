package models

// ParkingSpot holds the structure for the parking spot collection in mongo
type ParkingSpot struct {
	ID              string  `json:"_id" bson:"_id,omitempty"`
	Name            string  `json:"name" bson:"name"`
	Latitude        float64 `json:"latitude" bson:"latitude"`
	Longitude       float64 `json:"longitude" bson:"longitude"`
	AvailableSpaces int     `json:"availableSpaces" bson:"availableSpaces"`
	HourlyRate      float64 `json:"hourlyRate" bson:"hourlyRate"`
	VehicleType     string  `json:"vehicleType" bson:"vehicleType"`
	CreatedAt       string  `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt       string  `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}
