package models

// Vehicle holds the structure for the vehicle catalog collection in mongo.
// Registration numbers are unique across the catalog.
type Vehicle struct {
	ID                 string                 `json:"_id" bson:"_id,omitempty"`
	Type               string                 `json:"type" bson:"type"`
	RegistrationNumber string                 `json:"registrationNumber" bson:"registrationNumber"`
	Brand              string                 `json:"brand,omitempty" bson:"brand,omitempty"`
	Model              string                 `json:"model,omitempty" bson:"model,omitempty"`
	Color              string                 `json:"color,omitempty" bson:"color,omitempty"`
	Year               int                    `json:"year,omitempty" bson:"year,omitempty"`
	AdditionalInfo     map[string]interface{} `json:"additionalInfo,omitempty" bson:"additionalInfo,omitempty"`
	CreatedAt          string                 `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt          string                 `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}
