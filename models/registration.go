package models

// RegisteredUser holds the structure for the user registration collection in
// mongo. PasswordHash is never serialized back to callers.
type RegisteredUser struct {
	ID           string `json:"_id" bson:"_id,omitempty"`
	UserID       string `json:"userId" bson:"userId"`
	Name         string `json:"name" bson:"name"`
	Email        string `json:"email" bson:"email"`
	PasswordHash string `json:"-" bson:"passwordHash"`
	PhoneNumber  string `json:"phoneNumber" bson:"phoneNumber"`
	CreatedAt    string `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
}

// RegistrationRequest is the deserialized body of a registration call.
type RegistrationRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber"`
}
