package models

// HealthCheckResponse is the payload returned by the health endpoint
type HealthCheckResponse struct {
	Alive    bool   `json:"alive"`
	Database string `json:"database,omitempty"`
	Uptime   string `json:"uptime,omitempty"`
}
