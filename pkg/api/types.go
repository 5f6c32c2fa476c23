// Package api defines the Gigboard domain types and the static fallback
// datasets used when the remote API is unreachable.
package api

// Connectivity status values reported by CheckHealth.
const (
	StatusConnected    = "connected"
	StatusDisconnected = "disconnected"
)

// Artist is a music artist record returned by the Gigboard API.
// ID is the sole identity field; all other fields are display data.
type Artist struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Genre     string `json:"genre,omitempty"`
	Listeners int    `json:"listeners,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
	URL       string `json:"url,omitempty"`
}

// Event is a live event record returned by the Gigboard API.
type Event struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ArtistID  string `json:"artist_id,omitempty"`
	Venue     string `json:"venue,omitempty"`
	City      string `json:"city,omitempty"`
	Date      string `json:"date,omitempty"`
	TicketURL string `json:"ticket_url,omitempty"`
}

// Stats holds the record counts reported by the /stats endpoint.
type Stats struct {
	Artists int `json:"artists"`
	Events  int `json:"events"`
}

// Health is the response of the /health endpoint.
type Health struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
