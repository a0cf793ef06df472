package share

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("not found")

// Share grants read access to one itinerary to whoever holds Token until
// ExpiresAt. Shares are never updated; sharing again issues a new token.
type Share struct {
	ID          uuid.UUID
	ItineraryID string
	Token       string
	CreatedBy   *string
	ExpiresAt   time.Time
	IsPublic    bool
	CreatedAt   time.Time
}

type Itinerary struct {
	ID            string
	OwnerID       *string
	Title         string
	Destination   string
	Summary       string
	Days          []Day
	InternalNotes string
	CreatedAt     time.Time
}

type Day struct {
	Day   int    `json:"day"`
	Title string `json:"title"`
	Stops []Stop `json:"stops"`
}

type Stop struct {
	Name   string `json:"name"`
	Notes  string `json:"notes,omitempty"`
	SpotID string `json:"spot_id,omitempty"`
}

// PublicItinerary is the projection served to anonymous link holders.
type PublicItinerary struct {
	Title       string      `json:"title"`
	Destination string      `json:"destination"`
	Summary     string      `json:"summary"`
	Days        []PublicDay `json:"days"`
	ExpiresAt   time.Time   `json:"expires_at"`
}

type PublicDay struct {
	Day   int          `json:"day"`
	Title string       `json:"title"`
	Stops []PublicStop `json:"stops"`
}

type PublicStop struct {
	Name  string `json:"name"`
	Notes string `json:"notes,omitempty"`
}

// Issued is what the caller gets back after sharing.
type Issued struct {
	Token     string    `json:"token"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
