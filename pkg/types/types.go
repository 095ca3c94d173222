package types

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// NewCUID generates a collision-resistant identifier for rows that are
// ordered by creation time (feed items, announcements).
func NewCUID() string {
	var suffix [4]byte
	_, _ = rand.Read(suffix[:])
	return fmt.Sprintf("c%d%s", time.Now().UnixNano(), hex.EncodeToString(suffix[:]))
}

// Common response types

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

// Auth types

type RegisterRequest struct {
	// DeviceID is a client-generated stable identifier. Optional; the
	// server generates one when absent so anonymous installs still get a
	// stable account.
	DeviceID string `json:"deviceId"`
}

type RegisterResponse struct {
	UserID  string `json:"userId"`
	Token   string `json:"token"`
	Created bool   `json:"created"`
}

// Vote types

type VoteRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
}

type VoteItem struct {
	SessionID string `json:"sessionId"`
	Rating    int    `json:"rating"`
}

// Favorite types

type FavoriteRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}

// Time types

type TimeResponse struct {
	// Time is the current logical time in milliseconds since the epoch.
	Time int64 `json:"time"`
	// Simulated reports whether an admin override is active.
	Simulated bool `json:"simulated"`
}

type SetTimeRequest struct {
	// Time is the override in milliseconds since the epoch; null clears
	// the override and returns the server to real time.
	Time *int64 `json:"time"`
}

// Live update event types

type LiveEvent struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data,omitempty"`
}

const (
	LiveEventTimeOverride    = "time-override"
	LiveEventScheduleUpdated = "schedule-updated"
	LiveEventAnnouncement    = "announcement"
)
