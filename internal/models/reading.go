package models

import (
	"fmt"
	"time"
)

// TimestampLayout is the textual format readings are submitted in ("2024-02-05T14:30").
const TimestampLayout = "2006-01-02T15:04"

// Reading is one blood-pressure measurement owned by a user.
// Timestamps are naive local times; no timezone conversion anywhere.
type Reading struct {
	ID        int       `json:"id"`
	UserID    int       `json:"-"`
	Systolic  int       `json:"systolic"`
	Diastolic int       `json:"diastolic"`
	TakenAt   time.Time `json:"-"`
}

// ReadingView is the client-facing shape of a reading. The timestamp string
// is part of the external contract: "Monday, 05/02/2024 14:30".
type ReadingView struct {
	ID        int    `json:"id"`
	Systolic  int    `json:"systolic"`
	Diastolic int    `json:"diastolic"`
	Timestamp string `json:"timestamp"`
}

// DisplayTimestamp renders the reading time as "<Weekday>, <DD/MM/YYYY> <HH:MM>".
func (r Reading) DisplayTimestamp() string {
	return fmt.Sprintf("%s, %s", r.TakenAt.Weekday(), r.TakenAt.Format("02/01/2006 15:04"))
}

// View converts a Reading to its client-facing representation.
func (r Reading) View() ReadingView {
	return ReadingView{
		ID:        r.ID,
		Systolic:  r.Systolic,
		Diastolic: r.Diastolic,
		Timestamp: r.DisplayTimestamp(),
	}
}
