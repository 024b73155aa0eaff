package models

import "time"

// TideType represents whether a tide is high or low
type TideType string

const (
	TideHigh TideType = "High"
	TideLow  TideType = "Low"
)

// UnknownTime is displayed in place of a missing or unreadable event time
const UnknownTime = "???"

// displayLayout renders as e.g. "Sun 01 - 10:00"
const displayLayout = "Mon 02 - 15:04"

// TideEvent represents a single high or low water occurrence
type TideEvent struct {
	Type  TideType
	Time  time.Time
	Known bool // false when the API sent no usable DateTime
}

// TideTypeFromEvent classifies an Admiralty EventType.
// Only "HighWater" is high water; everything else is treated as low.
func TideTypeFromEvent(eventType string) TideType {
	if eventType == "HighWater" {
		return TideHigh
	}
	return TideLow
}

// DisplayTime formats the event time for the tide table
func (e TideEvent) DisplayTime() string {
	if !e.Known {
		return UnknownTime
	}
	return e.Time.Format(displayLayout)
}
