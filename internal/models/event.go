package models

import (
	"encoding/json"
	"time"
)

// Event represents an AWS EventBridge event.
type Event struct {
	ID           string    `json:"id"`
	Time         time.Time `json:"time"`
	Region       string    `json:"region,omitempty"`
	Source       string    `json:"source"`
	Account      string    `json:"account,omitempty"`
	Version      string    `json:"version"`
	Detail       any       `json:"detail"`
	DetailType   string    `json:"detail-type"`
	Resources    []string  `json:"resources"`
	EventBusName string    `json:"event_bus_name,omitempty"`
}

// TestMessage is a caller-supplied event to publish onto a bus.
// Empty fields take the explorer's publish defaults.
type TestMessage struct {
	EventBusName string          `json:"event_bus_name,omitempty"`
	Source       string          `json:"source,omitempty"`
	DetailType   string          `json:"detail-type,omitempty"`
	Detail       json.RawMessage `json:"detail,omitempty"`
	Resources    []string        `json:"resources,omitempty"`
}
