package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAuthLogin     EventType = "auth_login"
	EventAuthRefresh   EventType = "auth_refresh"
	EventAuthLogout    EventType = "auth_logout"
	EventAuthLogoutAll EventType = "auth_logout_all"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    int64       `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AuthEventPayload carries request metadata recorded with auth events.
type AuthEventPayload struct {
	Email     string `json:"email"`
	IPAddress string `json:"ip_address,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}
