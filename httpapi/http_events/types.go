// Package http_events is the SSE fan-out layer behind httpapi's /events
// endpoint: one EventsClient per connected browser, each holding its own
// subscriber on the core's event bus and a queue drained onto the HTTP
// response as Server-Sent Events.
//
// Grounded on the teacher's http_server/http_events package
// (eventClient.go, events.go, types.go, eventSession.go), simplified to a
// single base64 pass per record — the teacher base64-encodes the JSON
// payload, wraps it in SentEvent, then base64-encodes the wrapper too; the
// first encoding already makes the payload transport-safe, so the second
// pass adds nothing but cost.
package http_events

import (
	"time"

	"dspc/utils"
)

// Session identifies one SSE connection. The teacher keys its client map
// on a session embedding a login identity; DSPC has no login layer (the
// admin surface is meant to run on a trusted operator console), so a
// Session here is just an opaque, timestamped connection identifier.
type Session struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
}

// NewSession mints a Session with a fresh random ID.
func NewSession() Session {
	return Session{ID: utils.GenerateRandomString(16), Timestamp: time.Now().UnixMilli()}
}

// SubscriptionRequest is the body of POST /events/subscribe and
// POST /events/unsubscribe.
type SubscriptionRequest struct {
	Session    Session  `json:"session"`
	EventTypes []string `json:"event_types"`
}

// SentEvent is the JSON record written as one SSE "data:" line, base64
// encoded as a whole so an event payload containing newlines can never
// break SSE framing.
type SentEvent struct {
	ID   string      `json:"id"`
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}
