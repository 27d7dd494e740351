package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
// It doubles as the topic name.
type EventType string

const (
	EventMatchRecorded      EventType = "match-recorded"
	EventTournamentFinished EventType = "tournament-finished"
	EventPointsAwarded      EventType = "tournament-points-awarded"
)

// PushRequest is the JSON body Pub/Sub posts to push subscription endpoints.
type PushRequest struct {
	Subscription string `json:"subscription"`
	Message      struct {
		ID   string `json:"messageId"`
		Data string `json:"data"` // base64-encoded message payload
	} `json:"message"`
}
