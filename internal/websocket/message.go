package websocket

import (
	"encoding/json"
	"time"

	"github.com/dom/bikeshare-backend/internal/domain"
)

type MessageType string

const (
	// Server to Client
	MessageTypeRentalStarted   MessageType = "RENTAL_STARTED"
	MessageTypeRentalCompleted MessageType = "RENTAL_COMPLETED"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
}

func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      msgType,
		Payload:   payloadBytes,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

type RentalEventPayload struct {
	Rental *domain.BikeRental `json:"rental"`
}
