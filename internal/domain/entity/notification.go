package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Notification - запись во входящих пользователя, созданная из доменного события.
type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Kind      string
	Payload   json.RawMessage
	IsRead    bool
	CreatedAt time.Time
}
