package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
)

type NotificationResponse struct {
	ID        uuid.UUID       `json:"id"`
	Kind      string          `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
	IsRead    bool            `json:"is_read"`
	CreatedAt time.Time       `json:"created_at"`
}

func ToNotificationResponses(items []*entity.Notification) []NotificationResponse {
	responses := make([]NotificationResponse, 0, len(items))
	for _, n := range items {
		payload := n.Payload
		if len(payload) == 0 {
			payload = json.RawMessage(`{}`)
		}
		responses = append(responses, NotificationResponse{
			ID:        n.ID,
			Kind:      n.Kind,
			Payload:   payload,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	return responses
}
