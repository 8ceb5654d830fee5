package entity

import (
	"github.com/google/uuid"
	"github.com/ignatzorin/gastro-backend/internal/domain/valueobject"
)

// Actor - аутентифицированный участник запроса. Проверку подписи токена выполняет middleware.
type Actor struct {
	ID   uuid.UUID
	Role valueobject.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == valueobject.RoleAdmin
}

func (a Actor) IsProfessional() bool {
	return a.Role == valueobject.RoleProfessional
}

func (a Actor) IsClient() bool {
	return a.Role == valueobject.RoleClient
}
