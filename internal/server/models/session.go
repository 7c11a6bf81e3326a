package models

import (
	"time"

	"github.com/google/uuid"
)

// Session: refresh-сессия пользователя.
type Session struct {
	ID         uuid.UUID
	UserID     int64
	ExpiresAt  time.Time
	RevokedAt  *time.Time
	ReplacedBy *uuid.UUID
}
