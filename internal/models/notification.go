package models

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	Message   string
	Type      string // "success" | "warning" | "info"
	Read      bool
	CreatedAt time.Time
}
