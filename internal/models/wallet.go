package models

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID          uuid.UUID
	Email       string
	CompanyName string
	Balance     float64
}

type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Description string
	Amount      float64
	Type        string // "credit" | "debit"
	Category    string
	CreatedAt   time.Time
}
