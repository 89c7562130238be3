package models

import (
	"time"

	"github.com/google/uuid"
)

// Process statuses as stored in the processes table. The column is free-text,
// these are the values the app writes.
const (
	ProcessStatusUnderReview = "Em análise"
	ProcessStatusPending     = "Pendente"
	ProcessStatusInProgress  = "Em andamento"
	ProcessStatusCompleted   = "Finalizado"
	ProcessStatusAttention   = "Atenção"
)

type Process struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Type        string // "import" | "export"
	Code        string // display code, e.g. "EXP-417"; not unique
	Product     string
	Origin      string
	Destination string
	Status      string
	Progress    int
	CreatedAt   time.Time
}
