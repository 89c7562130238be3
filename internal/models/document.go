package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Document statuses as stored in the documents table.
const (
	DocStatusPending   = "Pendente"
	DocStatusValidated = "Validado"
	DocStatusRejected  = "Rejeitado"
)

// Document is a persisted document row. ProcessID is null for standalone
// uploads made outside the wizard.
type Document struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ProcessID uuid.NullUUID
	Name      string
	Type      string
	Status    string
	URL       string // storage object key inside the bucket
	Date      time.Time
	Size      sql.NullString
}

// StagedDocument is a file already uploaded to the bucket but not yet linked
// to a process. It lives only inside a wizard session and is promoted to a
// Document row at finish.
type StagedDocument struct {
	ID     string `json:"id"` // random base-36 token
	Name   string `json:"name"`
	Type   string `json:"type"`
	Date   string `json:"date"`
	Status string `json:"status"` // always "Enviado" while staged
	URL    string `json:"url"`
	Size   string `json:"size"` // human readable, e.g. "1.24 MB"
}
