package wizard

import (
	"database/sql"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"navix-backend/internal/models"
)

// RecordStore persists the records derived from a finished draft.
type RecordStore interface {
	// InsertProcess writes the process row and returns it with the
	// store-assigned id and creation timestamp filled in.
	InsertProcess(p *models.Process) (*models.Process, error)
	InsertDocuments(docs []models.Document) error
	InsertNotification(n *models.Notification) error
}

// ProcessCode builds the display code for a new process: IMP-### or EXP-###
// with a random suffix in [0,999]. Codes are not unique and collisions are
// not checked; the row's uuid is the real identifier.
func ProcessCode(operationType string) string {
	prefix := "EXP"
	if operationType == "import" {
		prefix = "IMP"
	}
	return fmt.Sprintf("%s-%d", prefix, rand.Intn(1000))
}

// CommitResult reports what the finish sequence managed to persist. The
// sequence has no cross-step atomicity: DocumentsErr set with a non-nil
// Process means the process row exists but its document metadata does not.
type CommitResult struct {
	Process         *models.Process
	DocumentsSaved  int
	DocumentsErr    error
	NotificationErr error
}

// PartialSuccess is true when the process was created but the document
// bulk-insert failed.
func (r *CommitResult) PartialSuccess() bool {
	return r.DocumentsErr != nil
}

// Finish runs the commit sequence from the summary step: insert the process,
// bulk-insert the staged documents, insert the completion notification. A
// process insert failure aborts everything; later failures are reported in
// the result without undoing the process row. A second Finish while one is
// in flight is rejected with ErrCommitInProgress.
func (s *Session) Finish(store RecordStore) (*CommitResult, error) {
	s.mu.Lock()
	if s.finishing {
		s.mu.Unlock()
		return nil, ErrCommitInProgress
	}
	if s.Draft.Step() != StepSummary {
		s.mu.Unlock()
		return nil, ErrNotAtSummary
	}
	s.finishing = true
	draft := *s.Draft
	draft.Files = append([]models.StagedDocument(nil), s.Draft.Files...)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.finishing = false
		s.mu.Unlock()
	}()

	if s.UserID == uuid.Nil {
		return nil, ErrAuthRequired
	}

	process, err := store.InsertProcess(&models.Process{
		UserID:      s.UserID,
		Type:        draft.Type,
		Code:        ProcessCode(draft.Type),
		Product:     draft.Product,
		Origin:      draft.Origin,
		Destination: draft.Destination,
		Status:      models.ProcessStatusUnderReview,
		Progress:    10,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create process: %w", err)
	}

	result := &CommitResult{Process: process}

	if len(draft.Files) > 0 {
		docs := make([]models.Document, 0, len(draft.Files))
		for _, f := range draft.Files {
			docs = append(docs, models.Document{
				UserID:    s.UserID,
				ProcessID: uuid.NullUUID{UUID: process.ID, Valid: true},
				Name:      f.Name,
				Type:      f.Type,
				Status:    models.DocStatusPending,
				URL:       f.URL,
				Date:      time.Now(),
				Size:      sql.NullString{String: f.Size, Valid: f.Size != ""},
			})
		}
		if err := store.InsertDocuments(docs); err != nil {
			// The process row is already committed; report partial success
			// instead of a hard failure.
			result.DocumentsErr = err
		} else {
			result.DocumentsSaved = len(docs)
		}
	}

	if err := store.InsertNotification(&models.Notification{
		UserID:  s.UserID,
		Title:   "Novo Processo Criado",
		Message: fmt.Sprintf("O processo %s de %s foi iniciado com sucesso.", process.Code, draft.Product),
		Type:    "success",
	}); err != nil {
		result.NotificationErr = err
	}

	return result, nil
}
