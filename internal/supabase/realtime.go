package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"

	"navix-backend/internal/models"
)

type RealtimeClient struct {
	client *supabase.Client
}

func NewRealtimeClient(client *supabase.Client) *RealtimeClient {
	return &RealtimeClient{
		client: client,
	}
}

func (r *RealtimeClient) PublishEvent(channel string, event string, payload map[string]interface{}) error {
	// The Go client has no direct Realtime publish; row inserts on the
	// notifications and processes tables already trigger Realtime for
	// subscribed clients. Kept as the single seam for explicit publishing.
	return nil
}

func (r *RealtimeClient) PublishUserEvent(userID uuid.UUID, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("user:%s", userID.String())
	return r.PublishEvent(channel, event, payload)
}

// Event payloads

func ProcessCreatedPayload(p *models.Process, documents int) map[string]interface{} {
	return map[string]interface{}{
		"process_id": p.ID.String(),
		"code":       p.Code,
		"type":       p.Type,
		"status":     p.Status,
		"documents":  documents,
	}
}

func DocumentUploadedPayload(name, objectKey string) map[string]interface{} {
	return map[string]interface{}{
		"name":   name,
		"url":    objectKey,
		"status": models.DocStatusPending,
	}
}

func BalanceChangedPayload(balance float64) map[string]interface{} {
	return map[string]interface{}{
		"balance": balance,
	}
}
