package models

import "time"

type WizardResponse struct {
	SessionID   string           `json:"session_id"`
	Step        int              `json:"step"`
	Type        string           `json:"type"`
	Product     string           `json:"product,omitempty"`
	Origin      string           `json:"origin,omitempty"`
	Destination string           `json:"destination,omitempty"`
	NCMCode     string           `json:"ncm_code,omitempty"`
	Advisory    string           `json:"advisory,omitempty"`
	Files       []StagedDocument `json:"files"`
}

type StepResponse struct {
	SessionID string `json:"session_id"`
	Step      int    `json:"step"`
}

type EstimateResponse struct {
	CargoValue           float64 `json:"cargo_value"`
	InternationalFreight float64 `json:"international_freight"`
	EstimatedTaxes       float64 `json:"estimated_taxes"`
	Total                float64 `json:"total"`
	Currency             string  `json:"currency"`
}

type AdvisoryResponse struct {
	Text string `json:"text"`
}

type FinishResponse struct {
	ProcessID         string `json:"process_id"`
	Code              string `json:"code"`
	DocumentsSaved    int    `json:"documents_saved"`
	PartialSuccess    bool   `json:"partial_success,omitempty"`
	DocumentsError    string `json:"documents_error,omitempty"`
	NotificationError string `json:"notification_error,omitempty"`
}

type ProcessResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Type        string    `json:"type"`
	Product     string    `json:"product"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Status      string    `json:"status"`
	Progress    int       `json:"progress"`
	CreatedAt   time.Time `json:"created_at"`
}

type ProcessListResponse struct {
	Processes []ProcessResponse `json:"processes"`
}

type DocumentResponse struct {
	ID        string    `json:"id"`
	ProcessID string    `json:"process_id,omitempty"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	URL       string    `json:"url,omitempty"`
	Size      string    `json:"size,omitempty"`
	Date      time.Time `json:"date"`
}

type DocumentListResponse struct {
	Documents []DocumentResponse `json:"documents"`
}

type SignedURLResponse struct {
	SignedURL string `json:"signed_url"`
	ExpiresIn int    `json:"expires_in"`
}

type WalletResponse struct {
	Balance float64 `json:"balance"`
}

type TransactionResponse struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
}

type TransactionListResponse struct {
	Balance      float64               `json:"balance"`
	Transactions []TransactionResponse `json:"transactions"`
}

type NotificationResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}

type ProfileResponse struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	CompanyName string  `json:"company_name"`
	Balance     float64 `json:"balance"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
