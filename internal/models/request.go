package models

type StartWizardRequest struct {
	// Type selects the operation: "import" or "export".
	Type string `json:"type" example:"export"`
}

type WizardDetailsRequest struct {
	Product     string `json:"product,omitempty"`
	Origin      string `json:"origin,omitempty"`
	Destination string `json:"destination,omitempty"`
	NCMCode     string `json:"ncm_code,omitempty" example:"0901.21.00"`
}

type WalletTransactionRequest struct {
	// Type is "deposit" or "pay". The amount is fixed server-side.
	Type string `json:"type" example:"deposit"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
