package process_document

// ProcessDocumentRequest HTTP request model
type ProcessDocumentRequest struct {
	OfficerID int64   `json:"officerId"`
	Status    string  `json:"status"`
	Notes     *string `json:"notes,omitempty"`
}
