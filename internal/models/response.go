package models

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ValidationErrorResponse maps field names to inline messages, mirroring
// the wizard's per-field error display.
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// SubmitOrderResponse reports the persisted order plus any assets whose
// upload failed and was dropped from the aggregate.
type SubmitOrderResponse struct {
	Order        Order    `json:"order"`
	FailedAssets []string `json:"failed_assets,omitempty"`
}

type OrderListResponse struct {
	Orders []Order `json:"orders"`
}

// DraftUploadResponse returns the stored draft URL and the status the
// dashboard should pre-select. The suggestion only persists on save.
type DraftUploadResponse struct {
	URL             string `json:"url"`
	SuggestedStatus Status `json:"suggested_status"`
}

type FinalUploadResponse struct {
	Files        []Asset  `json:"files"`
	FailedAssets []string `json:"failed_assets,omitempty"`
}

// AdminSaveResponse echoes the saved order and, when the status changed,
// a WhatsApp deep link the operator can open to notify the client.
type AdminSaveResponse struct {
	Order        Order  `json:"order"`
	Notified     bool   `json:"notified"`
	WhatsAppLink string `json:"whatsapp_link,omitempty"`
}

type HelpLinkResponse struct {
	WhatsAppLink string `json:"whatsapp_link"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
