package models

// SubmitOrderRequest carries the full intake wizard state at final
// submission. Staged binaries travel as base64 via the standard JSON
// []byte encoding.
type SubmitOrderRequest struct {
	EditID string `json:"edit_id,omitempty"` // reuse an existing order id when editing

	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Mobile    string `json:"mobile" binding:"required"`
	ServiceID string `json:"service_id" binding:"required"`

	Industry     string `json:"industry,omitempty"`
	Requirements string `json:"requirements,omitempty"`
	Keywords     string `json:"keywords,omitempty"`

	EventTitle   string       `json:"event_title,omitempty"`
	BrandName    string       `json:"brand_name,omitempty"`
	SocialLinks  []SocialLink `json:"social_links,omitempty"`
	WebsiteURL   string       `json:"website_url,omitempty"`
	Audience     string       `json:"audience,omitempty"`
	Venue        string       `json:"venue,omitempty"`
	EventDate    string       `json:"event_date,omitempty"`
	EventTime    string       `json:"event_time,omitempty"`
	Recipient    string       `json:"recipient,omitempty"`
	Subject      string       `json:"subject,omitempty"`
	UnitName     string       `json:"unit_name,omitempty"`
	TutorName    string       `json:"tutor_name,omitempty"`
	Year         string       `json:"year,omitempty"`
	Institutes   string       `json:"institutes,omitempty"`
	Motto        string       `json:"motto,omitempty"`
	Location     string       `json:"location,omitempty"`
	Telephones   []string     `json:"telephones,omitempty"`
	Books        []BookRef    `json:"books,omitempty"`
	ExtraDetails string       `json:"extra_details,omitempty"`

	ColorPalette []string   `json:"color_palette,omitempty"`
	Dimensions   Dimensions `json:"dimensions"`

	Files      []StagedAsset `json:"files,omitempty"`
	VoiceClips []StagedAsset `json:"voice_clips,omitempty"`
}

// StagedAsset is a file or voice clip held client-side until submission.
type StagedAsset struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Data []byte `json:"data"`
}

// RevisionRequest carries the client's revision notes for a sent draft.
type RevisionRequest struct {
	Notes string `json:"notes"`
}

// AdminSaveRequest is the admin's order-detail save: status, ETA and the
// deliverable references staged in the dashboard modal.
type AdminSaveRequest struct {
	Status              Status  `json:"status" binding:"required"`
	EstimatedCompletion string  `json:"estimated_completion"`
	DraftImg            *string `json:"draft_img,omitempty"`
	FinalFiles          []Asset `json:"final_files,omitempty"`
}

// UpsertProfileRequest mirrors the identity-provider profile on sign-in.
type UpsertProfileRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Avatar   string `json:"avatar,omitempty"`
	Provider string `json:"provider" binding:"required,oneof=google apple facebook guest email"`
}
