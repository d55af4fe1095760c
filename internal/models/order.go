package models

import "time"

// Status is the order lifecycle state. The values double as the
// human-readable labels shown to clients, so they are stored verbatim.
type Status string

const (
	StatusPending        Status = "Pending"
	StatusReviewing      Status = "Reviewing"
	StatusInProgress     Status = "In Progress"
	StatusDraftSent      Status = "Draft Sent"
	StatusRevision       Status = "Revision"
	StatusWaitingPayment Status = "Waiting Payment"
	StatusCompleted      Status = "Completed"
	StatusCancelled      Status = "Cancelled"
)

// AllStatuses lists every lifecycle state in flow order.
var AllStatuses = []Status{
	StatusPending,
	StatusReviewing,
	StatusInProgress,
	StatusDraftSent,
	StatusRevision,
	StatusWaitingPayment,
	StatusCompleted,
	StatusCancelled,
}

// Valid reports whether s is one of the enumerated statuses.
func (s Status) Valid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type Orientation string

const (
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
	OrientationSquare    Orientation = "square"
)

// AspectRatioCustom is reported when width/height do not reduce to a
// meaningful integer ratio (GCD of the rounded values is zero).
const AspectRatioCustom = "Custom"

// Dimensions holds the technical spec of a deliverable. Orientation and
// AspectRatio are derived from width/height and never set directly.
type Dimensions struct {
	Width       float64     `json:"width"`
	Height      float64     `json:"height"`
	Unit        string      `json:"unit"`
	PPI         int         `json:"ppi"`
	Orientation Orientation `json:"orientation"`
	AspectRatio string      `json:"aspectRatio"`
}

// Asset is a stored binary reference: client uploads, voice clips and
// admin-delivered files all share this shape.
type Asset struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Data string `json:"data"` // storage URL
}

// SocialLink is one entry of the repeatable social-media list on the
// event/promo intake variant.
type SocialLink struct {
	Platform string `json:"platform"`
	Handle   string `json:"handle"`
}

// BookRef is one entry of the repeatable book list for book-cover briefs.
type BookRef struct {
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`
}

// Order is the central aggregate: a client's design-service request and
// its full lifecycle record, persisted as one document.
type Order struct {
	ID       string `json:"id"`
	ClientID string `json:"clientId"`

	ClientName string `json:"clientName"`
	Email      string `json:"email"`
	Mobile     string `json:"mobile"`

	ServiceID   string  `json:"serviceId"`
	ServiceType string  `json:"serviceType"` // denormalized catalog title
	Price       float64 `json:"price"`       // denormalized at submission, never recomputed

	Industry       string   `json:"industry"`
	TargetAudience string   `json:"targetAudience"`
	Requirements   string   `json:"requirements"`
	Keywords       string   `json:"keywords"`
	ColorPalette   []string `json:"colorPalette"`

	Dimensions Dimensions `json:"dimensions"`

	Files      []Asset `json:"files"`
	VoiceClips []Asset `json:"voiceClips"`
	DraftImg   string  `json:"draftImg,omitempty"`
	FinalFiles []Asset `json:"finalFiles,omitempty"`

	CustomFields map[string]any `json:"customFields,omitempty"`

	Status              Status    `json:"status"`
	RevisionNotes       string    `json:"revisionNotes,omitempty"`
	EstimatedCompletion string    `json:"estimatedCompletion"`
	CreatedAt           time.Time `json:"createdAt"`
	IsDeletedByAdmin    bool      `json:"isDeletedByAdmin,omitempty"`
}

// User is a passive profile mirrored from the identity provider. It is
// created or merged on every successful sign-in and never deleted here.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar,omitempty"`
	Provider string `json:"provider"`
}

// Service is a catalog entry. Orders keep denormalized copies of the
// title and price; the catalog itself is static configuration.
type Service struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Features    []string `json:"features"`
}
