// Package catalog holds the static service catalog and the per-service
// dimension preset tables. Orders denormalize title and price from here
// at submission time; later catalog edits never touch existing orders.
package catalog

import "designflow-backend/internal/models"

const (
	ServiceSocial       = "s_social"
	ServiceInvite       = "s_invite"
	ServiceBanner       = "s_banner"
	ServiceFlyer        = "s_flyer"
	ServiceTute         = "s_tute"
	ServiceLetterhead   = "s_letterhead"
	ServiceBook         = "s_book"
	ServiceBusinessCard = "s_businesscard"
)

var Services = []models.Service{
	{
		ID:          ServiceSocial,
		Title:       "Social Media & Visuals",
		Description: "Cinematic image manipulations, product reveals, and event teasers designed to stop the scroll.",
		Price:       49,
		Features:    []string{"Cinematic Manipulation", "Product Reveal", "Event Reveal", "Story Adaptations"},
	},
	{
		ID:          ServiceInvite,
		Title:       "Invitation Cards",
		Description: "Elegant and memorable designs for weddings, corporate events, and special occasions.",
		Price:       79,
		Features:    []string{"Wedding Invitations", "Event Invitations", "Digital & Print Ready", "Custom Typography"},
	},
	{
		ID:          ServiceBanner,
		Title:       "Banners",
		Description: "Impactful large-format banners for web headers, billboards, or event backdrops.",
		Price:       69,
		Features:    []string{"Web Headers", "Billboard Scale", "Event Backdrops", "High Resolution"},
	},
	{
		ID:          ServiceFlyer,
		Title:       "Flyers",
		Description: "Strategic flyer designs that communicate your message clearly and convert readers into customers.",
		Price:       55,
		Features:    []string{"Event Promo", "Sales Sheets", "A4/A5 Formats", "QR Integration"},
	},
	{
		ID:          ServiceTute,
		Title:       "Tute Covers",
		Description: "Professional cover designs for educational tutorials, course modules, and academic materials.",
		Price:       45,
		Features:    []string{"Series Consistency", "Subject Iconography", "Academic Layouts", "eBook Ready"},
	},
	{
		ID:          ServiceLetterhead,
		Title:       "Letter Heads",
		Description: "Official letterhead designs that reinforce your brand identity in every correspondence.",
		Price:       39,
		Features:    []string{"Word Doc Template", "Print Ready PDF", "Brand Patterns", "Footer Design"},
	},
	{
		ID:          ServiceBook,
		Title:       "Book Covers",
		Description: "Captivating book cover art that tells a story and stands out on the shelf or digital store.",
		Price:       129,
		Features:    []string{"Front/Back/Spine", "3D Mockups", "Typography Focus", "Genre Specific"},
	},
	{
		ID:          ServiceBusinessCard,
		Title:       "Business Cards",
		Description: "Premium business card designs that leave a lasting first impression during networking.",
		Price:       49,
		Features:    []string{"Double-sided", "Spot UV/Foil Prep", "Minimalist or Bold", "Print Ready"},
	},
}

// ServiceByID looks a service up in the catalog. The second return is
// false for unknown ids.
func ServiceByID(id string) (models.Service, bool) {
	for _, s := range Services {
		if s.ID == id {
			return s, true
		}
	}
	return models.Service{}, false
}

// printServices are the print-oriented catalog ids: selecting one of
// these defaults new orders to millimeters at 300ppi.
var printServices = map[string]bool{
	ServiceInvite:       true,
	ServiceBanner:       true,
	ServiceTute:         true,
	ServiceLetterhead:   true,
	ServiceBook:         true,
	ServiceBusinessCard: true,
}

// IsPrintService reports whether the service id belongs to the
// print-oriented subset of the catalog.
func IsPrintService(id string) bool {
	return printServices[id]
}

// Preset is a named, catalog-defined width/height/unit/ppi combination.
// Applying one overwrites all four dimension fields atomically.
type Preset struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Unit   string  `json:"unit"`
	PPI    int     `json:"ppi"`
}

var presets = map[string][]Preset{
	ServiceSocial: {
		{ID: "ig_sq", Name: "Instagram Square", Width: 1080, Height: 1080, Unit: "px", PPI: 72},
		{ID: "ig_pt", Name: "Instagram Portrait", Width: 1080, Height: 1350, Unit: "px", PPI: 72},
		{ID: "ig_st", Name: "Story / Reel / TikTok", Width: 1080, Height: 1920, Unit: "px", PPI: 72},
		{ID: "fb_pt", Name: "Facebook Post", Width: 1200, Height: 630, Unit: "px", PPI: 72},
		{ID: "fb_cv", Name: "Facebook Cover", Width: 820, Height: 312, Unit: "px", PPI: 72},
		{ID: "yt_th", Name: "YouTube Thumbnail", Width: 1280, Height: 720, Unit: "px", PPI: 72},
		{ID: "li_cv", Name: "LinkedIn Banner", Width: 1584, Height: 396, Unit: "px", PPI: 72},
		{ID: "tw_hd", Name: "X / Twitter Header", Width: 1500, Height: 500, Unit: "px", PPI: 72},
		{ID: "pin_lg", Name: "Pinterest Pin", Width: 1000, Height: 1500, Unit: "px", PPI: 72},
	},
	ServiceInvite: {
		{ID: "inv_57", Name: "Standard 5x7\"", Width: 5, Height: 7, Unit: "in", PPI: 300},
		{ID: "inv_46", Name: "Classic 4x6\"", Width: 4, Height: 6, Unit: "in", PPI: 300},
		{ID: "inv_sq", Name: "Square 5.25\"", Width: 5.25, Height: 5.25, Unit: "in", PPI: 300},
		{ID: "inv_a5", Name: "A5 Invitation", Width: 148, Height: 210, Unit: "mm", PPI: 300},
		{ID: "inv_dl", Name: "DL Card", Width: 99, Height: 210, Unit: "mm", PPI: 300},
		{ID: "evite", Name: "Digital Evite (HD)", Width: 1080, Height: 1920, Unit: "px", PPI: 72},
	},
	ServiceBanner: {
		{ID: "ban_web_l", Name: "Leaderboard", Width: 728, Height: 90, Unit: "px", PPI: 72},
		{ID: "ban_web_m", Name: "Medium Rect", Width: 300, Height: 250, Unit: "px", PPI: 72},
		{ID: "ban_web_s", Name: "Skyscraper", Width: 160, Height: 600, Unit: "px", PPI: 72},
		{ID: "ban_roll", Name: "Roll-up Standee", Width: 850, Height: 2000, Unit: "mm", PPI: 150},
		{ID: "ban_fb_ev", Name: "FB Event Cover", Width: 1920, Height: 1005, Unit: "px", PPI: 72},
		{ID: "ban_yt_ch", Name: "YouTube Channel", Width: 2560, Height: 1440, Unit: "px", PPI: 72},
	},
	ServiceFlyer: {
		{ID: "fly_a4", Name: "A4 Standard", Width: 210, Height: 297, Unit: "mm", PPI: 300},
		{ID: "fly_a5", Name: "A5 Half Page", Width: 148, Height: 210, Unit: "mm", PPI: 300},
		{ID: "fly_a6", Name: "A6 Postcard", Width: 105, Height: 148, Unit: "mm", PPI: 300},
		{ID: "fly_dl", Name: "DL Rack Card", Width: 99, Height: 210, Unit: "mm", PPI: 300},
		{ID: "fly_us", Name: "US Letter", Width: 8.5, Height: 11, Unit: "in", PPI: 300},
		{ID: "fly_dig", Name: "Digital Flyer", Width: 1080, Height: 1350, Unit: "px", PPI: 72},
	},
	ServiceTute: {
		{ID: "tut_a4", Name: "A4 Document", Width: 210, Height: 297, Unit: "mm", PPI: 300},
		{ID: "tut_us", Name: "US Letter", Width: 8.5, Height: 11, Unit: "in", PPI: 300},
		{ID: "tut_scr", Name: "Presentation (16:9)", Width: 1920, Height: 1080, Unit: "px", PPI: 72},
		{ID: "tut_tb", Name: "Tabloid (11x17)", Width: 11, Height: 17, Unit: "in", PPI: 300},
	},
	ServiceLetterhead: {
		{ID: "lh_a4", Name: "A4 Letterhead", Width: 210, Height: 297, Unit: "mm", PPI: 300},
		{ID: "lh_us", Name: "US Letter", Width: 8.5, Height: 11, Unit: "in", PPI: 300},
		{ID: "lh_dig", Name: "Email Header", Width: 600, Height: 200, Unit: "px", PPI: 72},
	},
	ServiceBook: {
		{ID: "bk_kind", Name: "Kindle / Ebook", Width: 1600, Height: 2560, Unit: "px", PPI: 72},
		{ID: "bk_aud", Name: "Audiobook", Width: 2400, Height: 2400, Unit: "px", PPI: 72},
		{ID: "bk_69", Name: "Trade Paperback (6x9)", Width: 6, Height: 9, Unit: "in", PPI: 300},
		{ID: "bk_58", Name: "Novel Standard (5x8)", Width: 5, Height: 8, Unit: "in", PPI: 300},
		{ID: "bk_sq", Name: "Square Book", Width: 8.5, Height: 8.5, Unit: "in", PPI: 300},
	},
	ServiceBusinessCard: {
		{ID: "bc_us", Name: "US Standard", Width: 3.5, Height: 2, Unit: "in", PPI: 300},
		{ID: "bc_eu", Name: "EU Standard", Width: 85, Height: 55, Unit: "mm", PPI: 300},
		{ID: "bc_sq", Name: "Square", Width: 2.5, Height: 2.5, Unit: "in", PPI: 300},
		{ID: "bc_vert", Name: "Vertical US", Width: 2, Height: 3.5, Unit: "in", PPI: 300},
	},
}

// PresetsFor returns the preset table for a service; nil when the
// service has none and manual setup is required.
func PresetsFor(serviceID string) []Preset {
	return presets[serviceID]
}

// PresetByID finds a preset within a service's table.
func PresetByID(serviceID, presetID string) (Preset, bool) {
	for _, p := range presets[serviceID] {
		if p.ID == presetID {
			return p, true
		}
	}
	return Preset{}, false
}
