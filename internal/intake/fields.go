package intake

import (
	"regexp"
	"strings"

	"designflow-backend/internal/catalog"
	"designflow-backend/internal/models"
)

// FormVariant selects which dynamic field set step 2 presents. Services
// are partitioned into exactly two variants; the mapping is exhaustive
// over the catalog.
type FormVariant int

const (
	// VariantEventPromo applies to social, banner and flyer services:
	// event-driven briefs with brand and social-link fields.
	VariantEventPromo FormVariant = iota
	// VariantGeneric applies to every other service: industry plus a
	// free-text brief.
	VariantGeneric
)

// VariantFor returns the dynamic-form variant for a service id.
func VariantFor(serviceID string) FormVariant {
	switch serviceID {
	case catalog.ServiceSocial, catalog.ServiceBanner, catalog.ServiceFlyer:
		return VariantEventPromo
	default:
		return VariantGeneric
	}
}

// SocialPlatforms is the enumerated platform set for social links.
var SocialPlatforms = []string{"WhatsApp", "Facebook", "Instagram", "TikTok", "LinkedIn"}

func validPlatform(p string) bool {
	for _, v := range SocialPlatforms {
		if p == v {
			return true
		}
	}
	return false
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// MinMobileLength is the minimum accepted length of country code plus
// local digits.
const MinMobileLength = 5

// ValidateStep runs the wizard's per-step validation and returns a map of
// field name to inline message. An empty map means the step may advance.
// Steps 3 and 4 have no hard validation beyond the palette cap, which is
// enforced separately by AddColor/ValidatePalette.
func ValidateStep(step int, req *models.SubmitOrderRequest) map[string]string {
	errs := map[string]string{}

	switch step {
	case 1:
		if strings.TrimSpace(req.Name) == "" {
			errs["name"] = "Full Name is required"
		}
		if strings.TrimSpace(req.Email) == "" {
			errs["email"] = "Email Address is required"
		} else if !emailRe.MatchString(req.Email) {
			errs["email"] = "Enter a valid email address"
		}
		if strings.TrimSpace(req.Mobile) == "" || len(req.Mobile) < MinMobileLength {
			errs["mobile"] = "Phone number is required"
		}

	case 2:
		switch VariantFor(req.ServiceID) {
		case VariantEventPromo:
			if strings.TrimSpace(req.EventTitle) == "" {
				errs["event_title"] = "Event name is required"
			}
			if strings.TrimSpace(req.Requirements) == "" {
				errs["requirements"] = "Event details are required"
			}
			if strings.TrimSpace(req.BrandName) == "" {
				errs["brand_name"] = "Brand or company name is required"
			}
			for _, l := range req.SocialLinks {
				if l.Platform != "" && !validPlatform(l.Platform) {
					errs["social_links"] = "Unknown social platform"
					break
				}
			}
		case VariantGeneric:
			if strings.TrimSpace(req.Requirements) == "" {
				errs["requirements"] = "Please describe your vision"
			}
		}

	case 3:
		if err := ValidatePalette(req.ColorPalette); err != nil {
			errs["color_palette"] = err.Error()
		}
	}

	return errs
}

// ValidateSubmission runs every step's validation in order, returning the
// first step that fails along with its field errors. Used at final
// submission since the server cannot trust that steps were walked.
func ValidateSubmission(req *models.SubmitOrderRequest) (int, map[string]string) {
	for step := 1; step <= 4; step++ {
		if errs := ValidateStep(step, req); len(errs) > 0 {
			return step, errs
		}
	}
	return 0, nil
}

// CustomFields assembles the flexible brief from the dynamic inputs,
// keeping only non-empty values. List-typed fields are included only when
// at least one entry has its discriminating sub-field set (handle, title
// or the number itself). Keys are the display labels the dashboard shows.
func CustomFields(req *models.SubmitOrderRequest) map[string]any {
	fields := map[string]any{}

	addIf := func(key, val string) {
		if strings.TrimSpace(val) != "" {
			fields[key] = val
		}
	}

	addIf("Event Title", req.EventTitle)
	addIf("Brand Name", req.BrandName)

	links := make([]models.SocialLink, 0, len(req.SocialLinks))
	for _, l := range req.SocialLinks {
		if strings.TrimSpace(l.Handle) != "" {
			links = append(links, l)
		}
	}
	if len(links) > 0 {
		fields["Social Media"] = links
	}

	addIf("Website", req.WebsiteURL)
	addIf("Target Audience", req.Audience)
	addIf("Venue", req.Venue)
	addIf("Event Date", req.EventDate)
	addIf("Event Time", req.EventTime)
	addIf("Recipient", req.Recipient)
	addIf("Subject", req.Subject)
	addIf("Unit Name", req.UnitName)
	addIf("Tutor Name", req.TutorName)
	addIf("Year", req.Year)
	addIf("Institutes", req.Institutes)
	addIf("Motto", req.Motto)
	addIf("Location", req.Location)

	phones := make([]string, 0, len(req.Telephones))
	for _, t := range req.Telephones {
		if strings.TrimSpace(t) != "" {
			phones = append(phones, t)
		}
	}
	if len(phones) > 0 {
		fields["Contact Numbers"] = phones
	}

	books := make([]models.BookRef, 0, len(req.Books))
	for _, b := range req.Books {
		if strings.TrimSpace(b.Title) != "" {
			books = append(books, b)
		}
	}
	if len(books) > 0 {
		fields["Books"] = books
	}

	addIf("Extra Details", req.ExtraDetails)

	return fields
}
