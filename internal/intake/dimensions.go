// Package intake implements the order wizard's derivation and validation
// rules: dimension/aspect-ratio computation, palette constraints, the
// service-conditional dynamic field sets and voice-clip staging. All of
// it is pure state manipulation; persistence happens elsewhere.
package intake

import (
	"fmt"
	"math"

	"designflow-backend/internal/catalog"
	"designflow-backend/internal/models"
)

func gcd(a, b int) int {
	if b == 0 {
		return a
	}
	return gcd(b, a%b)
}

// Recompute derives orientation and aspect ratio from the current
// width/height pair. Must be called after any direct width or height
// change; preset application and orientation toggles call it themselves.
func Recompute(d *models.Dimensions) {
	w, h := d.Width, d.Height
	switch {
	case w > h:
		d.Orientation = models.OrientationLandscape
	case h > w:
		d.Orientation = models.OrientationPortrait
	default:
		d.Orientation = models.OrientationSquare
	}

	// A meaningful ratio needs two positive sides.
	if w <= 0 || h <= 0 {
		d.AspectRatio = models.AspectRatioCustom
		return
	}

	common := gcd(int(math.Round(w)), int(math.Round(h)))
	if common > 0 {
		d.AspectRatio = fmt.Sprintf("%d:%d", int(math.Round(w))/common, int(math.Round(h))/common)
	} else {
		d.AspectRatio = models.AspectRatioCustom
	}
}

// SetWidth and SetHeight change one side and rederive the pair.
func SetWidth(d *models.Dimensions, w float64) {
	d.Width = w
	Recompute(d)
}

func SetHeight(d *models.Dimensions, h float64) {
	d.Height = h
	Recompute(d)
}

// ApplyPreset overwrites width, height, unit and ppi atomically from a
// catalog preset, then rederives orientation and aspect ratio.
func ApplyPreset(d *models.Dimensions, p catalog.Preset) {
	d.Width = p.Width
	d.Height = p.Height
	d.Unit = p.Unit
	d.PPI = p.PPI
	Recompute(d)
}

// ToggleOrientation swaps width and height. The swap executes even for
// square dimensions; the pair is symmetric under swap so the derived
// orientation stays square.
func ToggleOrientation(d *models.Dimensions) {
	d.Width, d.Height = d.Height, d.Width
	Recompute(d)
}

// ApplyServiceDefaults resets unit and ppi for a newly selected service:
// print-oriented services get mm/300, everything else px/72. Only called
// on service change so manual edits are not clobbered retroactively.
func ApplyServiceDefaults(d *models.Dimensions, serviceID string) {
	if catalog.IsPrintService(serviceID) {
		d.Unit = "mm"
		d.PPI = 300
	} else {
		d.Unit = "px"
		d.PPI = 72
	}
}

// DefaultDimensions is the wizard's starting spec before any edits.
func DefaultDimensions() models.Dimensions {
	d := models.Dimensions{Width: 1080, Height: 1080, Unit: "px", PPI: 72}
	Recompute(&d)
	return d
}
