// Package machine defines the static energy cost-center registry: curve
// parameters, spec sheets and operating status for the three modeled
// production machines.
package machine

// Profile holds the synthetic-curve parameters for one energy cost center.
type Profile struct {
	ID               string
	Base             float64 // nominal power baseline (kW)
	AmpTheoretical   float64 // oscillation magnitude of the theoretical curve
	AmpActual        float64 // oscillation magnitude of the actual curve
	PhaseTheoretical float64 // radians
	PhaseActual      float64 // radians
}

// Info is the static spec sheet shown on the dashboard sidebar.
type Info struct {
	Tipo     string `json:"tipo"`
	Detalle  string `json:"detalle,omitempty"`
	Potencia string `json:"potencia"`
	Material string `json:"material,omitempty"`
	Estado   string `json:"estado,omitempty"`
}

// Known cost-center identifiers.
const (
	H75       = "H75"
	Extrusora = "Extrusora LEISTRITZ ZSE-27"
	Inyectora = "Inyectora ENGEL e-motion 310"
)
