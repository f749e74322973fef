package machine

import "math"

// profiles is the static profile table. Exactly three cost centers exist;
// the table is never mutated after startup.
var profiles = map[string]Profile{
	H75: {
		ID:               H75,
		Base:             180,
		AmpTheoretical:   35,
		AmpActual:        25,
		PhaseTheoretical: 0,
		PhaseActual:      math.Pi,
	},
	Extrusora: {
		ID:               Extrusora,
		Base:             220,
		AmpTheoretical:   50,
		AmpActual:        40,
		PhaseTheoretical: math.Pi / 4,
		PhaseActual:      -math.Pi / 4,
	},
	Inyectora: {
		ID:               Inyectora,
		Base:             160,
		AmpTheoretical:   30,
		AmpActual:        20,
		PhaseTheoretical: math.Pi / 2,
		PhaseActual:      -math.Pi / 2,
	},
}

var infos = map[string]Info{
	H75: {
		Tipo:     "Hidráulica",
		Detalle:  "Fuerza de cierre 120 Ton",
		Potencia: "185 kW",
	},
	Extrusora: {
		Tipo:     "Extrusión Doble Tornillo",
		Detalle:  "Diámetro 27 mm",
		Potencia: "225 kW",
		Material: "PVC, PP, Compounds",
		Estado:   "Operativa",
	},
	Inyectora: {
		Tipo:     "Inyección Eléctrica",
		Detalle:  "Capacidad 310 gr",
		Potencia: "160 kW",
		Material: "PET, PA, PC",
		Estado:   "Mantenimiento",
	},
}

var statuses = map[string]string{
	H75:       "Operativa - Funcionamiento normal",
	Extrusora: "Operativa - Funcionamiento normal",
	Inyectora: "En mantenimiento preventivo",
}

// order keeps listings stable and matches the dashboard selector.
var order = []string{H75, Extrusora, Inyectora}

// Lookup returns the profile for the given cost-center identifier.
func Lookup(id string) (Profile, error) {
	p, ok := profiles[id]
	if !ok {
		return Profile{}, ErrUnknownMachine
	}
	return p, nil
}

// InfoFor returns the static spec sheet for the given cost center.
func InfoFor(id string) (Info, error) {
	info, ok := infos[id]
	if !ok {
		return Info{}, ErrUnknownMachine
	}
	return info, nil
}

// StatusFor returns the operating status line for the given cost center.
func StatusFor(id string) (string, error) {
	s, ok := statuses[id]
	if !ok {
		return "", ErrUnknownMachine
	}
	return s, nil
}

// IDs returns all known cost-center identifiers in display order.
func IDs() []string {
	out := make([]string, len(order))
	copy(out, order)
	return out
}
