package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/sume/estra/internal/curve"
	"github.com/sume/estra/internal/machine"
)

// CannedGenerator answers by keyword matching against statistics computed
// from the synthetic curves. It is the deterministic fallback used whenever
// no remote provider is configured, so the assistant always works.
type CannedGenerator struct{}

func NewCanned() *CannedGenerator { return &CannedGenerator{} }

func (*CannedGenerator) Name() string { return "canned" }

func (*CannedGenerator) Reply(_ context.Context, req Request) (string, error) {
	prompt := strings.ToLower(req.Prompt)
	period := req.Period
	if period == "" {
		period = curve.Week
	}

	switch {
	case strings.Contains(prompt, "consumo"):
		sum, err := summarizeFor(req.Machine, period)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(
			"La %s tiene un consumo teórico promedio de %.1f %s y real de %.1f %s (análisis %s).",
			req.Machine, sum.MeanTheoretical, period.Unit(), sum.MeanActual, period.Unit(),
			strings.ToLower(string(period)),
		), nil

	case strings.Contains(prompt, "eficiencia"):
		sum, err := summarizeFor(req.Machine, period)
		if err != nil {
			return "", err
		}
		verdict := "Se recomienda revisión."
		if sum.EfficiencyPct > 90 {
			verdict = "Excelente rendimiento."
		}
		return fmt.Sprintf("La eficiencia energética %s es del %.1f%%. %s",
			strings.ToLower(string(period)), sum.EfficiencyPct, verdict), nil

	case strings.Contains(prompt, "sistema") && strings.Contains(prompt, "datos"):
		if req.Data != nil {
			return "Tengo acceso a datos en tiempo real del sistema de energía. Los datos se actualizan automáticamente desde el endpoint.", nil
		}
		return "No hay conexión actual con el sistema de energía. Usa la operación de actualización de datos para conectar.", nil

	case strings.Contains(prompt, "estado"):
		status, err := machine.StatusFor(req.Machine)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Estado actual: %s", status), nil
	}

	return fmt.Sprintf(
		"Analizando %s por %s. Configura un proveedor de IA para respuestas más inteligentes. Puedes preguntar sobre: consumo, eficiencia, datos del sistema, estado.",
		req.Machine, strings.ToLower(string(period)),
	), nil
}

func summarizeFor(machineID string, period curve.Period) (curve.Summary, error) {
	s, err := curve.GenerateDefault(machineID, period)
	if err != nil {
		return curve.Summary{}, err
	}
	return curve.Summarize(s)
}
