package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/sume/estra/internal/assistant"
	"github.com/sume/estra/internal/cache"
	"github.com/sume/estra/internal/curve"
	"github.com/sume/estra/internal/endpoint"
	"github.com/sume/estra/internal/machine"
	"github.com/sume/estra/internal/metrics"
	"github.com/sume/estra/internal/session"
)

type Handler struct {
	summaries *cache.SummaryCache
	generator assistant.TextGenerator
	fallback  assistant.TextGenerator
	sessions  *session.Manager
	metrics   *metrics.Metrics // nil if disabled
}

// NewHandler wires the JSON API. generator may equal fallback when no remote
// provider is configured.
func NewHandler(summaries *cache.SummaryCache, generator, fallback assistant.TextGenerator, sessions *session.Manager, m *metrics.Metrics) *Handler {
	return &Handler{
		summaries: summaries,
		generator: generator,
		fallback:  fallback,
		sessions:  sessions,
		metrics:   m,
	}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/machines", h.instrument(h.handleMachines))
	mux.HandleFunc("/api/curve", h.instrument(h.handleCurve))
	mux.HandleFunc("/api/summary", h.instrument(h.handleSummary))
	mux.HandleFunc("/api/control-metrics", h.instrument(h.handleControlMetrics))
	mux.HandleFunc("/api/diagnostics", h.instrument(h.handleDiagnostics))
	mux.HandleFunc("/api/energy", h.instrument(h.handleEnergy))
	mux.HandleFunc("/api/chat", h.instrument(h.handleChat))
	mux.HandleFunc("/api/chat/history", h.instrument(h.handleChatHistory))
	mux.HandleFunc("/api/chat/select", h.instrument(h.handleChatSelect))
	mux.HandleFunc("/api/chat/clear", h.instrument(h.handleChatClear))
	mux.HandleFunc("/api/questions", h.instrument(h.handleQuestions))
	mux.HandleFunc("/health", h.handleHealth)
}

// instrument wraps a handler with request metrics.
func (h *Handler) instrument(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.metrics == nil {
			next(w, r)
			return
		}
		start := time.Now()
		rec := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		h.metrics.RecordRequest(r.URL.Path, float64(time.Since(start).Milliseconds()), rec.status >= 400)
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	result := map[string]any{
		"status":   "ok",
		"machines": len(machine.IDs()),
		"sessions": h.sessions.Len(),
		"provider": h.generator.Name(),
	}
	if h.metrics != nil {
		result["metrics"] = h.metrics.GetSnapshot()
	}
	writeJSON(w, http.StatusOK, result)
}

type machineItem struct {
	ID     string       `json:"id"`
	Info   machine.Info `json:"info"`
	Estado string       `json:"estado"`
}

func (h *Handler) handleMachines(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	items := make([]machineItem, 0, 3)
	for _, id := range machine.IDs() {
		info, _ := machine.InfoFor(id)
		status, _ := machine.StatusFor(id)
		items = append(items, machineItem{ID: id, Info: info, Estado: status})
	}

	periods := make([]string, 0, 3)
	for _, p := range curve.Periods() {
		periods = append(periods, string(p))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"machines": items,
		"periods":  periods,
	})
}

// maxCurvePoints bounds client-chosen series sizes; the canonical counts
// top out at 30, so anything near the cap is already unplottable.
const maxCurvePoints = 1000

// parseView extracts and validates machine/period query parameters.
func parseView(r *http.Request) (string, curve.Period, error) {
	machineID := r.URL.Query().Get("machine")
	if machineID == "" {
		machineID = machine.H75
	}
	if _, err := machine.Lookup(machineID); err != nil {
		return "", "", err
	}

	periodStr := r.URL.Query().Get("period")
	if periodStr == "" {
		periodStr = string(curve.Week)
	}
	period, err := curve.ParsePeriod(periodStr)
	if err != nil {
		return "", "", err
	}
	return machineID, period, nil
}

func (h *Handler) handleCurve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	machineID, period, err := parseView(r)
	if err != nil {
		writeViewError(w, err)
		return
	}

	points := period.Points()
	if v := r.URL.Query().Get("points"); v != "" {
		points, err = strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "points must be an integer")
			return
		}
		if points > maxCurvePoints {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("points must be at most %d", maxCurvePoints))
			return
		}
	}

	s, err := curve.Generate(machineID, period, points)
	if err != nil {
		writeViewError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	machineID, period, err := parseView(r)
	if err != nil {
		writeViewError(w, err)
		return
	}

	s, err := curve.GenerateDefault(machineID, period)
	if err != nil {
		writeViewError(w, err)
		return
	}
	sum, err := curve.Summarize(s)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"machine": machineID,
		"period":  period,
		"unit":    period.Unit(),
		"summary": sum,
	})
}

// Tile is one fixed display metric on the control panel.
type Tile struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Delta string `json:"delta,omitempty"`
}

// controlTiles are presentation constants, not derived from the curves.
var controlTiles = []Tile{
	{Label: "CUSUM PCL", Value: "+35 M", Delta: "±2.0"},
	{Label: "CUSUM ABT", Value: "-25.0 M"},
	{Label: "CO2 Eq.", Value: "75.0 Ton"},
	{Label: "Tendencia", Value: "Desc.", Delta: "-4.0%"},
	{Label: "Resultado", Value: "Mejora"},
}

func (h *Handler) handleControlMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tiles": controlTiles})
}

type machineDiagnostics struct {
	Machine       string  `json:"machine"`
	MeanTheo      float64 `json:"mean_theoretical"`
	MeanActual    float64 `json:"mean_actual"`
	EfficiencyPct float64 `json:"efficiency_pct"`
}

func (h *Handler) handleDiagnostics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	periodStr := r.URL.Query().Get("period")
	if periodStr == "" {
		periodStr = string(curve.Week)
	}
	period, err := curve.ParsePeriod(periodStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var fleet []machineDiagnostics
	var totalTheo, totalActual, effSum float64
	for _, id := range machine.IDs() {
		s, err := curve.GenerateDefault(id, period)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		sum, err := curve.Summarize(s)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		fleet = append(fleet, machineDiagnostics{
			Machine:       id,
			MeanTheo:      sum.MeanTheoretical,
			MeanActual:    sum.MeanActual,
			EfficiencyPct: sum.EfficiencyPct,
		})
		totalTheo += sum.MeanTheoretical
		totalActual += sum.MeanActual
		effSum += sum.EfficiencyPct
	}

	// Aggregate batch tiles; weights are fixed plant constants.
	tiles := []Tile{
		{Label: "Lote por Molde", Value: "1200 kg", Delta: fmt.Sprintf("%.0f vs teórico", totalActual-totalTheo)},
		{Label: "Lote por referencia", Value: "560 kg"},
		{Label: "Flujo por Molde", Value: "18 kg/h"},
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"period":             period,
		"fleet":              fleet,
		"total_theoretical":  totalTheo,
		"total_actual":       totalActual,
		"avg_efficiency_pct": effSum / float64(len(fleet)),
		"tiles":              tiles,
	})
}

func (h *Handler) handleEnergy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if r.URL.Query().Get("refresh") == "1" {
		h.summaries.Invalidate()
		log.Printf("[api] energy summary cache invalidated")
	}

	ctx, cancel := context.WithTimeout(r.Context(), 35*time.Second)
	defer cancel()

	data, hit, err := h.summaries.Get(ctx)
	if h.metrics != nil {
		if hit {
			h.metrics.RecordCacheHit()
		} else {
			h.metrics.RecordCacheMiss()
			h.metrics.RecordFetch(err == nil)
		}
	}
	if err != nil {
		log.Printf("[api] energy summary fetch failed: %v", err)
		writeError(w, endpointStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"fields": len(data),
		"data":   data,
	})
}

func endpointStatus(err error) int {
	switch {
	case errors.Is(err, endpoint.ErrUnauthorized), errors.Is(err, endpoint.ErrForbidden):
		return http.StatusBadGateway
	case errors.Is(err, endpoint.ErrNotFound):
		return http.StatusBadGateway
	case errors.Is(err, endpoint.ErrBadPayload), errors.Is(err, endpoint.ErrServer):
		return http.StatusBadGateway
	default:
		return http.StatusGatewayTimeout
	}
}

func writeViewError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, machine.ErrUnknownMachine):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, curve.ErrInvalidPointCount):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}

type apiError struct {
	Error apiErrorBody `json:"error"`
}

type apiErrorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiError{
		Error: apiErrorBody{
			Message: message,
			Code:    http.StatusText(status),
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
