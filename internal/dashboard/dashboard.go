package dashboard

import (
	"log"
	"net/http"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/sume/estra/internal/config"
	"github.com/sume/estra/internal/curve"
	"github.com/sume/estra/internal/machine"
)

type Handler struct {
	cfg config.DashboardConfig
}

func NewHandler(cfg config.DashboardConfig) *Handler {
	return &Handler{cfg: cfg}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/dashboard", h.authWrap(h.servePage))
	mux.HandleFunc("/dashboard/chart", h.authWrap(h.serveChart))
}

// authWrap optionally protects dashboard endpoints with a password.
func (h *Handler) authWrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pw := h.cfg.Password
		if pw == "" {
			next(w, r)
			return
		}
		if r.URL.Query().Get("token") == pw || r.Header.Get("X-Dashboard-Token") == pw {
			next(w, r)
			return
		}
		if c, err := r.Cookie("dashboard_token"); err == nil && c.Value == pw {
			next(w, r)
			return
		}
		if r.URL.Path == "/dashboard" && r.Method == http.MethodPost {
			r.ParseForm()
			if r.FormValue("password") == pw {
				http.SetCookie(w, &http.Cookie{Name: "dashboard_token", Value: pw, Path: "/dashboard", MaxAge: 86400})
				http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
				return
			}
		}
		if r.URL.Path == "/dashboard" {
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte(loginHTML))
			return
		}
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}
}

func (h *Handler) servePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(dashboardHTML))
}

// serveChart renders the CUSUM line chart for the selected machine and
// period as a standalone echarts page, embedded by the dashboard in an
// iframe.
func (h *Handler) serveChart(w http.ResponseWriter, r *http.Request) {
	machineID := r.URL.Query().Get("machine")
	if machineID == "" {
		machineID = machine.H75
	}
	periodStr := r.URL.Query().Get("period")
	if periodStr == "" {
		periodStr = string(curve.Week)
	}
	period, err := curve.ParsePeriod(periodStr)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s, err := curve.GenerateDefault(machineID, period)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "100%",
			Height: "420px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "CUSUM - " + machineID,
			Subtitle: "Análisis por " + string(period),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			Top:  "30",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: period.Unit(),
		}),
	)

	labels := make([]string, len(s.T))
	theo := make([]opts.LineData, len(s.T))
	actual := make([]opts.LineData, len(s.T))
	for i := range s.T {
		labels[i] = string(period) + " " + strconv.Itoa(s.T[i])
		theo[i] = opts.LineData{Value: s.Theoretical[i]}
		actual[i] = opts.LineData{Value: s.Actual[i]}
	}

	line.SetXAxis(labels).
		AddSeries("Frente a ABT", theo).
		AddSeries("Frente a Línea Base", actual).
		SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{
			Smooth: opts.Bool(true),
		}))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := line.Render(w); err != nil {
		log.Printf("[dashboard] chart render failed: %v", err)
	}
}
