package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ademuri/song-dashboard/internal/dashboard"
)

// Event is a selector change posted by the page. When Value is set it replaces the
// changed control's entry in Controls.
type Event struct {
	Control  dashboard.ControlID `json:"control"`
	Value    string              `json:"value,omitempty"`
	Controls dashboard.Controls  `json:"controls"`
}

type summaryResponse struct {
	dashboard.Summary
	Lines []string `json:"lines"`
}

type indexPage struct {
	Controls dashboard.Controls
	Options  []dashboard.ControlOptions
	Panels   []dashboard.Panel
	Summary  []string
}

func controlsFromQuery(r *http.Request) dashboard.Controls {
	q := r.URL.Query()
	return dashboard.Controls{
		FilterField: q.Get("filter_field"),
		GenreChoice: q.Get("genre_choice"),
	}.WithDefaults()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	c := controlsFromQuery(r)

	page := indexPage{
		Controls: c,
		Options:  s.dash.Options(),
		Panels:   s.dash.Render(c),
		Summary:  s.dash.Summary().Lines(),
	}

	var out bytes.Buffer
	if err := s.page.ExecuteTemplate(&out, "index.html", page); err != nil {
		s.logger.Error("Rendering page", zap.Error(err))
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(out.Bytes())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok\n"))
}

func (s *Server) handleControls(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.dash.Options())
}

func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.dash.Render(controlsFromQuery(r)))
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	id := dashboard.ChartID(chi.URLParam(r, "chartID"))
	panel, err := s.dash.Chart(id, controlsFromQuery(r))
	var unknown *dashboard.UnknownChartError
	if errors.As(err, &unknown) {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, panel)
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	var event Event
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&event); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	controls := event.Controls
	if event.Value != "" {
		var err error
		controls, err = controls.Set(event.Control, event.Value)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	panels, err := s.dash.Dispatch(event.Control, controls)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.logger.Debug("Dispatched",
		zap.String("control", string(event.Control)),
		zap.Int("panels", len(panels)))
	s.writeJSON(w, http.StatusOK, panels)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary := s.dash.Summary()
	s.writeJSON(w, http.StatusOK, summaryResponse{Summary: summary, Lines: summary.Lines()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	encoded, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("Encoding response", zap.Error(err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"cannot encode response"}` + "\n"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(encoded)
	w.Write([]byte("\n"))
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
