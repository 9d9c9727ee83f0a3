package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/san-kum/physkit/internal/calc"
	"github.com/san-kum/physkit/internal/phys"
	"github.com/san-kum/physkit/internal/report"
)

// CalcRequest carries parameter values as JSON numbers, or as strings for
// choice parameters given by name.
type CalcRequest struct {
	Params map[string]any `json:"params"`
}

type ReportRequest struct {
	CalcRequest
	Meta report.Meta `json:"meta"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, r.Method+" not allowed on "+r.URL.Path)
}

// statusFor maps calculator errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, calc.ErrUnknownCalculator):
		return http.StatusNotFound
	case errors.Is(err, phys.ErrNotImplemented):
		return http.StatusNotImplemented
	case errors.Is(err, phys.ErrInvalidInput),
		errors.Is(err, phys.ErrDivisionByZero),
		errors.Is(err, phys.ErrOutOfRange):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("calculation failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	writeError(w, status, err.Error())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	names := s.registry.List()
	out := make([]*calc.Calculator, 0, len(names))
	for _, name := range names {
		c, err := s.registry.Get(name)
		if err != nil {
			continue
		}
		out = append(out, c)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDescribe(w http.ResponseWriter, r *http.Request) {
	c, err := s.registry.Get(mux.Vars(r)["name"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) params(name string, raw map[string]any) (map[string]float64, error) {
	out := make(map[string]float64, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case float64:
			out[k] = val
		case string:
			f, err := s.registry.ParseValue(name, k, val)
			if err != nil {
				return nil, err
			}
			out[k] = f
		default:
			return nil, phys.Errorf(name, phys.ErrInvalidInput, "parameter %q must be a number or a name", k)
		}
	}
	return out, nil
}

func (s *Server) run(w http.ResponseWriter, r *http.Request, req *CalcRequest) (*calc.Result, bool) {
	name := mux.Vars(r)["name"]
	if _, err := s.registry.Get(name); err != nil {
		s.fail(w, r, err)
		return nil, false
	}

	params, err := s.params(name, req.Params)
	if err != nil {
		s.fail(w, r, err)
		return nil, false
	}
	res, err := s.registry.Run(name, params)
	if err != nil {
		s.fail(w, r, err)
		return nil, false
	}
	return res, true
}

func (s *Server) handleCalc(w http.ResponseWriter, r *http.Request) {
	var req CalcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	res, ok := s.run(w, r, &req)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	res, ok := s.run(w, r, &req.CalcRequest)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Calculator+".pdf"))
	if err := report.Render(w, res, req.Meta); err != nil {
		s.logger.Error("report generation failed", zap.Error(err))
		http.Error(w, "report generation error", http.StatusInternalServerError)
	}
}
