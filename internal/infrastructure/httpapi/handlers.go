package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/doeshing/baseconv/internal/application/convert"
	"github.com/doeshing/baseconv/internal/domain"
)

const modeQuick = "quick"

type convertResponse struct {
	Input    string       `json:"input"`
	From     domain.Radix `json:"from"`
	To       domain.Radix `json:"to"`
	Value    uint64       `json:"value"`
	Rendered string       `json:"rendered"`
	Recorded bool         `json:"recorded"`
}

type convertRequest struct {
	Text string `json:"text"`
	From string `json:"from"`
	To   string `json:"to"`
	Mode string `json:"mode"`
	User string `json:"user"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// handleConvertQuery serves GET /api/convert?text=&from=&to=[&mode=quick].
// GET conversions are never recorded.
func (s *Server) handleConvertQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.convert(w, r, convertRequest{
		Text: q.Get("text"),
		From: q.Get("from"),
		To:   q.Get("to"),
		Mode: q.Get("mode"),
	}, false)
}

// handleConvertBody serves POST /api/convert and records history for the
// named user.
func (s *Server) handleConvertBody(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	s.convert(w, r, req, req.User != "")
}

func (s *Server) convert(w http.ResponseWriter, r *http.Request, req convertRequest, record bool) {
	from, err := domain.ParseRadix(req.From)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "from: "+err.Error())
		return
	}
	to, err := domain.ParseRadix(req.To)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "to: "+err.Error())
		return
	}

	creq := convert.Request{Username: req.User, Text: req.Text, From: from, To: to}
	var resp convert.Response
	switch {
	case req.Mode == modeQuick:
		resp, err = s.Convert.Quick(creq)
	case record:
		resp, err = s.Convert.Convert(r.Context(), creq)
	default:
		resp, err = s.Convert.Preview(creq)
	}
	if err != nil {
		writeConversionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, convertResponse{
		Input:    req.Text,
		From:     from,
		To:       to,
		Value:    resp.Result.Value,
		Rendered: resp.Result.Rendered,
		Recorded: record && resp.Recorded,
	})
}

// handleValidate serves GET /api/validate?text=&radix=[&mode=quick].
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	radix, err := domain.ParseRadix(q.Get("radix"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "radix: "+err.Error())
		return
	}
	set := domain.RadixSetFixed
	if q.Get("mode") == modeQuick {
		set = domain.RadixSetWide
	}
	writeJSON(w, http.StatusOK, map[string]bool{"valid": s.Convert.Validate(q.Get("text"), radix, set)})
}

// handleHistory serves GET /api/history/{user}[?limit=N].
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	user := mux.Vars(r)["user"]
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid_request", "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	records, err := s.Convert.History(r.Context(), user, limit)
	if err != nil {
		s.logError("history load failed", err)
		writeError(w, http.StatusInternalServerError, "internal", "could not load history")
		return
	}
	if records == nil {
		records = []domain.ConversionRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// handleClearHistory serves DELETE /api/history/{user}.
func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	user := mux.Vars(r)["user"]
	if err := s.Convert.ClearHistory(r.Context(), user); err != nil {
		s.logError("history clear failed", err)
		writeError(w, http.StatusInternalServerError, "internal", "could not clear history")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) logError(msg string, err error) {
	if s.Logger != nil {
		s.Logger.Error(msg, err, nil)
	}
}

func writeConversionError(w http.ResponseWriter, err error) {
	var convErr *domain.ConversionError
	if errors.As(err, &convErr) {
		writeError(w, http.StatusBadRequest, string(convErr.Kind), convErr.Message())
		return
	}
	writeError(w, http.StatusInternalServerError, "internal", err.Error())
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, errorResponse{Error: kind, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
