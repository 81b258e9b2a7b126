package http

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

type responder struct {
	log logrus.FieldLogger
}

func (rs responder) json(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		rs.log.WithError(err).Error("failed to encode response")
	}
}

func (rs responder) error(w http.ResponseWriter, status int, code, message string) {
	rs.json(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// internal logs err and answers with a generic 500.
func (rs responder) internal(w http.ResponseWriter, r *http.Request, err error, message string) {
	requestLogger(rs.log, r).WithError(err).Error(message)
	rs.error(w, http.StatusInternalServerError, "internal_error", message)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
