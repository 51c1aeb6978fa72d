package internal

import (
	"encoding/json"
	"net/http"

	"github.com/Kabroda-Trading/KTBB-APP/Internal/handlers/input"
)

type envelope struct {
	Success bool         `json:"success"`
	Data    interface{}  `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`
	Fields  input.Errors `json:"fields,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	writeEnvelope(w, status, envelope{Success: true, Data: data})
}

func WriteError(w http.ResponseWriter, status int, message string) {
	writeEnvelope(w, status, envelope{Success: false, Error: message})
}

// WriteInputError reports every invalid field of a request body.
func WriteInputError(w http.ResponseWriter, errs input.Errors) {
	writeEnvelope(w, http.StatusBadRequest, envelope{Success: false, Error: errs.Error(), Fields: errs})
}

func writeEnvelope(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
