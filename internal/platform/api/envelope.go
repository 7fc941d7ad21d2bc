package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

// Envelope is the wrapper every internal service-to-service response uses.
type Envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

const (
	StatusSuccess = "SUCCESS"
	StatusError   = "ERROR"
)

func (e *Envelope) IsSuccess() bool {
	return e.Status == StatusSuccess
}

// DecodeData unmarshals the data payload into out. out may be nil for
// responses whose payload the caller does not need.
func (e *Envelope) DecodeData(out interface{}) error {
	if out == nil || len(e.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(e.Data, out); err != nil {
		return fmt.Errorf("decode envelope data: %w", err)
	}
	return nil
}

// WriteSuccess writes a SUCCESS envelope with the given payload.
func WriteSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
		raw = b
	}
	writeEnvelope(w, status, Envelope{Status: StatusSuccess, Message: message, Data: raw})
}

// WriteError writes an ERROR envelope carrying only a message.
func WriteError(w http.ResponseWriter, status int, message string) {
	writeEnvelope(w, status, Envelope{Status: StatusError, Message: message})
}

func writeEnvelope(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.Printf("failed to encode envelope: %v", err)
	}
}
