package rest

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/willmarzolf/radio-calico/util"
	"github.com/willmarzolf/radio-calico/util/tracing"
)

// ServerResponse is what route handlers hand back to the Handler
// adapter. Data is written verbatim as the response body on success;
// error responses render as {"error": message}.
type ServerResponse struct {
	Message    string
	Status     string
	StatusCode int
	Data       interface{}
	Err        error
}

type errorBody struct {
	Error string `json:"error"`
}

func respondWithError(err error, message string, status string, tc *tracing.Context) *ServerResponse {
	if err != nil {
		log.Printf("[%s] %s: %v", tc.RequestID, message, err)
	} else {
		log.Printf("[%s] %s", tc.RequestID, message)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Err:        err,
	}
}

func writeJSONResponse(w http.ResponseWriter, body []byte, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(body); err != nil {
		log.Printf("unable to write response body: %v", err)
	}
}

func writeErrorResponse(w http.ResponseWriter, err error, status string, message string) {
	if err != nil {
		log.Printf("%s: %v", message, err)
	}

	body, marshalErr := json.Marshal(errorBody{Error: message})
	if marshalErr != nil {
		http.Error(w, message, util.StatusCode(status))
		return
	}
	writeJSONResponse(w, body, util.StatusCode(status))
}
