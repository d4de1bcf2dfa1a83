// Package responseformat encodes HTTP responses as JSON or MessagePack.
// JSON is the default; clients request MessagePack with format=msgpack.
package responseformat

import (
	"encoding/json"
	"net/http"

	"github.com/vmihailenco/msgpack/v5"
)

// Formatter handles encoding and writing responses in JSON or MessagePack format
type Formatter struct{}

// NewFormatter creates a new response formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Write encodes data in the format selected by the request's format query
// parameter and writes it with the given status code. A CORS header is
// always set so browser-based visualization front ends can call the API
// directly.
func (f *Formatter) Write(w http.ResponseWriter, req *http.Request, status int, data any) error {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	if req.URL.Query().Get("format") == "msgpack" {
		w.Header().Set("Content-Type", "application/msgpack")
		w.WriteHeader(status)
		b, err := msgpack.Marshal(data)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteError writes a structured error body in the selected format
func (f *Formatter) WriteError(w http.ResponseWriter, req *http.Request, status int, message string) error {
	return f.Write(w, req, status, map[string]string{"error": message})
}
