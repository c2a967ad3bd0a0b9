package apidocs

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

const (
	contentTypeJSON = "application/json"
	contentTypeYAML = "application/x-yaml"
)

type errorBody struct {
	Error string `json:"error"`
}

// wantsYAML reports whether the client asked for YAML through ?format=yaml
// or the Accept header.
func wantsYAML(r *http.Request) bool {
	if f := r.URL.Query().Get("format"); f != "" {
		return strings.EqualFold(f, "yaml")
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/x-yaml") || strings.Contains(accept, "application/yaml")
}

// respond encodes v as JSON or YAML, following the request, and writes it
// with the given status code. If encoding fails, an HTTP 500 Internal
// Server Error is written instead.
func respond(w http.ResponseWriter, r *http.Request, code int, v any) {
	contentType := contentTypeJSON
	data, err := marshalJSON(v)
	if err == nil && wantsYAML(r) {
		contentType = contentTypeYAML
		data, err = jsonToYAML(data)
	}
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(code)
	_, _ = w.Write(data)
}

// respondError writes err as {"error": "..."} with the status it maps to.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	respond(w, r, statusOf(err), errorBody{Error: err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, ErrSchemaNotFound),
		errors.Is(err, ErrOperationNotFound),
		errors.Is(err, ErrBodyNotFound),
		errors.Is(err, ErrMediaTypeNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidQuery):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// jsonToYAML re-encodes JSON as block-style YAML, keeping key order.
func jsonToYAML(data []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	blockStyle(&node)
	return yaml.Marshal(&node)
}

func blockStyle(n *yaml.Node) {
	if n.Kind == yaml.MappingNode || n.Kind == yaml.SequenceNode {
		n.Style = 0
	}
	for _, c := range n.Content {
		blockStyle(c)
	}
}
