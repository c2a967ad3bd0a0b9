package apidocs

import (
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/chainguard-dev/clog"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vitalvas/schemadoc/example"
	"github.com/vitalvas/schemadoc/notation"
	"github.com/vitalvas/schemadoc/openapi"
)

// HandleConfig configures the endpoints registered by Handle.
type HandleConfig struct {
	// UI selects the interactive docs UI (default: DocsRapiDoc).
	UI DocsUI

	// Title overrides the HTML page title (default: document info.title).
	Title string

	// JSONFilename is the path for the JSON document endpoint
	// (default: "schema.json"). Set to "-" to disable.
	//
	// Relative paths are joined with the base path:
	//
	//	"schema.json"       -> <basePath>/schema.json
	//	"data/openapi.json" -> <basePath>/data/openapi.json
	//
	// Absolute paths (starting with "/") are used as-is.
	JSONFilename string

	// YAMLFilename is the path for the YAML document endpoint
	// (default: "schema.yaml"). Set to "-" to disable.
	// Follows the same absolute/relative rules as JSONFilename.
	YAMLFilename string

	// DisableDocs disables the interactive HTML docs UI endpoint.
	DisableDocs bool

	// RapiDocAttrs are extra attributes of the <rapi-doc> element, such as
	// {"theme": "dark", "schema-style": "table"}.
	//
	// See: https://rapidocweb.com/api.html
	RapiDocAttrs map[string]string

	// SkipExampleStrings blanks string literals in synthesized examples.
	SkipExampleStrings bool

	// Registerer receives the handler metrics. When nil, metrics are
	// collected but not registered.
	Registerer prometheus.Registerer

	// MetricsNamespace prefixes metric names (default: "schemadoc").
	MetricsNamespace string
}

func (cfg HandleConfig) jsonFilename() string {
	if cfg.JSONFilename == "" {
		return "schema.json"
	}
	return cfg.JSONFilename
}

func (cfg HandleConfig) yamlFilename() string {
	if cfg.YAMLFilename == "" {
		return "schema.yaml"
	}
	return cfg.YAMLFilename
}

func (cfg HandleConfig) metricsNamespace() string {
	if cfg.MetricsNamespace == "" {
		return "schemadoc"
	}
	return cfg.MetricsNamespace
}

// resolvePath returns the full route path for a filename.
// Absolute filenames (starting with "/") are returned as-is.
// Relative filenames are joined under basePath.
func resolvePath(basePath, filename string) string {
	if strings.HasPrefix(filename, "/") {
		return filename
	}
	return basePath + "/" + filename
}

type handler struct {
	doc     *openapi.Document
	cfg     *HandleConfig
	metrics *metrics

	// notations caches compiled trees by notationKey. The document is not
	// modified after Handle, so entries never go stale.
	notations sync.Map
}

type notationKey struct {
	name  string
	nulls bool
}

// Handle registers documentation endpoints for doc under basePath. The base
// path is normalized (trailing slash stripped). Depending on config, the
// following GET routes are registered:
//
//	<basePath>/                                      - interactive HTML docs (unless DisableDocs)
//	<JSONFilename path>                              - the document as JSON (unless "-")
//	<YAMLFilename path>                              - the document as YAML (unless "-")
//	<basePath>/schemas                               - component schema names
//	<basePath>/schemas/{name}/notation               - display tree (?nulls=true)
//	<basePath>/schemas/{name}/descriptor             - flat type descriptor (?nulls=true)
//	<basePath>/schemas/{name}/examples               - examples (?mediaType, ?output, ?readOnly, ?writeOnly)
//	<basePath>/operations/{operationId}/examples     - request body examples, or response examples with ?status
//
// API responses are JSON, or YAML with ?format=yaml or an Accept header
// naming application/x-yaml. The config parameter is optional; pass nil for
// defaults:
//
//	apidocs.Handle(mux, "/docs", doc, nil)
//
// doc must not be modified after Handle is called.
func Handle(mux *http.ServeMux, basePath string, doc *openapi.Document, cfg *HandleConfig) {
	if cfg == nil {
		cfg = &HandleConfig{}
	}
	basePath = strings.TrimRight(basePath, "/")

	h := &handler{
		doc:     doc,
		cfg:     cfg,
		metrics: newMetrics(cfg.Registerer, cfg.metricsNamespace()),
	}

	mux.Handle("GET "+basePath+"/schemas", h.instrument("schemas", h.listSchemas))
	mux.Handle("GET "+basePath+"/schemas/{name}/notation", h.instrument("notation", h.schemaNotation))
	mux.Handle("GET "+basePath+"/schemas/{name}/descriptor", h.instrument("descriptor", h.schemaDescriptor))
	mux.Handle("GET "+basePath+"/schemas/{name}/examples", h.instrument("schema_examples", h.schemaExamples))
	mux.Handle("GET "+basePath+"/operations/{operationId}/examples", h.instrument("operation_examples", h.operationExamples))

	var jsonPath, yamlPath string

	if file := cfg.jsonFilename(); file != "-" {
		jsonPath = resolvePath(basePath, file)
		mux.Handle("GET "+jsonPath, h.instrument("document", h.serveDocument(contentTypeJSON, marshalJSON)))
	}

	if file := cfg.yamlFilename(); file != "-" {
		yamlPath = resolvePath(basePath, file)
		toYAML := func(v any) ([]byte, error) {
			data, err := marshalJSON(v)
			if err != nil {
				return nil, err
			}
			return jsonToYAML(data)
		}
		mux.Handle("GET "+yamlPath, h.instrument("document", h.serveDocument(contentTypeYAML, toYAML)))
	}

	if !cfg.DisableDocs {
		specURL := jsonPath
		if specURL == "" {
			specURL = yamlPath
		}

		// Skip docs registration when no document endpoint is available.
		if specURL != "" {
			docs := h.instrument("docs", h.serveDocs(specURL))
			mux.Handle("GET "+basePath+"/{$}", docs)
			if basePath != "" {
				mux.Handle("GET "+basePath, docs)
			}
		}
	}
}

// serveDocument serves the document encoded once on first request.
func (h *handler) serveDocument(contentType string, encode func(any) ([]byte, error)) http.HandlerFunc {
	var (
		once     sync.Once
		data     []byte
		buildErr error
	)
	return func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() {
			defer func() {
				if rv := recover(); rv != nil {
					buildErr = fmt.Errorf("%v", rv)
				}
			}()
			data, buildErr = encode(h.doc)
		})
		if buildErr != nil {
			clog.FromContext(r.Context()).Errorf("encode document: %v", buildErr)
			http.Error(w, "failed to serialize OpenAPI document", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

func (h *handler) serveDocs(specURL string) http.HandlerFunc {
	var (
		once     sync.Once
		data     []byte
		buildErr error
	)
	return func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() {
			title := h.cfg.Title
			if title == "" && h.doc != nil {
				title = h.doc.Info.Title
			}
			data, buildErr = renderDocs(h.cfg.UI, docsPage{Title: title, SpecURL: specURL, Attrs: elementAttrs(h.cfg.RapiDocAttrs)})
		})
		if buildErr != nil {
			clog.FromContext(r.Context()).Errorf("render docs page: %v", buildErr)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

type schemaList struct {
	Schemas []string `json:"schemas"`
}

type exampleList struct {
	MediaType string           `json:"mediaType"`
	Examples  []example.Record `json:"examples"`
}

func (h *handler) schemas() map[string]*openapi.Schema {
	if h.doc == nil || h.doc.Components == nil {
		return nil
	}
	return h.doc.Components.Schemas
}

func (h *handler) schema(name string) (*openapi.Schema, error) {
	s, ok := h.schemas()[name]
	if !ok || s == nil {
		return nil, fmt.Errorf("%w: %q", ErrSchemaNotFound, name)
	}
	return s, nil
}

func (h *handler) listSchemas(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(h.schemas()))
	for name := range h.schemas() {
		names = append(names, name)
	}
	slices.Sort(names)
	respond(w, r, http.StatusOK, schemaList{Schemas: names})
}

func (h *handler) schemaNotation(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	s, err := h.schema(name)
	if err != nil {
		respondError(w, r, err)
		return
	}
	opts, err := notationOptions(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	key := notationKey{name: name, nulls: opts.IncludeNulls}
	if cached, ok := h.notations.Load(key); ok {
		h.metrics.notation.WithLabelValues("hit").Inc()
		respond(w, r, http.StatusOK, cached)
		return
	}
	h.metrics.notation.WithLabelValues("miss").Inc()

	node, err := compileSafe(s, opts)
	if err != nil {
		clog.FromContext(r.Context()).Errorf("compile %q: %v", name, err)
		respondError(w, r, err)
		return
	}
	actual, _ := h.notations.LoadOrStore(key, node)
	respond(w, r, http.StatusOK, actual)
}

// compileSafe turns a panic inside the compiler into an error.
func compileSafe(s *openapi.Schema, opts notation.Options) (node *notation.Node, err error) {
	defer func() {
		if rv := recover(); rv != nil {
			err = fmt.Errorf("apidocs: compile notation: %v", rv)
		}
	}()
	return notation.Compile(s, opts), nil
}

func (h *handler) schemaDescriptor(w http.ResponseWriter, r *http.Request) {
	s, err := h.schema(r.PathValue("name"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	opts, err := notationOptions(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, notation.Describe(s, opts))
}

func (h *handler) schemaExamples(w http.ResponseWriter, r *http.Request) {
	s, err := h.schema(r.PathValue("name"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	opts, err := h.exampleOptions(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	mediaType := r.URL.Query().Get("mediaType")
	if mediaType == "" {
		mediaType = contentTypeJSON
	}
	records := example.FromMediaType(mediaType, &openapi.MediaType{Schema: s}, opts)
	h.countExamples(records)
	respond(w, r, http.StatusOK, exampleList{MediaType: mediaType, Examples: records})
}

func (h *handler) operationExamples(w http.ResponseWriter, r *http.Request) {
	opts, err := h.exampleOptions(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	query := r.URL.Query()
	content, err := h.bodyContent(r.PathValue("operationId"), query.Get("status"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	mediaType := query.Get("mediaType")
	if mediaType == "" {
		mediaType = preferredMediaType(content)
	}
	mt, ok := content[mediaType]
	if !ok {
		respondError(w, r, fmt.Errorf("%w: %q", ErrMediaTypeNotFound, mediaType))
		return
	}

	records := example.FromMediaType(mediaType, mt, opts)
	h.countExamples(records)
	respond(w, r, http.StatusOK, exampleList{MediaType: mediaType, Examples: records})
}

// bodyContent finds the request body of an operation, or its response for
// status when status is set.
func (h *handler) bodyContent(operationID, status string) (map[string]*openapi.MediaType, error) {
	op := h.operation(operationID)
	if op == nil {
		return nil, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}

	if status == "" {
		if op.RequestBody == nil || len(op.RequestBody.Content) == 0 {
			return nil, fmt.Errorf("%w: %q has no request body", ErrBodyNotFound, operationID)
		}
		return op.RequestBody.Content, nil
	}

	resp, ok := op.Responses[status]
	if !ok || resp == nil || len(resp.Content) == 0 {
		return nil, fmt.Errorf("%w: %q has no %s response content", ErrBodyNotFound, operationID, status)
	}
	return resp.Content, nil
}

// operation finds an operation by ID, visiting paths in sorted order and
// methods in declaration order. The first match wins.
func (h *handler) operation(operationID string) *openapi.Operation {
	if h.doc == nil || operationID == "" {
		return nil
	}
	for _, path := range openapi.OrderedKeys(h.doc.Paths, nil) {
		item := h.doc.Paths[path]
		if item == nil {
			continue
		}
		for _, method := range openapi.Methods {
			if op := item.Operation(method); op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

// preferredMediaType picks application/json when declared, otherwise the
// first media type in sorted order.
func preferredMediaType(content map[string]*openapi.MediaType) string {
	if _, ok := content[contentTypeJSON]; ok {
		return contentTypeJSON
	}
	keys := openapi.OrderedKeys(content, nil)
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}

func (h *handler) countExamples(records []example.Record) {
	for _, rec := range records {
		h.metrics.examples.WithLabelValues(string(rec.Format)).Inc()
	}
}

func notationOptions(r *http.Request) (notation.Options, error) {
	nulls, err := boolQuery(r, "nulls", false)
	if err != nil {
		return notation.Options{}, err
	}
	return notation.Options{IncludeNulls: nulls}, nil
}

func (h *handler) exampleOptions(r *http.Request) (example.Options, error) {
	readOnly, err := boolQuery(r, "readOnly", true)
	if err != nil {
		return example.Options{}, err
	}
	writeOnly, err := boolQuery(r, "writeOnly", true)
	if err != nil {
		return example.Options{}, err
	}

	output := r.URL.Query().Get("output")
	outputType := example.ParseOutputType(output)
	if output != "" && outputType == example.OutputUnspecified {
		return example.Options{}, fmt.Errorf("%w: output must be json or text, got %q", ErrInvalidQuery, output)
	}

	return example.Options{
		IncludeReadOnly:    readOnly,
		IncludeWriteOnly:   writeOnly,
		Output:             outputType,
		SkipExampleStrings: h.cfg.SkipExampleStrings,
	}, nil
}

func boolQuery(r *http.Request, name string, def bool) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s=%q", ErrInvalidQuery, name, raw)
	}
	return v, nil
}
