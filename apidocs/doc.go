// Package apidocs serves schema documentation for an OpenAPI document over
// HTTP: the document itself, an interactive docs page, display trees for
// component schemas and example payloads for schemas and operations.
//
// Routes use the pattern syntax of net/http.ServeMux:
//
//	doc, err := openapi.ParseDocument(data)
//	if err != nil {
//		return err
//	}
//
//	mux := http.NewServeMux()
//	apidocs.Handle(mux, "/docs", doc, &apidocs.HandleConfig{
//		Registerer: prometheus.DefaultRegisterer,
//	})
//
// Every route sets an X-Request-ID header, logs through the clog logger of
// the request context and reports Prometheus request metrics.
package apidocs
