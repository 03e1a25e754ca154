// Package http serves the lakepath operations over a JSON REST API.
//
// # Endpoints
//
//   - GET|POST /datalake/checkpathcase: returns the stored casing of a path
//   - GET|POST /datalake/getitems: lists, filters, orders and limits items
//   - GET /healthz: liveness
//   - GET /metrics: Prometheus metrics, when a *metrics.Metrics is configured
//
// The datalake endpoints are also served at /DataLake/CheckPathCase and
// /DataLake/GetItems.
//
// # Parameters
//
// Parameters are read from the query string, falling back to a JSON object in
// the request body. Filters are query-only and use the form
// filter[Property]=operator:value:
//
//	GET /datalake/getitems?container=lake&directory=raw/API&recursive=true&filter[Name]=like:*.json&orderBy=LastModified&orderByDesc=true&limit=10
//
// Connection secrets can be given directly (sasToken) or by name
// (sasTokenSecretName), in which case they are looked up in the configured
// SecretLookup. Secret values are replaced by "***" in the parameter echo.
//
// # Responses
//
// Every response carries an invocationId, also sent in the X-Invocation-Id
// header. Failures answer 400 with an error message; errors that carry no
// information useful to the caller are replaced by a generic message and
// logged.
//
// # Authentication
//
// Pass a KeyVerifier in HandlerConfig to require an API key in the
// x-functions-key header or the code query parameter:
//
//	keys := keybackend.NewMapSecretStore(map[string]string{"portal": "3f9c..."})
//	handler := http.NewHandler(&http.HandlerConfig{KeyVerifier: keys}, connector)
//	http.ListenAndServe(":8080", handler.Router())
package http
