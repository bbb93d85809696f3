// Package server provides the HTTP server: a Gin engine mounted on an
// http.ServeMux with h2c support, wrapped in the ambient middleware
// stack and managed through the component lifecycle.
//
// Route registration happens on the Gin engine between construction and
// Start. The api package registers the service routes; system endpoints
// (/health, /info, /metrics) come from server/endpoint and are mounted
// with RegisterSystemEndpoints.
package server
