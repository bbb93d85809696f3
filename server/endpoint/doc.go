// Package endpoint provides the system endpoints every deployment gets:
// /health (component health aggregation), /info (version and uptime) and
// /metrics (runtime snapshot).
package endpoint
