// Package component defines the lifecycle contract for infrastructure
// components and a registry that starts them in order, stops them in
// reverse, and aggregates their health.
package component
