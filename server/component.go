package server

import (
	"context"

	"tareasapi/component"
)

const componentName = "http-server"

var _ component.Component = (*Component)(nil)

// Component wraps Server to implement component.Component, so the HTTP
// server starts and stops through the same registry as the database.
type Component struct {
	server *Server
}

// NewComponent returns a lifecycle component backed by the given Server.
func NewComponent(s *Server) *Component {
	return &Component{server: s}
}

// Name returns the component name used for registration.
func (c *Component) Name() string { return componentName }

// Start starts the underlying HTTP server.
func (c *Component) Start(ctx context.Context) error {
	return c.server.Start(ctx)
}

// Stop gracefully shuts down the underlying HTTP server.
func (c *Component) Stop(ctx context.Context) error {
	return c.server.Stop(ctx)
}

// Health reports whether the server is listening.
func (c *Component) Health(ctx context.Context) component.Health {
	if c.server.started() {
		return component.Health{
			Name:    componentName,
			Status:  component.StatusHealthy,
			Message: "listening on " + c.server.Addr(),
		}
	}
	return component.Health{
		Name:    componentName,
		Status:  component.StatusUnhealthy,
		Message: "not listening",
	}
}
