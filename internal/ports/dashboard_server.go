package ports

// DashboardServer defines the interface for the outward-facing web surface
type DashboardServer interface {
	// Start starts serving the dashboard
	Start() error

	// Stop stops the server gracefully
	Stop() error
}
