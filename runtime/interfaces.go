package runtime

// Initializer interface allows nodes to perform startup initialization.
// Nodes implementing this interface will have Initialize called at container startup.
type Initializer interface {
	// Initialize is called once when the container starts up.
	// Use this to build HTTP clients, warm caches, etc.
	// Config is already applied to the node struct.
	Initialize() error
}

// Shutdowner interface allows nodes to perform graceful shutdown.
type Shutdowner interface {
	// Shutdown is called during graceful shutdown.
	// Use this to close connections and release resources.
	Shutdown() error
}
