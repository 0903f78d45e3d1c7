package ports

// Destination identifies a backend target. The URL alone keys connection reuse.
type Destination struct {
	URL    string
	APIKey string
}

// Connector opens a Backend for a destination. Opening is lazy and must not
// verify reachability.
type Connector interface {
	Connect(dest Destination) (Backend, error)
}

// ConnectorFunc adapts a function to Connector.
type ConnectorFunc func(dest Destination) (Backend, error)

// Connect calls f(dest).
func (f ConnectorFunc) Connect(dest Destination) (Backend, error) {
	return f(dest)
}
