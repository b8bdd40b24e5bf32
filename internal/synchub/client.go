package synchub

// Frame is one websocket message: a full collection snapshot tagged with
// the collection it belongs to.
type Frame struct {
	Collection string `json:"collection"`
	Data       any    `json:"data"`
}

// Client is the interface for any type of live connection receiving
// snapshot frames. It abstracts the underlying transport so the hub can
// manage different client types uniformly.
type Client interface {
	// GetConnID returns the unique identifier for this connection. A user
	// with several dashboards open holds several connections.
	GetConnID() string
	// GetUserID returns the authenticated user behind the connection.
	GetUserID() string
	// Collections returns the collection names this client observes.
	Collections() []string

	// GetSendChannel returns the channel the hub pushes frames into. It is
	// a send-only channel from the hub's perspective.
	GetSendChannel() chan<- Frame
	// Done is closed when the client shuts down. Frames for a done client
	// are dropped instead of sent.
	Done() <-chan struct{}

	// Run starts the client's read and write pumps.
	Run()
	// Close shuts down the client's connection and associated channels.
	Close()
}
