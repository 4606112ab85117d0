package alertz

import "context"

// Watcher observes a settings source and emits its raw contents on a channel.
// Implementations must emit the current contents immediately upon Watch()
// being called so the initial settings can be applied.
type Watcher interface {
	// Watch begins observing the source and returns a channel that emits
	// raw bytes when the source changes. The channel is closed when the
	// context is canceled or an unrecoverable error occurs.
	Watch(ctx context.Context) (<-chan []byte, error)
}
