package alertz

import "context"

// ChannelWatcher is a Watcher fed by another component instead of a file,
// such as a tray menu that lets the user flip the alert toggles.
type ChannelWatcher struct {
	open func(ctx context.Context) <-chan []byte
}

// NewChannelWatcher creates a ChannelWatcher that relays raw settings
// documents from ch until ch is closed or the watch context ends.
func NewChannelWatcher(ch <-chan []byte) *ChannelWatcher {
	return &ChannelWatcher{
		open: func(ctx context.Context) <-chan []byte {
			return relay(ctx, ch, func(doc []byte) ([]byte, bool) { return doc, true })
		},
	}
}

// NewSyncChannelWatcher creates a ChannelWatcher that hands ch to the
// SettingsWatcher unchanged. Use with SettingsWatcher.SyncMode() for
// deterministic tests.
func NewSyncChannelWatcher(ch <-chan []byte) *ChannelWatcher {
	return &ChannelWatcher{
		open: func(context.Context) <-chan []byte { return ch },
	}
}

// NewSettingsChannelWatcher creates a ChannelWatcher for typed Settings
// values. Each value is encoded with codec (JSONCodec when nil) and then
// decoded and validated by the SettingsWatcher like any other document, so a
// value missing a toggle is rejected the same way a bad file is.
//
// Example:
//
//	menu := make(chan alertz.Settings)
//	settings := alertz.NewSettingsWatcher(alertz.NewSettingsChannelWatcher(menu, nil), manager, loop)
//
//	on := true
//	menu <- alertz.Settings{FailedTransferAlerts: &on, ConflictedFileAlerts: &on}
func NewSettingsChannelWatcher(ch <-chan Settings, codec Codec) *ChannelWatcher {
	if codec == nil {
		codec = JSONCodec{}
	}
	return &ChannelWatcher{
		open: func(ctx context.Context) <-chan []byte {
			return relay(ctx, ch, func(s Settings) ([]byte, bool) {
				doc, err := codec.Marshal(s)
				return doc, err == nil
			})
		},
	}
}

// Watch returns the channel of settings documents.
func (w *ChannelWatcher) Watch(ctx context.Context) (<-chan []byte, error) {
	return w.open(ctx), nil
}

// relay encodes values from in onto a new channel until in is closed or ctx
// ends. Values that fail to encode are dropped.
func relay[T any](ctx context.Context, in <-chan T, encode func(T) ([]byte, bool)) <-chan []byte {
	out := make(chan []byte)
	go func() {
		defer close(out)
		for {
			var v T
			var ok bool
			select {
			case <-ctx.Done():
				return
			case v, ok = <-in:
				if !ok {
					return
				}
			}

			doc, ok := encode(v)
			if !ok {
				continue
			}

			select {
			case out <- doc:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
