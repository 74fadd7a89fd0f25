package upload

import (
	"fmt"
)

// Factory creates a new adapter instance
type Factory func(opts Options) Adapter

// Registry holds the adapter factory for every destination
var Registry = make(map[ServiceID]Factory)

// Register registers the adapter factory for a destination
func Register(id ServiceID, factory Factory) {
	Registry[id] = factory
}

// New creates a new adapter instance for id
func New(id ServiceID, opts Options) (Adapter, error) {
	factory, ok := Registry[id]
	if !ok {
		return nil, fmt.Errorf("unknown upload service: %d", int(id))
	}
	return factory(opts.withDefaults()), nil
}

// init registers all built-in adapters
func init() {
	Register(Pixeldrain, func(opts Options) Adapter { return NewPixeldrainAdapter(opts) })
	Register(GoFile, func(opts Options) Adapter { return NewGoFileAdapter(opts) })
	Register(Bashupload, func(opts Options) Adapter { return NewBashuploadAdapter(opts) })
	Register(Devuploads, func(opts Options) Adapter { return NewDevuploadsAdapter(opts) })
	Register(FileIO, func(opts Options) Adapter { return NewFileIOAdapter(opts) })
	Register(Uguu, func(opts Options) Adapter { return NewUguuAdapter(opts) })
	Register(ZeroXZero, func(opts Options) Adapter { return NewZeroXZeroAdapter(opts) })
	Register(S3, func(opts Options) Adapter { return NewS3Adapter(opts) })
}
