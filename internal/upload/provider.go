package upload

import (
	"context"
	"log/slog"
	"net/http"
)

// Request describes one file to upload
type Request struct {
	FilePath   string // Absolute path to an existing regular file
	Credential string // API key or access credential, for destinations that require one
}

// Result is the success outcome of an upload
type Result struct {
	Service ServiceID
	URL     string
}

// Adapter defines the interface for upload destinations
type Adapter interface {
	// Upload transmits the file and returns its share link, or an *Error describing the failure
	Upload(ctx context.Context, req Request) (*Result, error)

	// Configure applies optional overrides such as endpoints
	Configure(config map[string]any) error

	// Name returns the destination key
	Name() string
}

// Options carries the collaborators every adapter is built with
type Options struct {
	HTTPClient *http.Client
	Logger     *slog.Logger
	UserAgent  string
}

func (o Options) withDefaults() Options {
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{}
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	if o.UserAgent == "" {
		o.UserAgent = "uploadgen"
	}
	return o
}
