package upload

import (
	"context"
	"strings"
)

// ZeroXZeroAdapter uploads to 0x0.st or a self-hosted instance. The response body
// is the link itself.
type ZeroXZeroAdapter struct {
	httpAdapter
	endpoint string
}

// NewZeroXZeroAdapter creates a new ZeroXZeroAdapter
func NewZeroXZeroAdapter(opts Options) *ZeroXZeroAdapter {
	return &ZeroXZeroAdapter{
		httpAdapter: newHTTPAdapter(ZeroXZero, opts),
		endpoint:    "https://0x0.st",
	}
}

// Configure accepts an endpoint override
func (z *ZeroXZeroAdapter) Configure(config map[string]any) error {
	return applyStrings(z.Name(), config, map[string]*string{"endpoint": &z.endpoint})
}

// Upload uploads the file and returns the trimmed response body
func (z *ZeroXZeroAdapter) Upload(ctx context.Context, req Request) (*Result, error) {
	resp, err := z.postFile(ctx, z.endpoint, "file", req.FilePath, nil, nil)
	if err != nil {
		return nil, err
	}
	if err := z.requireOK(resp, "upload"); err != nil {
		return nil, err
	}

	link := strings.TrimSpace(string(resp.body))
	if link == "" {
		return nil, z.fail(KindProtocolMismatch, "Upload failed: empty response", nil)
	}

	return &Result{Service: ZeroXZero, URL: link}, nil
}
