package upload

import (
	"context"
)

// UguuAdapter uploads to uguu.se or a compatible Pomf instance
type UguuAdapter struct {
	httpAdapter
	endpoint string
}

// NewUguuAdapter creates a new UguuAdapter
func NewUguuAdapter(opts Options) *UguuAdapter {
	return &UguuAdapter{
		httpAdapter: newHTTPAdapter(Uguu, opts),
		endpoint:    "https://uguu.se/upload",
	}
}

// Configure accepts an endpoint override
func (u *UguuAdapter) Configure(config map[string]any) error {
	return applyStrings(u.Name(), config, map[string]*string{"endpoint": &u.endpoint})
}

// Upload uploads the file under files[] and reads the first file URL
func (u *UguuAdapter) Upload(ctx context.Context, req Request) (*Result, error) {
	resp, err := u.postFile(ctx, u.endpoint, "files[]", req.FilePath, nil, nil)
	if err != nil {
		return nil, err
	}
	if err := u.requireOK(resp, "upload"); err != nil {
		return nil, err
	}

	doc, err := u.decodeJSON(resp.body)
	if err != nil {
		return nil, err
	}
	if !doc.Get("success").Bool() {
		return nil, u.fail(KindProtocolMismatch, "Failed to upload file: "+string(resp.body), nil)
	}
	link := doc.Get("files.0.url").String()
	if link == "" {
		return nil, u.fail(KindProtocolMismatch, "Failed to upload file: "+string(resp.body), nil)
	}

	return &Result{Service: Uguu, URL: link}, nil
}
