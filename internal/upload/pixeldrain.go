package upload

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// PixeldrainAdapter uploads to pixeldrain.com. The API key is checked against the
// file listing endpoint before the upload is attempted.
type PixeldrainAdapter struct {
	httpAdapter
	checkEndpoint string
	endpoint      string
	shareBase     string
}

// NewPixeldrainAdapter creates a new PixeldrainAdapter
func NewPixeldrainAdapter(opts Options) *PixeldrainAdapter {
	return &PixeldrainAdapter{
		httpAdapter:   newHTTPAdapter(Pixeldrain, opts),
		checkEndpoint: "https://pixeldrain.com/api/user/files",
		endpoint:      "https://pixeldrain.com/api/file",
		shareBase:     "https://pixeldrain.com/u/",
	}
}

// Configure accepts check_endpoint, endpoint and share_base overrides
func (p *PixeldrainAdapter) Configure(config map[string]any) error {
	return applyStrings(p.Name(), config, map[string]*string{
		"check_endpoint": &p.checkEndpoint,
		"endpoint":       &p.endpoint,
		"share_base":     &p.shareBase,
	})
}

// Upload validates the API key and uploads the file
func (p *PixeldrainAdapter) Upload(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Credential) == "" {
		return nil, p.fail(KindInvalidCredential, "Pixeldrain API key is required", nil)
	}

	// Basic auth with an empty user encodes to base64(":" + key)
	authorize := func(r *http.Request) { r.SetBasicAuth("", req.Credential) }

	check, err := p.get(ctx, p.checkEndpoint, authorize)
	if err != nil {
		return nil, err
	}
	if check.status != http.StatusOK {
		return nil, p.fail(KindInvalidCredential, fmt.Sprintf("Pixeldrain API key is invalid! Status code: %d", check.status), nil)
	}
	p.log.Debug("api key accepted")

	resp, err := p.postFile(ctx, p.endpoint, "file", req.FilePath, nil, authorize)
	if err != nil {
		return nil, err
	}
	if err := p.requireOK(resp, "upload"); err != nil {
		return nil, err
	}

	doc, err := p.decodeJSON(resp.body)
	if err != nil {
		return nil, err
	}
	id := doc.Get("id").String()
	if id == "" {
		return nil, p.fail(KindProtocolMismatch, "Upload failed: "+string(resp.body), nil)
	}

	return &Result{Service: Pixeldrain, URL: p.shareBase + id}, nil
}
