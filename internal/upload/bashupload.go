package upload

import (
	"context"
	"strings"
)

// BashuploadAdapter uploads to bashupload.com, which answers with a plain-text page
// that embeds the download link.
type BashuploadAdapter struct {
	httpAdapter
	endpoint   string
	linkPrefix string
}

// NewBashuploadAdapter creates a new BashuploadAdapter
func NewBashuploadAdapter(opts Options) *BashuploadAdapter {
	return &BashuploadAdapter{
		httpAdapter: newHTTPAdapter(Bashupload, opts),
		endpoint:    "https://bashupload.com",
		linkPrefix:  "https://bashupload.com/",
	}
}

// Configure accepts endpoint and link_prefix overrides
func (b *BashuploadAdapter) Configure(config map[string]any) error {
	return applyStrings(b.Name(), config, map[string]*string{
		"endpoint":    &b.endpoint,
		"link_prefix": &b.linkPrefix,
	})
}

// Upload uploads the file and scans the response text for the link
func (b *BashuploadAdapter) Upload(ctx context.Context, req Request) (*Result, error) {
	resp, err := b.postFile(ctx, b.endpoint, "file", req.FilePath, nil, nil)
	if err != nil {
		return nil, err
	}
	if err := b.requireOK(resp, "upload"); err != nil {
		return nil, err
	}

	link, ok := extractLink(string(resp.body), b.linkPrefix)
	if !ok {
		return nil, b.fail(KindProtocolMismatch, "Failed to upload file. URL not found.", nil)
	}

	return &Result{Service: Bashupload, URL: link}, nil
}

// extractLink returns the text from the first occurrence of prefix up to the next
// newline or the end of text, trimmed.
func extractLink(text, prefix string) (string, bool) {
	start := strings.Index(text, prefix)
	if start == -1 {
		return "", false
	}
	rest := text[start:]
	if end := strings.IndexByte(rest, '\n'); end != -1 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest), true
}
