package upload

import (
	"context"
)

// FileIOAdapter uploads to file.io
type FileIOAdapter struct {
	httpAdapter
	endpoint string
}

// NewFileIOAdapter creates a new FileIOAdapter
func NewFileIOAdapter(opts Options) *FileIOAdapter {
	return &FileIOAdapter{
		httpAdapter: newHTTPAdapter(FileIO, opts),
		endpoint:    "https://file.io",
	}
}

// Configure accepts an endpoint override
func (f *FileIOAdapter) Configure(config map[string]any) error {
	return applyStrings(f.Name(), config, map[string]*string{"endpoint": &f.endpoint})
}

// Upload uploads the file and reads the link field
func (f *FileIOAdapter) Upload(ctx context.Context, req Request) (*Result, error) {
	resp, err := f.postFile(ctx, f.endpoint, "file", req.FilePath, nil, nil)
	if err != nil {
		return nil, err
	}
	if err := f.requireOK(resp, "upload"); err != nil {
		return nil, err
	}

	doc, err := f.decodeJSON(resp.body)
	if err != nil {
		return nil, err
	}
	link := doc.Get("link").String()
	if link == "" {
		return nil, f.fail(KindProtocolMismatch, "Upload failed: "+string(resp.body), nil)
	}

	return &Result{Service: FileIO, URL: link}, nil
}
