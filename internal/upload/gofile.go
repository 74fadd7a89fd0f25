package upload

import (
	"context"
	"fmt"
	"strings"
)

// GoFileAdapter uploads to gofile.io through a server picked from the server list
type GoFileAdapter struct {
	httpAdapter
	serversEndpoint string
	endpoint        string // upload URL template; %s receives the server name
}

// NewGoFileAdapter creates a new GoFileAdapter
func NewGoFileAdapter(opts Options) *GoFileAdapter {
	return &GoFileAdapter{
		httpAdapter:     newHTTPAdapter(GoFile, opts),
		serversEndpoint: "https://api.gofile.io/servers",
		endpoint:        "https://%s.gofile.io/uploadFile",
	}
}

// Configure accepts servers_endpoint and endpoint overrides
func (g *GoFileAdapter) Configure(config map[string]any) error {
	if err := applyStrings(g.Name(), config, map[string]*string{
		"servers_endpoint": &g.serversEndpoint,
		"endpoint":         &g.endpoint,
	}); err != nil {
		return err
	}
	if strings.Count(g.endpoint, "%s") != 1 {
		return fmt.Errorf("%s: endpoint must contain exactly one %%s for the server name", g.Name())
	}
	return nil
}

// Upload discovers an upload server and uploads the file to it
func (g *GoFileAdapter) Upload(ctx context.Context, req Request) (*Result, error) {
	server, err := g.discoverServer(ctx)
	if err != nil {
		return nil, err
	}
	g.log.Debug("selected upload server", "server", server)

	resp, err := g.postFile(ctx, fmt.Sprintf(g.endpoint, server), "file", req.FilePath, nil, nil)
	if err != nil {
		return nil, err
	}
	if err := g.requireOK(resp, "upload"); err != nil {
		return nil, err
	}

	doc, err := g.decodeJSON(resp.body)
	if err != nil {
		return nil, err
	}
	link := doc.Get("data.downloadPage").String()
	if link == "" {
		return nil, g.fail(KindProtocolMismatch, "Upload failed: "+string(resp.body), nil)
	}

	return &Result{Service: GoFile, URL: link}, nil
}

func (g *GoFileAdapter) discoverServer(ctx context.Context) (string, error) {
	resp, err := g.get(ctx, g.serversEndpoint, nil)
	if err != nil {
		return "", withDetail(err, "Failed to retrieve server information")
	}
	if err := g.requireOK(resp, "server list"); err != nil {
		return "", err
	}

	doc, err := g.decodeJSON(resp.body)
	if err != nil {
		return "", err
	}
	server := doc.Get("data.servers.0.name").String()
	if server == "" {
		return "", g.fail(KindServerInfoUnavailable, "Failed to retrieve server information: "+string(resp.body), nil)
	}
	return server, nil
}
