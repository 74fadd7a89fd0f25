package helpers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/zinc-sig/uploadgen/cmd/config"
	"github.com/zinc-sig/uploadgen/internal/kvconfig"
	"github.com/zinc-sig/uploadgen/internal/upload"
)

// BuildServiceConfig builds adapter overrides from the inline flags
func BuildServiceConfig(cfg *config.SettingsConfig) (map[string]any, error) {
	settings, err := kvconfig.Build(cfg.JSON, cfg.KV)
	if err != nil {
		return nil, fmt.Errorf("failed to build service config: %w", err)
	}
	return settings, nil
}

// SetupAdapter creates the adapter for id and applies settings when any are given
func SetupAdapter(id upload.ServiceID, settings map[string]any, opts upload.Options) (upload.Adapter, error) {
	adapter, err := upload.New(id, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload adapter: %w", err)
	}

	if len(settings) > 0 {
		if err := adapter.Configure(settings); err != nil {
			return nil, fmt.Errorf("failed to configure %s: %w", adapter.Name(), err)
		}
	}

	return adapter, nil
}

// AdapterOptions returns the shared adapter dependencies
func AdapterOptions(log *slog.Logger, userAgent string) upload.Options {
	return upload.Options{
		HTTPClient: &http.Client{},
		Logger:     log,
		UserAgent:  userAgent,
	}
}

// PrintServiceConfig prints adapter overrides in verbose mode
func PrintServiceConfig(w io.Writer, id upload.ServiceID, settings map[string]any) {
	if len(settings) == 0 {
		return
	}
	fmt.Fprintln(w, "========================================")
	fmt.Fprintln(w, "Destination Settings")
	fmt.Fprintln(w, "========================================")
	fmt.Fprintf(w, "Destination:    %s\n", id)
	for _, key := range []string{"endpoint", "bucket", "region", "prefix", "public_url"} {
		if v, ok := settings[key]; ok && v != "" {
			fmt.Fprintf(w, "%-15s %v\n", key+":", v)
		}
	}
	fmt.Fprintln(w, "----------------------------------------")
}
