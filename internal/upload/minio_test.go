package upload

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestS3AdapterName(t *testing.T) {
	adapter := NewS3Adapter(Options{})
	if adapter.Name() != "s3" {
		t.Errorf("Expected adapter name 's3', got %s", adapter.Name())
	}
}

func TestS3AdapterURLProtocolDetection(t *testing.T) {
	tests := []struct {
		name           string
		endpoint       string
		explicitSecure *bool
		wantEndpoint   string
		wantSecure     bool
		wantErr        bool
	}{
		{
			name:         "http protocol",
			endpoint:     "http://localhost:9000",
			wantEndpoint: "localhost:9000",
			wantSecure:   false,
		},
		{
			name:         "https protocol",
			endpoint:     "https://s3.amazonaws.com",
			wantEndpoint: "s3.amazonaws.com",
			wantSecure:   true,
		},
		{
			name:         "no protocol uses default secure=true",
			endpoint:     "localhost:9000",
			wantEndpoint: "localhost:9000",
			wantSecure:   true,
		},
		{
			name:           "no protocol with explicit secure=false",
			endpoint:       "localhost:9000",
			explicitSecure: boolPtr(false),
			wantEndpoint:   "localhost:9000",
			wantSecure:     false,
		},
		{
			name:           "http protocol overrides explicit secure=true",
			endpoint:       "http://localhost:9000",
			explicitSecure: boolPtr(true),
			wantEndpoint:   "localhost:9000",
			wantSecure:     false,
		},
		{
			name:           "https protocol overrides explicit secure=false",
			endpoint:       "https://s3.amazonaws.com/",
			explicitSecure: boolPtr(false),
			wantEndpoint:   "s3.amazonaws.com",
			wantSecure:     true,
		},
		{
			name:     "invalid protocol only",
			endpoint: "http://",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := NewS3Adapter(Options{})
			config := map[string]any{
				"endpoint": tt.endpoint,
				"bucket":   "testbucket",
			}
			if tt.explicitSecure != nil {
				config["secure"] = *tt.explicitSecure
			}

			err := adapter.Configure(config)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected configuration error: %v", err)
			}
			if adapter.endpoint != tt.wantEndpoint {
				t.Errorf("endpoint = %q, want %q", adapter.endpoint, tt.wantEndpoint)
			}
			if adapter.secure != tt.wantSecure {
				t.Errorf("secure = %v, want %v", adapter.secure, tt.wantSecure)
			}
		})
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func TestS3AdapterConfigValidation(t *testing.T) {
	tests := []struct {
		name      string
		config    map[string]any
		expectErr bool
		errMsg    string
	}{
		{
			name:      "missing endpoint",
			config:    map[string]any{},
			expectErr: true,
			errMsg:    "endpoint is required",
		},
		{
			name: "missing bucket",
			config: map[string]any{
				"endpoint": "localhost:9000",
			},
			expectErr: true,
			errMsg:    "bucket is required",
		},
		{
			name: "invalid endpoint URL",
			config: map[string]any{
				"endpoint": "http://",
				"bucket":   "test",
			},
			expectErr: true,
			errMsg:    "invalid endpoint URL",
		},
		{
			name: "expiry too long",
			config: map[string]any{
				"endpoint": "localhost:9000",
				"bucket":   "test",
				"expiry":   "200h",
			},
			expectErr: true,
			errMsg:    "expiry must be between",
		},
		{
			name: "unparseable expiry",
			config: map[string]any{
				"endpoint": "localhost:9000",
				"bucket":   "test",
				"expiry":   "tomorrow",
			},
			expectErr: true,
			errMsg:    "invalid expiry",
		},
		{
			name: "full configuration",
			config: map[string]any{
				"endpoint":   "https://play.min.io",
				"bucket":     "shares",
				"region":     "eu-west-1",
				"prefix":     "/uploads/",
				"public_url": "https://cdn.example.com/shares",
				"expiry":     "24h",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := NewS3Adapter(Options{})
			err := adapter.Configure(tt.config)
			if tt.expectErr {
				if err == nil {
					t.Error("Expected error, got nil")
				} else if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("Expected error containing %q, got %q", tt.errMsg, err.Error())
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestS3AdapterDefaults(t *testing.T) {
	adapter := NewS3Adapter(Options{})
	if err := adapter.Configure(map[string]any{"endpoint": "localhost:9000", "bucket": "b", "prefix": "/a/b/"}); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if adapter.region != "us-east-1" {
		t.Errorf("region = %q, want us-east-1", adapter.region)
	}
	if adapter.expiry != 7*24*time.Hour {
		t.Errorf("expiry = %v, want 168h", adapter.expiry)
	}
	if got := adapter.objectName("/tmp/report.pdf"); got != "a/b/report.pdf" {
		t.Errorf("objectName = %q, want a/b/report.pdf", got)
	}
}

func TestParseS3Credential(t *testing.T) {
	tests := []struct {
		in         string
		wantAccess string
		wantSecret string
		wantOK     bool
	}{
		{"AKIA:secret", "AKIA", "secret", true},
		{" AKIA:sec:ret ", "AKIA", "sec:ret", true},
		{"AKIA", "", "", false},
		{":secret", "", "", false},
		{"AKIA:", "", "", false},
	}
	for _, tt := range tests {
		access, secret, ok := parseS3Credential(tt.in)
		if access != tt.wantAccess || secret != tt.wantSecret || ok != tt.wantOK {
			t.Errorf("parseS3Credential(%q) = %q, %q, %v", tt.in, access, secret, ok)
		}
	}
}

func TestS3AdapterUploadFailures(t *testing.T) {
	tests := []struct {
		name       string
		credential string
		status     int
		wantKind   ErrorKind
	}{
		{name: "malformed credential", credential: "nocolon", wantKind: KindInvalidCredential},
		{name: "access denied", credential: "ak:sk", status: http.StatusForbidden, wantKind: KindInvalidCredential},
		{name: "missing bucket", credential: "ak:sk", status: http.StatusNotFound, wantKind: KindServerInfoUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var puts atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method == http.MethodPut {
					puts.Add(1)
				}
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			adapter := NewS3Adapter(Options{})
			if err := adapter.Configure(map[string]any{"endpoint": srv.URL, "bucket": "shares"}); err != nil {
				t.Fatalf("Configure: %v", err)
			}

			path := writeFixture(t, fixtureContent)
			_, err := adapter.Upload(context.Background(), Request{FilePath: path, Credential: tt.credential})
			if got := KindOf(err); got != tt.wantKind {
				t.Errorf("KindOf() = %q, want %q (err: %v)", got, tt.wantKind, err)
			}
			if puts.Load() != 0 {
				t.Errorf("expected no object upload, got %d PUT requests", puts.Load())
			}
		})
	}
}

func TestS3AdapterNotConfigured(t *testing.T) {
	adapter := NewS3Adapter(Options{})
	_, err := adapter.Upload(context.Background(), Request{FilePath: "/dev/null", Credential: "a:b"})
	if KindOf(err) != KindServerInfoUnavailable {
		t.Errorf("expected server info failure, got %v", err)
	}
}
