package kvconfig

import (
	"reflect"
	"testing"
)

func TestParseKV(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantKey   string
		wantValue any
		wantErr   bool
	}{
		{
			name:      "simple string",
			input:     "bucket=shares",
			wantKey:   "bucket",
			wantValue: "shares",
		},
		{
			name:      "integer value",
			input:     "port=9000",
			wantKey:   "port",
			wantValue: 9000,
		},
		{
			name:      "float value",
			input:     "ratio=0.5",
			wantKey:   "ratio",
			wantValue: 0.5,
		},
		{
			name:      "boolean true",
			input:     "secure=true",
			wantKey:   "secure",
			wantValue: true,
		},
		{
			name:      "boolean false",
			input:     "secure=false",
			wantKey:   "secure",
			wantValue: false,
		},
		{
			name:      "url value",
			input:     "endpoint=http://127.0.0.1:8080/upload?x=1",
			wantKey:   "endpoint",
			wantValue: "http://127.0.0.1:8080/upload?x=1",
		},
		{
			name:      "empty value",
			input:     "prefix=",
			wantKey:   "prefix",
			wantValue: "",
		},
		{
			name:      "spaces around key and value",
			input:     " region = eu-west-1 ",
			wantKey:   "region",
			wantValue: "eu-west-1",
		},
		{
			name:      "duration stays a string",
			input:     "expiry=24h",
			wantKey:   "expiry",
			wantValue: "24h",
		},
		{
			name:    "missing equals sign",
			input:   "invalid",
			wantErr: true,
		},
		{
			name:    "empty key",
			input:   "=value",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, value, err := ParseKV(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseKV() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err == nil {
				if key != tt.wantKey {
					t.Errorf("ParseKV() key = %v, want %v", key, tt.wantKey)
				}
				if !reflect.DeepEqual(value, tt.wantValue) {
					t.Errorf("ParseKV() value = %v (type: %T), want %v (type: %T)",
						value, value, tt.wantValue, tt.wantValue)
				}
			}
		})
	}
}

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    map[string]any
		wantErr bool
	}{
		{
			name:  "flat object",
			input: `{"endpoint": "http://localhost:9000", "secure": false}`,
			want: map[string]any{
				"endpoint": "http://localhost:9000",
				"secure":   false,
			},
		},
		{
			name:  "numbers decode as float64",
			input: `{"timeout": 30}`,
			want:  map[string]any{"timeout": float64(30)},
		},
		{
			name:    "array is rejected",
			input:   `[1, 2, 3]`,
			wantErr: true,
		},
		{
			name:    "invalid JSON",
			input:   `{invalid}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseJSON(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseJSON() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err == nil && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseJSON() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name    string
		sources []map[string]any
		want    map[string]any
	}{
		{
			name: "later values override earlier",
			sources: []map[string]any{
				{"a": 1, "b": 2},
				{"b": 3, "c": 4},
			},
			want: map[string]any{"a": 1, "b": 3, "c": 4},
		},
		{
			name:    "nil sources ignored",
			sources: []map[string]any{nil, {"a": 1}, nil},
			want:    map[string]any{"a": 1},
		},
		{
			name:    "empty input",
			sources: nil,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.sources...)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Merge() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name    string
		jsonStr string
		kvPairs []string
		want    map[string]any
		wantErr bool
	}{
		{
			name:    "only KV pairs",
			kvPairs: []string{"bucket=shares", "secure=false"},
			want:    map[string]any{"bucket": "shares", "secure": false},
		},
		{
			name:    "only JSON",
			jsonStr: `{"bucket": "shares"}`,
			want:    map[string]any{"bucket": "shares"},
		},
		{
			name:    "KV overrides JSON",
			jsonStr: `{"bucket": "json", "region": "us-east-1"}`,
			kvPairs: []string{"bucket=kv"},
			want:    map[string]any{"bucket": "kv", "region": "us-east-1"},
		},
		{
			name: "no sources",
			want: nil,
		},
		{
			name:    "blank JSON is ignored",
			jsonStr: "  ",
			want:    nil,
		},
		{
			name:    "invalid KV pair",
			kvPairs: []string{"invalid"},
			wantErr: true,
		},
		{
			name:    "invalid JSON",
			jsonStr: `{invalid}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Build(tt.jsonStr, tt.kvPairs)
			if (err != nil) != tt.wantErr {
				t.Errorf("Build() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err == nil && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Build() = %v, want %v", got, tt.want)
			}
		})
	}
}
