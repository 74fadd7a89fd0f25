package config

import "time"

// UploadFlags selects the destination, file and credential
type UploadFlags struct {
	Service    string
	File       string
	Credential string
}

// SettingsConfig holds inline JSON and key=value settings for one consumer
type SettingsConfig struct {
	JSON string
	KV   []string
}

// CommonFlags holds commonly used flags across modes
type CommonFlags struct {
	Verbose    bool
	JSON       bool
	TimeoutStr string
	Timeout    time.Duration
}

// LogFlags holds logging flags
type LogFlags struct {
	Level string
	File  string
}

// WebhookConfig holds webhook-related flags
type WebhookConfig struct {
	// Direct configuration flags
	URL       string
	AuthType  string
	AuthToken string
	Timeout   string

	// Set when the flag was given explicitly
	AuthTypeSet bool
	TimeoutSet  bool

	// Alternative configuration methods
	Config   string   // JSON string configuration
	ConfigKV []string // Key-value pairs
}
