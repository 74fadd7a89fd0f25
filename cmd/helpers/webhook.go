package helpers

import (
	"fmt"
	"time"

	"github.com/zinc-sig/uploadgen/cmd/config"
	"github.com/zinc-sig/uploadgen/internal/kvconfig"
	"github.com/zinc-sig/uploadgen/internal/webhook"
)

// BuildWebhookConfig builds webhook settings from all sources
// Precedence: json < kv < direct flags
func BuildWebhookConfig(cfg *config.WebhookConfig) (map[string]any, error) {
	webhookConf, err := kvconfig.Build(cfg.Config, cfg.ConfigKV)
	if err != nil {
		return nil, fmt.Errorf("failed to build webhook config: %w", err)
	}
	if webhookConf == nil {
		webhookConf = make(map[string]any)
	}

	// Override with explicit flag values if set (highest precedence)
	if cfg.URL != "" {
		webhookConf["url"] = cfg.URL
	}
	if cfg.AuthTypeSet {
		webhookConf["auth_type"] = cfg.AuthType
	}
	if cfg.AuthToken != "" {
		webhookConf["auth_token"] = cfg.AuthToken
	}
	if cfg.TimeoutSet {
		webhookConf["timeout"] = cfg.Timeout
	}

	return webhookConf, nil
}

// ParseWebhookConfig converts the webhook settings to a client config.
// It returns nil when no webhook URL is configured.
func ParseWebhookConfig(cfg *config.WebhookConfig) (*webhook.Config, error) {
	configMap, err := BuildWebhookConfig(cfg)
	if err != nil {
		return nil, err
	}

	url, _ := configMap["url"].(string)
	if url == "" {
		return nil, nil
	}

	timeout := 30 * time.Second
	if value, ok := configMap["timeout"]; ok {
		raw, isString := value.(string)
		if !isString {
			return nil, fmt.Errorf("invalid webhook timeout %v: use a duration such as 10s", value)
		}
		timeout, err = time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid webhook timeout duration: %w", err)
		}
		if timeout <= 0 {
			return nil, fmt.Errorf("webhook timeout must be positive")
		}
	}

	method, _ := configMap["method"].(string)
	if method == "" {
		method = "POST"
	}

	authType, _ := configMap["auth_type"].(string)
	if authType == "" {
		authType = webhook.AuthNone
	}
	authToken, _ := configMap["auth_token"].(string)

	headers := make(map[string]string)
	if raw, ok := configMap["headers"].(map[string]any); ok {
		for k, v := range raw {
			headers[k] = fmt.Sprint(v)
		}
	}

	webhookConfig := &webhook.Config{
		URL:       url,
		Method:    method,
		Headers:   headers,
		Timeout:   timeout,
		AuthType:  authType,
		AuthToken: authToken,
	}
	if err := webhookConfig.Validate(); err != nil {
		return nil, err
	}

	return webhookConfig, nil
}
