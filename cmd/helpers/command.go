package helpers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/zinc-sig/uploadgen/internal/upload"
)

// ParseTimeout parses and validates a timeout duration string
func ParseTimeout(timeoutStr string) (time.Duration, error) {
	if timeoutStr == "" {
		return 0, nil
	}

	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout duration: %w", err)
	}

	if timeout <= 0 {
		return 0, fmt.Errorf("timeout must be positive")
	}

	return timeout, nil
}

// ParseService accepts a destination number or key
func ParseService(value string) (upload.ServiceID, error) {
	value = strings.TrimSpace(value)
	if n, err := strconv.Atoi(value); err == nil {
		id := upload.ServiceID(n)
		if !id.Valid() {
			return 0, fmt.Errorf("invalid service %d (choose 1-%d)", n, len(upload.Services()))
		}
		return id, nil
	}
	if d, ok := upload.LookupKey(value); ok {
		return d.ID, nil
	}
	return 0, fmt.Errorf("invalid service %q", value)
}
