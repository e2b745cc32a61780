package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/aws/aws-lambda-go/events"
)

// SecretCache memoizes Secrets Manager lookups across warm invocations,
// keyed by secret ARN.
type SecretCache struct {
	cache map[string]secretEntry
	mu    sync.RWMutex
}

type secretEntry struct {
	secrets   *ReportSecrets
	expiresAt time.Time
}

var secretCache = &SecretCache{
	cache: make(map[string]secretEntry),
}

// secretCacheTTL bounds how long credentials live in a warm Lambda.
// Can be configured via SECRET_CACHE_TTL environment variable (default: 1h).
var secretCacheTTL = GetDurationFromEnv("SECRET_CACHE_TTL", time.Hour)

// Get returns cached secrets if still valid, otherwise nil.
func (sc *SecretCache) Get(secretArn string) *ReportSecrets {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	entry, ok := sc.cache[secretArn]
	if ok && entry.secrets != nil && time.Now().Before(entry.expiresAt) {
		return entry.secrets
	}
	return nil
}

// Set caches secrets with an expiration time.
func (sc *SecretCache) Set(secretArn string, secrets *ReportSecrets, ttl time.Duration) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.cache[secretArn] = secretEntry{
		secrets:   secrets,
		expiresAt: time.Now().Add(ttl),
	}
}

// Clear removes cached secrets for an ARN (useful for testing).
func (sc *SecretCache) Clear(secretArn string) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	delete(sc.cache, secretArn)
}

// ReportConfig carries everything one report run needs.
type ReportConfig struct {
	IntercomToken  string
	APIRoot        string
	SlackBotToken  string
	SlackChannelID string
	SlackTagLine   string
	Timezone       string
	ReportDate     string // optional YYYY-MM-DD override for re-runs
	OutputDir      string
	SkipDelivery   bool
}

// GetFromEventDetailOrEnv retrieves a value from the scheduled event's
// detail object, environment variables, or returns a default.
func GetFromEventDetailOrEnv(detail map[string]string, key, defaultValue string) string {
	if value, ok := detail[key]; ok && value != "" {
		return value
	}
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// resolveReportConfig builds the run configuration from the scheduled event
// detail, the environment, and optionally Secrets Manager. Tokens provided
// directly win over the secret.
func resolveReportConfig(ctx context.Context, logger *Logger, event events.CloudWatchEvent) (*ReportConfig, error) {
	detail := map[string]string{}
	if len(event.Detail) > 0 {
		if err := json.Unmarshal(event.Detail, &detail); err != nil {
			return nil, fmt.Errorf("error parsing event detail: %v", err)
		}
	}

	cfg := &ReportConfig{
		IntercomToken:  GetFromEventDetailOrEnv(detail, "intercomToken", ""),
		APIRoot:        GetFromEventDetailOrEnv(detail, "apiRoot", defaultAPIRoot),
		SlackBotToken:  GetFromEventDetailOrEnv(detail, "slackBotToken", ""),
		SlackChannelID: GetFromEventDetailOrEnv(detail, "slackChannelId", ""),
		SlackTagLine:   GetFromEventDetailOrEnv(detail, "slackTagLine", ""),
		Timezone:       GetFromEventDetailOrEnv(detail, "reportTimezone", "Europe/Stockholm"),
		ReportDate:     GetFromEventDetailOrEnv(detail, "reportDate", ""),
		OutputDir:      GetFromEventDetailOrEnv(detail, "outputDir", os.TempDir()),
		SkipDelivery:   GetFromEventDetailOrEnv(detail, "skipDelivery", "") == "true",
	}

	secretArn := GetFromEventDetailOrEnv(detail, "secretArn", "")
	if secretArn != "" && (cfg.IntercomToken == "" || cfg.SlackBotToken == "") {
		secrets := secretCache.Get(secretArn)
		if secrets == nil {
			var err error
			secrets, err = GetReportSecretsFromSecretsManager(ctx, logger, secretArn)
			if err != nil {
				return nil, err
			}
			secretCache.Set(secretArn, secrets, secretCacheTTL)
		} else {
			logger.Debugf("Using cached report credentials")
		}
		if cfg.IntercomToken == "" {
			cfg.IntercomToken = secrets.IntercomToken
		}
		if cfg.SlackBotToken == "" {
			cfg.SlackBotToken = secrets.SlackBotToken
		}
	}

	if cfg.IntercomToken == "" {
		return nil, fmt.Errorf("intercomToken is required (directly or via secretArn)")
	}
	if err := ValidateDomain(cfg.APIRoot); err != nil {
		return nil, fmt.Errorf("invalid apiRoot: %v", err)
	}
	if !cfg.SkipDelivery {
		if cfg.SlackBotToken == "" {
			return nil, fmt.Errorf("slackBotToken is required unless skipDelivery is set")
		}
		if cfg.SlackChannelID == "" {
			return nil, fmt.Errorf("slackChannelId is required unless skipDelivery is set")
		}
	}
	return cfg, nil
}
