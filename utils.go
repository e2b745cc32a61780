package main

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// GetIntFromEnv retrieves an integer from environment variable or returns default.
func GetIntFromEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetDurationFromEnv retrieves a duration from environment variable or returns default.
// Accepts duration strings like "100ms", "2s", "1m", etc.
func GetDurationFromEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// reportWindow computes the midnight-to-midnight unix window the report
// covers in loc, plus the YYYY-MM-DD label used in file names. An empty date
// means yesterday relative to now; a non-empty date re-runs that day.
func reportWindow(now time.Time, loc *time.Location, date string) (start, end int64, label string, err error) {
	var dayStart time.Time
	if date != "" {
		dayStart, err = time.ParseInLocation("2006-01-02", date, loc)
		if err != nil {
			return 0, 0, "", fmt.Errorf("invalid reportDate %q: expected YYYY-MM-DD", date)
		}
	} else {
		year, month, day := now.In(loc).Date()
		dayStart = time.Date(year, month, day, 0, 0, 0, 0, loc).AddDate(0, 0, -1)
	}
	// AddDate keeps wall-clock midnight across DST changes.
	dayEnd := dayStart.AddDate(0, 0, 1)
	return dayStart.Unix(), dayEnd.Unix(), dayStart.Format("2006-01-02"), nil
}

// isoUTC renders a unix timestamp as an ISO-8601 UTC string, second
// resolution, no zone suffix. Matches the format of the reports this job
// replaced, so downstream sheets keep parsing.
func isoUTC(ts int64) string {
	return time.Unix(ts, 0).UTC().Format("2006-01-02T15:04:05")
}

// ValidateDomain validates that a domain is a safe URL for API requests.
// Returns an error if the domain contains path traversal, fragments, or other unsafe components.
// Allows HTTP only for localhost/127.0.0.1 (for testing), otherwise requires HTTPS.
func ValidateDomain(domain string) error {
	if domain == "" {
		return fmt.Errorf("domain cannot be empty")
	}

	parsedURL, err := url.Parse(domain)
	if err != nil {
		return fmt.Errorf("invalid domain URL: %v", err)
	}

	// Require HTTPS scheme for security, except for localhost (testing)
	isLocalhost := parsedURL.Hostname() == "localhost" || parsedURL.Hostname() == "127.0.0.1" || strings.HasPrefix(parsedURL.Hostname(), "127.")
	if parsedURL.Scheme != "https" && !(parsedURL.Scheme == "http" && isLocalhost) {
		return fmt.Errorf("domain must use HTTPS scheme, got: %s", parsedURL.Scheme)
	}

	// Reject domains with path, query, or fragment components
	if parsedURL.Path != "" && parsedURL.Path != "/" {
		return fmt.Errorf("domain cannot contain path components: %s", parsedURL.Path)
	}
	if parsedURL.RawQuery != "" {
		return fmt.Errorf("domain cannot contain query parameters: %s", parsedURL.RawQuery)
	}
	if parsedURL.Fragment != "" {
		return fmt.Errorf("domain cannot contain fragment: %s", parsedURL.Fragment)
	}

	// Ensure host is present
	if parsedURL.Host == "" {
		return fmt.Errorf("domain must have a host")
	}

	// Check for path traversal attempts in host
	if strings.Contains(parsedURL.Host, "/") || strings.Contains(parsedURL.Host, "..") {
		return fmt.Errorf("domain host contains invalid characters")
	}

	return nil
}
