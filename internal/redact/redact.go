// Package redact masks secrets before they reach logs or terminal output.
package redact

import (
	"strings"
)

// SecretKeyPatterns contains substrings that indicate a key likely contains sensitive data.
// Keys are matched case-insensitively.
var SecretKeyPatterns = []string{
	"TOKEN",
	"SECRET",
	"PASSWORD",
	"AUTH",
	"CREDENTIAL",
	"API_KEY",
	"PRIVATE",
}

// TokenPrefixes contains known token prefixes that indicate sensitive values
// regardless of key name.
var TokenPrefixes = []string{
	"sntrys_", // Sentry organization auth token
	"sntryu_", // Sentry user auth token
	"ghp_",    // GitHub personal access token
	"gho_",    // GitHub OAuth token
	"sk-",     // OpenAI/Anthropic keys
	"AKIA",    // AWS access key prefix
	"xoxb-",   // Slack bot token
	"xoxp-",   // Slack user token
}

// FlagPrefixes lists command-line flags whose value is a secret.
var FlagPrefixes = []string{
	"--access-token=",
}

// MaskValue masks a potentially sensitive string value.
// Values with 4 or fewer characters are fully masked as "********".
// Longer values show the last 4 characters: "****xxxx".
func MaskValue(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}

// ShouldMask returns true if the key name suggests it contains sensitive data.
// Matching is case-insensitive.
func ShouldMask(key string) bool {
	upper := strings.ToUpper(key)
	for _, pattern := range SecretKeyPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}

// ContainsTokenPrefix returns true if the value starts with a known token prefix.
func ContainsTokenPrefix(value string) bool {
	for _, prefix := range TokenPrefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}

// Arg masks the value of a secret-carrying flag such as --access-token=...
// Any other argument is returned unchanged.
func Arg(arg string) string {
	for _, prefix := range FlagPrefixes {
		if strings.HasPrefix(arg, prefix) {
			return prefix + MaskValue(arg[len(prefix):])
		}
	}
	if ContainsTokenPrefix(arg) {
		return MaskValue(arg)
	}
	return arg
}

// Args returns a copy of args with every secret-carrying argument masked.
func Args(args []string) []string {
	if args == nil {
		return nil
	}
	masked := make([]string, len(args))
	for i, a := range args {
		masked[i] = Arg(a)
	}
	return masked
}

// Map masks sensitive values in the given map.
// Keys matching SecretKeyPatterns or values matching TokenPrefixes are masked.
// Returns a new map with sensitive values redacted.
func Map(env map[string]string) map[string]string {
	if env == nil {
		return nil
	}

	masked := make(map[string]string, len(env))
	for k, v := range env {
		if ShouldMask(k) || ContainsTokenPrefix(v) {
			masked[k] = MaskValue(v)
		} else {
			masked[k] = v
		}
	}
	return masked
}
