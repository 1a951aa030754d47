package logging

import (
	"log/slog"
	"net/url"
	"strings"
)

// SecretKeyPatterns contains substrings that mark an attribute key as
// sensitive. Keys are matched case-insensitively.
var SecretKeyPatterns = []string{
	"TOKEN",
	"KEY",
	"SECRET",
	"PASSWORD",
	"AUTH",
	"CREDENTIAL",
	"PRIVATE",
}

// TokenPrefixes contains known API token prefixes that mark a value as
// sensitive regardless of its key.
var TokenPrefixes = []string{
	"ghp_",  // GitHub personal access token
	"gho_",  // GitHub OAuth token
	"ghu_",  // GitHub user-to-server token
	"ghs_",  // GitHub server-to-server token
	"ghr_",  // GitHub refresh token
	"sk-",   // OpenAI/Anthropic keys
	"AKIA",  // AWS access key prefix
	"xoxb-", // Slack bot token
	"xoxp-", // Slack user token
}

// ShouldMask reports whether key names a sensitive attribute.
func ShouldMask(key string) bool {
	upper := strings.ToUpper(key)
	for _, pattern := range SecretKeyPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}

// ContainsTokenPrefix reports whether value starts with a known token prefix.
func ContainsTokenPrefix(value string) bool {
	for _, prefix := range TokenPrefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}

// MaskValue masks a sensitive string. Values of 4 characters or fewer become
// "********"; longer values keep their last 4 characters: "****abcd".
func MaskValue(value string) string {
	runes := []rune(value)
	if len(runes) <= 4 {
		return "********"
	}
	return "****" + string(runes[len(runes)-4:])
}

// MaskURL replaces the password of a URL with embedded credentials.
// Strings that do not parse, or carry no password, are returned unchanged.
func MaskURL(rawURL string) string {
	if !strings.Contains(rawURL, "://") {
		return rawURL
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.User == nil {
		return rawURL
	}
	password, ok := parsed.User.Password()
	if !ok || password == "" {
		return rawURL
	}

	// Splice the mask into the raw string; re-encoding through url.URL would
	// percent-escape the mask characters.
	schemeEnd := strings.Index(rawURL, "://") + len("://")
	rest := rawURL[schemeEnd:]
	authEnd := strings.IndexAny(rest, "/?#")
	if authEnd < 0 {
		authEnd = len(rest)
	}
	at := strings.LastIndex(rest[:authEnd], "@")
	if at < 0 {
		return rawURL
	}
	colon := strings.Index(rest[:at], ":")
	if colon < 0 {
		return rawURL
	}
	return rawURL[:schemeEnd] + rest[:colon+1] + MaskValue(password) + rest[at:]
}

// redactAttr returns a with its value masked when the key or value looks
// sensitive. Group values are redacted recursively.
func redactAttr(a slog.Attr) slog.Attr {
	v := a.Value.Resolve()
	switch v.Kind() {
	case slog.KindGroup:
		group := v.Group()
		redacted := make([]slog.Attr, len(group))
		for i, ga := range group {
			redacted[i] = redactAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(redacted...)}
	case slog.KindString:
		s := v.String()
		if ShouldMask(a.Key) || ContainsTokenPrefix(s) {
			return slog.String(a.Key, MaskValue(s))
		}
		return slog.String(a.Key, MaskURL(s))
	default:
		if ShouldMask(a.Key) {
			return slog.String(a.Key, MaskValue(v.String()))
		}
		return slog.Attr{Key: a.Key, Value: v}
	}
}
