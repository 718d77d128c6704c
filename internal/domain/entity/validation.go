package entity

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// maxURLLength defines the maximum allowed length for URLs to prevent DoS attacks.
const maxURLLength = 2048

// ValidateArticleURL checks that rawURL is a well-formed absolute http(s) URL.
// It does not resolve the host: article links point at arbitrary public sites
// and are stored, never fetched.
func ValidateArticleURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return &ValidationError{Field: "url", Message: "URL is required"}
	}
	_, err := parseHTTPURL(rawURL)
	return err
}

// ValidateFeedURL validates a URL the server itself will fetch.
// On top of the format checks it blocks private IP addresses to prevent SSRF.
func ValidateFeedURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "url", Message: "URL is required"}
	}

	parsedURL, err := parseHTTPURL(rawURL)
	if err != nil {
		return err
	}

	// SSRF対策: プライベートIPアドレスをブロック
	host := parsedURL.Hostname()
	if ip := net.ParseIP(host); ip != nil {
		if isPrivateIP(ip) {
			return &ValidationError{Field: "url", Message: "url cannot point to private network"}
		}
		return nil
	}
	ips, err := net.LookupIP(host)
	if err == nil {
		for _, ip := range ips {
			if isPrivateIP(ip) {
				return &ValidationError{Field: "url", Message: "url cannot point to private network"}
			}
		}
	}

	return nil
}

func parseHTTPURL(rawURL string) (*url.URL, error) {
	// DoS protection: enforce maximum URL length
	if len(rawURL) > maxURLLength {
		return nil, &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, &ValidationError{Field: "url", Message: "URL is malformed"}
	}

	// HTTPまたはHTTPSスキームのみ許可
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, &ValidationError{Field: "url", Message: "URL must use http or https scheme"}
	}

	// ホスト名の検証
	if parsedURL.Host == "" {
		return nil, &ValidationError{Field: "url", Message: "URL must have a valid host"}
	}
	return parsedURL, nil
}

// isPrivateIP checks if an IP address is in a private or restricted range
// (loopback, link-local including cloud metadata, RFC 1918).
func isPrivateIP(ip net.IP) bool {
	if ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsPrivate() || ip.IsUnspecified() {
		return true
	}
	_, metadata, _ := net.ParseCIDR("169.254.0.0/16")
	return metadata.Contains(ip)
}
