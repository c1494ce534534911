package utils

import "strings"

// NormalizeDomain canonicalizes a site URL for deduplication: scheme
// stripped, trailing slash stripped, case-folded. An empty result means the
// value carried no usable domain.
func NormalizeDomain(uri string) string {
	s := strings.ToLower(strings.TrimSpace(uri))
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	s = strings.TrimSuffix(s, "/")
	return s
}
