package usecase

import (
	"strconv"
	"strings"
)

// CacheNamespace prefixes every rendered-markup cache key.
const CacheNamespace = "angellist-company"

// BuildCacheKey derives the markup cache key from everything that changes the
// rendered output: company id, secure context (asset URLs differ), schema.org
// toggle, and browsing context.
func BuildCacheKey(id int, schemaOrg bool, browsingContext string, secure bool) string {
	parts := []string{CacheNamespace, strconv.Itoa(id)}
	if secure {
		parts = append(parts, "ssl")
	}
	if !schemaOrg {
		parts = append(parts, "ns")
	}
	if browsingContext != "" {
		parts = append(parts, strings.TrimPrefix(browsingContext, "_"))
	}
	return strings.Join(parts, "-")
}
