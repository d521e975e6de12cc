package cache

import "strings"

// KeySeparator defines the delimiter used between cache key segments.
const KeySeparator = "::"

const (
	keyNamespace = "todo"
	keyItem      = "item"
	keyItems     = "items"
)

// AllItemsKey is the aggregate entry holding the full serialized item
// collection. Any mutation must rewrite or delete it; incremental
// patching is deliberately unsupported.
var AllItemsKey = Key(keyNamespace, keyItems, "all")

// ItemKey returns the per-item entry key for the given item ID.
func ItemKey(id string) string {
	return Key(keyNamespace, keyItem, id)
}

// Key joins segments into a cache key using KeySeparator. Empty segments
// are skipped so callers can pass optional qualifiers.
func Key(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, KeySeparator)
}
