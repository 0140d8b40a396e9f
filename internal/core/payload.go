package core

// TypeField is the discriminant key every wire record carries.
const TypeField = "type"

// Payload is one structured outbound record. The router injects TypeField
// into any handler result that lacks it, so handlers never self-tag.
type Payload map[string]any

// Type returns the discriminant value, or "" if absent.
func (p Payload) Type() string {
	s, _ := p[TypeField].(string)
	return s
}

// Fields is the decoded body of an inbound command frame.
type Fields map[string]any

// String returns the string value under key and whether it was present.
func (f Fields) String(key string) (string, bool) {
	s, ok := f[key].(string)
	return s, ok
}

// StringOr returns the string value under key, or fallback if absent or empty.
func (f Fields) StringOr(key, fallback string) string {
	if s, ok := f[key].(string); ok && s != "" {
		return s
	}
	return fallback
}
