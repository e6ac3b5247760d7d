package cache

import "strings"

// KeyPrefix - префиксы для разных типов ключей
type KeyPrefix string

const (
	PrefixLink      KeyPrefix = "link" // link:shortCode
	PrefixRateLimit KeyPrefix = "rate" // rate:clientIP
)

// KeyBuilder - построитель ключей кэша
type KeyBuilder struct {
	namespace string
}

func NewKeyBuilder(namespace string) *KeyBuilder {
	return &KeyBuilder{namespace: namespace}
}

// Build создает ключ с префиксом и опциональным namespace
func (k *KeyBuilder) Build(prefix KeyPrefix, parts ...string) string {
	segments := make([]string, 0, len(parts)+2)
	if k.namespace != "" {
		segments = append(segments, k.namespace)
	}
	segments = append(segments, string(prefix))
	segments = append(segments, parts...)

	return strings.Join(segments, ":")
}

// Link создает ключ для хранения ссылки по короткому коду
func (k *KeyBuilder) Link(shortCode string) string {
	return k.Build(PrefixLink, shortCode)
}

// RateLimit создает ключ для rate limiting
func (k *KeyBuilder) RateLimit(clientIP string) string {
	return k.Build(PrefixRateLimit, clientIP)
}

var DefaultKeyBuilder = NewKeyBuilder("")
