//go:build unit || e2e

package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// Mutation edits a JSON object decoded from a request DTO.
type Mutation func(m map[string]any)

// DtoMap round-trips a request DTO through JSON so a test can break single fields
// the typed struct would not allow.
func DtoMap(t *testing.T, v any, muts ...Mutation) map[string]any {
	t.Helper()

	b, err := json.Marshal(v)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))

	for _, mut := range muts {
		mut(m)
	}
	return m
}

// Field sets key, or removes it when value is nil.
func Field(key string, value any) Mutation {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
			return
		}
		m[key] = value
	}
}

// Nested applies Field inside an object member such as shippingInfo.
func Nested(parent, key string, value any) Mutation {
	return func(m map[string]any) {
		child, ok := m[parent].(map[string]any)
		if !ok {
			child = map[string]any{}
			m[parent] = child
		}
		Field(key, value)(child)
	}
}
