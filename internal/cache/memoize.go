package cache

import (
	"fmt"

	"go.uber.org/zap"
)

// Memoize wraps fn so that calls with equal args within the TTL return the
// first computed result. Errors are never cached. Concurrent misses on the
// same key may each call fn; the last result stored wins.
//
// Cached values are shared between callers and must not be mutated.
func Memoize[A, R any](m *Manager, t Type, fn func(A) (R, error)) func(A) (R, error) {
	return func(args A) (R, error) {
		var zero R

		key, err := Key(t, args)
		if err != nil {
			return zero, err
		}

		cached, ok, err := m.Get(t, key)
		if err != nil {
			return zero, err
		}
		if ok {
			result, isR := cached.(R)
			if isR {
				return result, nil
			}
			m.logger.Warn("cache entry has unexpected type",
				zap.String("bucket", string(t)),
				zap.String("type", fmt.Sprintf("%T", cached)))
		}

		result, err := fn(args)
		if err != nil {
			return zero, err
		}
		if err := m.Add(t, key, result); err != nil {
			return zero, err
		}
		return result, nil
	}
}
