package ndk

import (
	"sync"
)

// OncePer computes a value on first use and caches it for later
// callers. Values are never recomputed, even if the underlying
// installation changes on disk.
type OncePer struct {
	values     sync.Map
	valuesLock sync.Mutex
}

func (once *OncePer) Once(key interface{}, value func() interface{}) interface{} {
	if v, ok := once.values.Load(key); ok {
		return v
	}

	once.valuesLock.Lock()
	defer once.valuesLock.Unlock()

	if v, ok := once.values.Load(key); ok {
		return v
	}

	v := value()
	once.values.Store(key, v)

	return v
}

func (once *OncePer) OnceStringSlice(key interface{}, value func() []string) []string {
	return once.Once(key, func() interface{} { return value() }).([]string)
}
