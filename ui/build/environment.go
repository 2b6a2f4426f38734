package build

import (
	"os"
	"strings"
)

// Environment adds a number of useful manipulation functions to the
// list of strings returned by os.Environ() and used in exec.Cmd.Env.
type Environment []string

// OsEnvironment wraps the current environment returned by os.Environ()
func OsEnvironment() *Environment {
	env := Environment(os.Environ())
	return &env
}

// Get returns the value associated with the key, and whether it exists.
func (e *Environment) Get(key string) (string, bool) {
	for _, env := range *e {
		if k, v, ok := decodeKeyValue(env); ok && k == key {
			return v, true
		}
	}
	return "", false
}

// Set sets the value associated with the key, overwriting the current
// value if it exists.
func (e *Environment) Set(key, value string) {
	e.Unset(key)
	*e = append(*e, key+"="+value)
}

// Unset removes the specified keys from the Environment.
func (e *Environment) Unset(keys ...string) {
	out := (*e)[:0]
	for _, env := range *e {
		if key, _, ok := decodeKeyValue(env); ok && inList(key, keys) {
			continue
		}
		out = append(out, env)
	}
	*e = out
}

// UnsetWithPrefix removes all keys that start with prefix.
func (e *Environment) UnsetWithPrefix(prefix string) {
	out := (*e)[:0]
	for _, env := range *e {
		if key, _, ok := decodeKeyValue(env); ok && strings.HasPrefix(key, prefix) {
			continue
		}
		out = append(out, env)
	}
	*e = out
}

// Environ returns the []string required for exec.Cmd.Env
func (e *Environment) Environ() []string {
	return []string(*e)
}

// Copy returns a copy of the Environment so that independent changes
// may be made.
func (e *Environment) Copy() *Environment {
	ret := Environment(make([]string, len(*e)))
	for i, v := range *e {
		ret[i] = v
	}
	return &ret
}

// IsEnvTrue returns true if the value is "1", "y", "yes", "on", or
// "true".
func (e *Environment) IsEnvTrue(key string) bool {
	if value, ok := e.Get(key); ok {
		return value == "1" || value == "y" || value == "yes" || value == "on" || value == "true"
	}
	return false
}
