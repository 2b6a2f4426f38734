package ndk

import (
	"strings"
)

// Variable is one NAME=value pair reported by the build system.
type Variable struct {
	Name  string
	Value string
}

// Variables preserves the order the build system printed its report
// in. A name may repeat; the last occurrence wins on lookup.
type Variables []Variable

func (vars Variables) Get(name string) (string, bool) {
	for i := len(vars) - 1; i >= 0; i-- {
		if vars[i].Name == name {
			return vars[i].Value, true
		}
	}
	return "", false
}

func (vars Variables) Map() map[string]string {
	m := make(map[string]string, len(vars))
	for _, v := range vars {
		m[v.Name] = v.Value
	}
	return m
}

// IncludeFlags renders the named variable's whitespace separated
// fields as compiler -I flags.
func (vars Variables) IncludeFlags(name string) (string, bool) {
	value, ok := vars.Get(name)
	if !ok {
		return "", false
	}
	return JoinWithPrefix(strings.Fields(value), "-I"), true
}
