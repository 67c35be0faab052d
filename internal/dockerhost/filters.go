package dockerhost

import (
	"fmt"
	"strings"
)

// ParseFilters turns CLI filter arguments of the form "key=value" into the
// key -> value-list map the engine's filter query expects. Values repeated
// under the same key OR together; distinct keys AND together. Only the
// first "=" splits a pair, so "label=com.example.version=1.0" keeps the
// whole "com.example.version=1.0" as the value.
func ParseFilters(filterArgs []string) (map[string][]string, error) {
	filters := make(map[string][]string)
	for _, filter := range filterArgs {
		key, value, ok := strings.Cut(filter, "=")
		if !ok {
			return nil, fmt.Errorf("invalid filter format: %q, expected 'key=value'", filter)
		}
		filters[key] = append(filters[key], value)
	}
	return filters, nil
}
