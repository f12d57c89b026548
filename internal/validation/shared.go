package validation

import (
	"fmt"
	"sort"
	"strings"
)

// Error is a validation failure keyed by form field. Handlers render it as
// a 400 response or a flash message.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}
