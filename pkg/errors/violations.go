package errors

import (
	"fmt"
	"strings"
)

// Violations is an ordered mapping from parameter name to the messages
// recorded against it. Parameters keep the order in which they were first
// added and each parameter keeps the order of its messages.
//
// The zero value is empty and ready to use. Violations is not safe for
// concurrent mutation; it is built by a single validation pass and then
// treated as read-only.
type Violations struct {
	order    []string
	messages map[string][]string
}

// Add appends message to the list recorded for parameter.
func (v *Violations) Add(parameter, message string) {
	if v.messages == nil {
		v.messages = make(map[string][]string)
	}
	if _, ok := v.messages[parameter]; !ok {
		v.order = append(v.order, parameter)
	}
	v.messages[parameter] = append(v.messages[parameter], message)
}

// Len returns the number of parameters with at least one violation.
func (v *Violations) Len() int {
	if v == nil {
		return 0
	}
	return len(v.order)
}

// Empty reports whether no violation has been recorded.
func (v *Violations) Empty() bool {
	return v.Len() == 0
}

// Parameters returns the violated parameter names in insertion order.
func (v *Violations) Parameters() []string {
	if v == nil {
		return nil
	}
	out := make([]string, len(v.order))
	copy(out, v.order)
	return out
}

// Messages returns a copy of the messages recorded for parameter.
func (v *Violations) Messages(parameter string) []string {
	if v == nil {
		return nil
	}
	msgs := v.messages[parameter]
	if msgs == nil {
		return nil
	}
	out := make([]string, len(msgs))
	copy(out, msgs)
	return out
}

// Map returns a copy of the violations as a plain map. Ordering is lost;
// use [Violations.Parameters] when order matters.
func (v *Violations) Map() map[string][]string {
	out := make(map[string][]string, v.Len())
	for _, p := range v.Parameters() {
		out[p] = v.Messages(p)
	}
	return out
}

// String renders the violations as "Param: msg, msg; Param: msg".
func (v *Violations) String() string {
	if v.Empty() {
		return ""
	}
	parts := make([]string, 0, len(v.order))
	for _, p := range v.order {
		parts = append(parts, fmt.Sprintf("%s: %s", p, strings.Join(v.messages[p], ", ")))
	}
	return strings.Join(parts, "; ")
}
