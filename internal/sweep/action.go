package sweep

import (
	"fmt"
	"strings"
)

// Action selects which engine runs against a region's default VPC.
type Action string

const (
	ActionDelete Action = "delete"
	ActionModify Action = "modify"
)

// ParseAction validates the user-supplied action.
func ParseAction(s string) (Action, error) {
	switch a := Action(strings.TrimSpace(s)); a {
	case ActionDelete, ActionModify:
		return a, nil
	}
	return "", fmt.Errorf("%w %q: use %q or %q", ErrInvalidAction, s, ActionDelete, ActionModify)
}
