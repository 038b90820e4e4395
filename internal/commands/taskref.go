package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Num int    // 1-based position in the current list; 0 if ID is set
	ID  string // task id; empty if Num is set
}

// IsNum reports whether the reference is positional.
func (r TaskRef) IsNum() bool { return r.ID == "" }

func (r TaskRef) String() string {
	if r.IsNum() {
		return strconv.Itoa(r.Num)
	}
	return r.ID
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// idPrefix forces the reference to be read as an id.
const idPrefix = "id:"

// ParseTaskRef parses a task reference from the first arg and returns the
// remaining args.
//
// Parsing rules:
// 1. "id:<id>" → task id
// 2. All digits → position in the current list
// 3. Anything else → task id
func ParseTaskRef(args []string) (TaskRef, []string, error) {
	if len(args) == 0 {
		return TaskRef{}, nil, ErrTaskRefRequired
	}

	first := strings.TrimSpace(args[0])
	rest := args[1:]

	if strings.HasPrefix(first, idPrefix) {
		id := strings.TrimSpace(strings.TrimPrefix(first, idPrefix))
		if id == "" {
			return TaskRef{}, nil, fmt.Errorf("invalid task reference: %s", first)
		}
		return TaskRef{ID: id}, rest, nil
	}

	if isAllDigits(first) {
		num, err := strconv.Atoi(first)
		if err != nil {
			return TaskRef{}, nil, fmt.Errorf("invalid task reference: %s", first)
		}
		return TaskRef{Num: num}, rest, nil
	}

	if first == "" {
		return TaskRef{}, nil, ErrTaskRefRequired
	}
	return TaskRef{ID: first}, rest, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
