package tasklist

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/nibzard/todo-go/internal/task"
)

// ParseIndex reads a 1-based task index typed by a user. Anything that is
// not an integer is a type error. An integer too large for an int is an
// index error; other range checks happen in the manager.
func ParseIndex(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if errors.Is(err, strconv.ErrRange) {
		return 0, &IndexError{Index: n, Len: -1, Input: s}
	}
	if err != nil {
		return 0, &task.TypeError{Param: "index", Value: s, Want: "an integer"}
	}
	return n, nil
}

// ParsePriority reads an optional priority typed by a user. Empty input
// means no priority.
func ParsePriority(s string) (task.Priority, error) {
	return task.ParsePriority(s)
}

// ParseDeadline reads an optional YYYY-MM-DD deadline typed by a user. Empty
// input means no deadline.
func ParseDeadline(s string) (time.Time, error) {
	return task.ParseDate(s)
}
