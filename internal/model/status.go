package model

import (
	"fmt"
	"strings"
)

type TaskStatus string

const (
	StatusPending      TaskStatus = "PENDING"
	StatusInProgress   TaskStatus = "IN_PROGRESS"
	StatusCompleted    TaskStatus = "COMPLETED"
	StatusTimeExceeded TaskStatus = "TIME_EXCEEDED"
)

// Statuses lists every known status in lifecycle order.
func Statuses() []TaskStatus {
	return []TaskStatus{StatusPending, StatusInProgress, StatusCompleted, StatusTimeExceeded}
}

func (s TaskStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	case StatusTimeExceeded:
		return "Time Exceeded"
	case "":
		return "Unknown"
	default:
		return string(s)
	}
}

func (s TaskStatus) IsEndState() bool {
	return s == StatusCompleted
}

// ParseStatus accepts wire ids, display labels and dashed forms,
// case-insensitively ("in-progress", "In Progress", "IN_PROGRESS").
func ParseStatus(s string) (TaskStatus, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	switch norm {
	case "PENDING", "TODO":
		return StatusPending, nil
	case "IN_PROGRESS", "INPROGRESS", "DOING":
		return StatusInProgress, nil
	case "COMPLETED", "COMPLETE", "DONE":
		return StatusCompleted, nil
	case "TIME_EXCEEDED", "TIMEEXCEEDED", "EXCEEDED":
		return StatusTimeExceeded, nil
	case "":
		return "", fmt.Errorf("invalid status: empty")
	default:
		return "", fmt.Errorf("invalid status: %s", strings.TrimSpace(s))
	}
}
