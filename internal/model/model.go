package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// LocalTimeLayout is the zone-less timestamp format used by the task API.
const LocalTimeLayout = "2006-01-02T15:04:05"

// TaskID accepts both numeric and string ids on the wire.
type TaskID string

func (id *TaskID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = TaskID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("task id: %w", err)
	}
	*id = TaskID(n.String())
	return nil
}

func (id TaskID) String() string { return string(id) }

// LocalTime is a wall-clock timestamp without zone information.
// It is interpreted in the local zone for display.
type LocalTime struct {
	time.Time
}

func NewLocalTime(t time.Time) LocalTime {
	return LocalTime{Time: t.Truncate(time.Second)}
}

var localTimeLayouts = []string{
	LocalTimeLayout,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
}

// ParseLocalTime parses the API timestamp forms (seconds are optional,
// fractional seconds and RFC3339 offsets are tolerated).
func ParseLocalTime(s string) (LocalTime, error) {
	s = strings.TrimSpace(s)
	for _, layout := range localTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return LocalTime{Time: t}, nil
		}
	}
	return LocalTime{}, fmt.Errorf("invalid timestamp %q (expected %s)", s, LocalTimeLayout)
}

func (t LocalTime) String() string {
	if t.IsZero() {
		return ""
	}
	return t.Time.Format(LocalTimeLayout)
}

func (t LocalTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.String())
}

func (t *LocalTime) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*t = LocalTime{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if strings.TrimSpace(s) == "" {
		*t = LocalTime{}
		return nil
	}
	v, err := ParseLocalTime(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

type Task struct {
	ID          TaskID     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Deadline    LocalTime  `json:"deadline"`
	Status      TaskStatus `json:"status"`

	// Optional fields, filled in by the server as the task progresses.
	EstimatedTime *int64     `json:"estimatedTime,omitempty"` // minutes
	TimeSpent     *int64     `json:"timeSpent,omitempty"`     // minutes
	StartTime     *LocalTime `json:"startTime,omitempty"`
	FinishTime    *LocalTime `json:"finishTime,omitempty"`
	Suggestion    *string    `json:"suggestion,omitempty"`
}

// TaskInput is the body of create and edit requests.
type TaskInput struct {
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Deadline      LocalTime `json:"deadline"`
	EstimatedTime *int64    `json:"estimatedTime,omitempty"`
}

// Credentials are built per login submission and never stored.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Profile is the registration body.
type Profile struct {
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// ErrorBody is the optional JSON error payload returned by the API.
type ErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// StatusBody wraps the single-value responses of the time tracking endpoints.
type StatusBody[T any] struct {
	Status T `json:"status"`
}
