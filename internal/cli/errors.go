package cli

import (
	"errors"
	"fmt"

	"taskvvts-cli/internal/api"
	"taskvvts-cli/internal/page"
	"taskvvts-cli/internal/session"
)

type missingFlagError struct {
	flag string
}

func (e missingFlagError) Error() string {
	return fmt.Sprintf("missing required flag: --%s", e.flag)
}

func errMissingFlag(flag string) error {
	return missingFlagError{flag: flag}
}

type noTaskIDError struct{}

func (noTaskIDError) Error() string {
	return "no task id given and no task selected"
}

// hintFor suggests the next command for errors the user can fix.
func hintFor(err error) string {
	switch {
	case errors.Is(err, session.ErrNoToken), page.NextOf(err) == page.Login:
		return "run `taskvvts login`"
	case errors.Is(err, session.ErrNoSelectedTask), errors.As(err, new(noTaskIDError)):
		return "pass a task id or run `taskvvts tasks select <task-id>`"
	case api.KindOf(err) == api.KindTransport:
		return "is the API running? check --api / api_url"
	}
	return ""
}
