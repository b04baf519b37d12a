package messages_test

import (
	"testing"

	"taskvvts-cli/internal/messages"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnglishCatalog(t *testing.T) {
	c := messages.English()

	assert.Equal(t, "All fields are required.", c.T(messages.AllFieldsRequired))
	assert.Equal(t, "Only Pending tasks can be clocked in.", c.T(messages.ClockInRequiresPending))
	assert.Equal(t, "Login error: bad password", c.TData(messages.LoginError, map[string]any{"Reason": "bad password"}))
}

func TestCatalog_FallsBackToKey(t *testing.T) {
	c := messages.English()
	assert.Equal(t, "unknownKey", c.T("unknownKey"))
}

func TestCatalog_PortugueseAndFallback(t *testing.T) {
	c, err := messages.New(messages.LanguagePtBR, nil)
	require.NoError(t, err)
	assert.Equal(t, "Tarefa não encontrada.", c.T(messages.TaskNotFound))

	unknown, err := messages.New("de", nil)
	require.NoError(t, err)
	assert.Equal(t, "Task not found.", unknown.T(messages.TaskNotFound), "unsupported languages fall back to English")
}

func TestEveryIDHasEnglishText(t *testing.T) {
	c := messages.English()
	ids := []string{
		messages.AllFieldsRequired, messages.UsernameRequired, messages.NameRequired,
		messages.LastNameRequired, messages.EmailRequired, messages.EmailInvalid,
		messages.PasswordRequired, messages.DeadlineInvalid, messages.EstimateInvalid,
		messages.UsernameExists, messages.TaskNotFound, messages.ClockInRequiresPending,
		messages.ClockOutRequiresInProgress, messages.CompleteRequiresInProgress,
		messages.InvalidStatusFilter, messages.LoginFailure, messages.LoginUnexpected,
		messages.RegisterUnexpected, messages.ErrorFetchingTasks, messages.ErrorFetchingTask,
		messages.ErrorCreatingTask, messages.ErrorEditingTask, messages.ErrorDeletingTask,
		messages.ErrorUpdatingTask, messages.ErrorCheckingTime, messages.NoTitle,
		messages.NoDescription,
	}
	for _, id := range ids {
		assert.NotEqual(t, id, c.T(id), "missing English text for %s", id)
	}
}
