package queue

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) SendWelcome(to, name, city string) error {
	args := m.Called(to, name, city)
	return args.Error(0)
}

// TestProcessMessageSendsWelcome - a valid event sends the welcome mail
func TestProcessMessageSendsWelcome(t *testing.T) {
	notifier := new(mockNotifier)
	notifier.On("SendWelcome", "maria@example.com", "Maria Lopez", "Denver").Return(nil)
	w := NewWorker(nil, notifier)

	body, _ := json.Marshal(ApplicantRegisteredPayload{
		ApplicantID: "app-1",
		Name:        "Maria Lopez",
		Email:       "maria@example.com",
		City:        "Denver",
	})

	assert.NoError(t, w.processMessage(body))
	notifier.AssertExpectations(t)
}

// TestProcessMessageRejectsMalformedJSON - bad bodies are rejected without notifying
func TestProcessMessageRejectsMalformedJSON(t *testing.T) {
	notifier := new(mockNotifier)
	w := NewWorker(nil, notifier)

	assert.Error(t, w.processMessage([]byte("{not json")))
	notifier.AssertNotCalled(t, "SendWelcome", mock.Anything, mock.Anything, mock.Anything)
}

// TestProcessMessageRequiresEmail - events without email are rejected
func TestProcessMessageRequiresEmail(t *testing.T) {
	notifier := new(mockNotifier)
	w := NewWorker(nil, notifier)

	body, _ := json.Marshal(ApplicantRegisteredPayload{ApplicantID: "app-1"})

	assert.Error(t, w.processMessage(body))
	notifier.AssertNotCalled(t, "SendWelcome", mock.Anything, mock.Anything, mock.Anything)
}

// TestProcessMessageNotifierFailure - mail failures reject the message
func TestProcessMessageNotifierFailure(t *testing.T) {
	notifier := new(mockNotifier)
	smtpErr := errors.New("smtp down")
	notifier.On("SendWelcome", mock.Anything, mock.Anything, mock.Anything).Return(smtpErr)
	w := NewWorker(nil, notifier)

	body, _ := json.Marshal(ApplicantRegisteredPayload{ApplicantID: "app-1", Email: "a@b.com"})

	assert.ErrorIs(t, w.processMessage(body), smtpErr)
}
