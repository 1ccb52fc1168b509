package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aure/fgtusage/internal/models"
)

func TestDiscordNotifier_Send(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantErr    bool
	}{
		{name: "ok returns no error", statusCode: http.StatusOK},
		{name: "no content returns no error", statusCode: http.StatusNoContent},
		{name: "server error returns error", statusCode: http.StatusInternalServerError, wantErr: true},
		{name: "bad request returns error", statusCode: http.StatusBadRequest, wantErr: true},
		{name: "rate limited returns error", statusCode: http.StatusTooManyRequests, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer srv.Close()

			d := NewDiscordNotifier(srv.URL, nil)
			err := d.Send(context.Background(), models.NotificationMessage{MonthLabel: "July 2025", UsageGiB: 1})

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var notifyErr *NotifyError
			require.True(t, errors.As(err, &notifyErr), "want *NotifyError, got %T", err)
			assert.Equal(t, tt.statusCode, notifyErr.StatusCode)
			assert.Equal(t, "discord", notifyErr.Notifier)
		})
	}
}

func TestDiscordNotifier_NotifyBody(t *testing.T) {
	var (
		gotMethod      string
		gotContentType string
		gotBody        []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		var err error
		gotBody, err = io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	d := NewDiscordNotifier(srv.URL, nil)
	d.clock = clockwork.NewFakeClockAt(time.Date(2025, time.July, 31, 23, 0, 0, 0, time.Local))

	require.NoError(t, d.Notify(context.Background(), 2.345))

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Contains(t, gotContentType, "application/json")

	var payload map[string]string
	require.NoError(t, json.Unmarshal(gotBody, &payload))
	assert.Equal(t, map[string]string{
		"content": "Your monthly usage for July 2025 is 2.35 GiB",
	}, payload)
}

func TestDiscordNotifier_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	d := NewDiscordNotifier(url, nil)
	err := d.Notify(context.Background(), 1)

	var notifyErr *NotifyError
	require.True(t, errors.As(err, &notifyErr))
	assert.Zero(t, notifyErr.StatusCode)
}

func TestNotifyError_Message(t *testing.T) {
	err := &NotifyError{Notifier: "discord", Err: errors.New("webhook returned status 500")}
	assert.Equal(t, "discord webhook failed: webhook returned status 500", err.Error())

	bare := &NotifyError{Err: errors.New("boom")}
	assert.Equal(t, "webhook failed: boom", bare.Error())
}
