package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	pausa "github.com/projetopausa/Site-Pausa-V1"
	"github.com/stretchr/testify/require"
)

func testContact() pausa.Contact {
	return pausa.Contact{
		ID:                  "3f6c0d5e-0000-4000-8000-000000000000",
		Name:                "Ana",
		Whatsapp:            "(11) 91234-5678",
		PhoneDigits:         "11912345678",
		AcceptCommunication: true,
		Timestamp:           time.Date(2026, 1, 8, 12, 0, 0, 0, time.UTC),
		Source:              pausa.Source,
	}
}

func TestSaveContactDeliversPayload(t *testing.T) {
	var got webhookPayload
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"result":"success"}`))
	}))
	defer upstream.Close()

	c := NewClient(Config{WebhookURL: upstream.URL})
	contact := testContact()

	require.NoError(t, c.SaveContact(context.Background(), contact))
	require.Equal(t, contact.ID, got.ID)
	require.Equal(t, "11912345678", got.PhoneDigits)
	require.Equal(t, "2026-01-08T12:00:00Z", got.Timestamp)
	require.Equal(t, pausa.Source, got.Source)
}

func TestSaveContactFollowsRedirect(t *testing.T) {
	final := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":"success"}`))
	}))
	defer final.Close()

	redirecting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, final.URL, http.StatusFound)
	}))
	defer redirecting.Close()

	c := NewClient(Config{WebhookURL: redirecting.URL})

	require.NoError(t, c.SaveContact(context.Background(), testContact()))
}

func TestSaveContactRejectsNonOKStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	c := NewClient(Config{WebhookURL: upstream.URL})

	err := c.SaveContact(context.Background(), testContact())
	require.ErrorIs(t, err, pausa.ErrUpstreamProtocol)
}

func TestSaveContactRejectsNonJSONBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>maintenance</html>"))
	}))
	defer upstream.Close()

	c := NewClient(Config{WebhookURL: upstream.URL})

	err := c.SaveContact(context.Background(), testContact())
	require.ErrorIs(t, err, pausa.ErrUpstreamProtocol)
}

func TestSaveContactRejectsMissingSuccessMarker(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":"error"}`))
	}))
	defer upstream.Close()

	c := NewClient(Config{WebhookURL: upstream.URL})

	err := c.SaveContact(context.Background(), testContact())
	require.ErrorIs(t, err, pausa.ErrUpstreamProtocol)
}

func TestSaveContactSingleAttemptOnTimeout(t *testing.T) {
	var attempts int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"result":"success"}`))
	}))
	defer upstream.Close()

	c := NewClient(Config{WebhookURL: upstream.URL, Timeout: 20 * time.Millisecond})

	err := c.SaveContact(context.Background(), testContact())
	require.ErrorIs(t, err, pausa.ErrStoreUnavailable)
	require.Equal(t, int32(1), atomic.LoadInt32(&attempts), "a failed delivery must not be retried")
}

func TestSaveContactUnreachableUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close()

	c := NewClient(Config{WebhookURL: upstream.URL})

	err := c.SaveContact(context.Background(), testContact())
	require.ErrorIs(t, err, pausa.ErrStoreUnavailable)
}

func TestPingReportsReachable(t *testing.T) {
	c := NewClient(Config{WebhookURL: "https://script.google.com/macros/s/unused/exec"})
	require.NoError(t, c.Ping(context.Background()))
}

func TestStatusLogEchoesAndListsNothing(t *testing.T) {
	sl := NewStatusLog()

	check := pausa.StatusCheck{ID: "abc", ClientName: "uptime-bot", Timestamp: time.Now().UTC()}
	require.NoError(t, sl.CreateStatusCheck(context.Background(), check))

	checks, err := sl.ListStatusChecks(context.Background())
	require.NoError(t, err)
	require.Empty(t, checks)
	require.NotNil(t, checks)
}
