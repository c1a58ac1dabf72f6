package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurogrid/storefront"
	"github.com/neurogrid/storefront/core/logger"
	"github.com/neurogrid/storefront/internal/cli"
)

type backend struct {
	*httptest.Server
	checkouts atomic.Int32
	captures  atomic.Int32
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{}
	id := uuid.New()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["password"] != "secret" {
			reply(w, http.StatusUnauthorized, map[string]any{"detail": "Incorrect email or password"})
			return
		}
		reply(w, http.StatusOK, map[string]any{"access_token": "tok", "token_type": "bearer"})
	})
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			reply(w, http.StatusUnauthorized, map[string]any{"detail": "Could not validate credentials"})
			return
		}
		reply(w, http.StatusOK, map[string]any{"id": id, "email": "user@example.com", "full_name": "Test User"})
	})
	mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, _ *http.Request) {
		reply(w, http.StatusOK, map[string]any{"success": true, "message": "User registered successfully"})
	})
	mux.HandleFunc("POST /api/email/capture", func(w http.ResponseWriter, _ *http.Request) {
		b.captures.Add(1)
		reply(w, http.StatusOK, map[string]any{"success": true, "message": "Welcome to the list!"})
	})
	mux.HandleFunc("POST /api/payments/checkout/session", func(w http.ResponseWriter, r *http.Request) {
		b.checkouts.Add(1)
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		reply(w, http.StatusOK, map[string]any{"url": "https://checkout.example.com/" + req["item_id"]})
	})

	b.Server = httptest.NewServer(mux)
	t.Cleanup(b.Close)
	return b
}

func reply(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type stubPrompter struct {
	creds cli.Credentials
	email string
	asked int
}

func (s *stubPrompter) Credentials(_ string, _ bool, prefill cli.Credentials) (cli.Credentials, error) {
	s.asked++
	c := s.creds
	if prefill.Email != "" {
		c.Email = prefill.Email
	}
	return c, nil
}

func (s *stubPrompter) Email(string) (string, error) {
	s.asked++
	return s.email, nil
}

type harness struct {
	cfg      storefront.Config
	prompter *stubPrompter
}

func newHarness(t *testing.T, b *backend) *harness {
	t.Helper()
	return &harness{
		cfg: storefront.Config{
			APIBaseURL:  b.URL + "/api",
			HTTPTimeout: 5 * time.Second,
			TokenStore:  storefront.TokenStoreFile,
			TokenFile:   filepath.Join(t.TempDir(), "session.json"),
			EmailSource: "cli",
		},
		prompter: &stubPrompter{
			creds: cli.Credentials{Email: "user@example.com", Password: "secret", FullName: "Test User"},
			email: "user@example.com",
		},
	}
}

func (h *harness) run(args ...string) (string, error) {
	var out bytes.Buffer
	root := cli.NewRootCommand(
		cli.WithConfig(h.cfg),
		cli.WithPrompter(h.prompter),
		cli.WithAppOptions(storefront.WithLogger(logger.Discard())),
	)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPackages(t *testing.T) {
	t.Parallel()
	h := newHarness(t, newBackend(t))

	out, err := h.run("packages")
	require.NoError(t, err)
	assert.Contains(t, out, "Neural Starter Package")
	assert.Contains(t, out, "$599")
	assert.Contains(t, out, "Weekly 1-on-1 Mentorship")
}

func TestBuy_RequiresLogin(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	h := newHarness(t, b)

	_, err := h.run("buy", "starter")
	require.Error(t, err)
	assert.Equal(t, "Please log in to purchase a package.", storefront.Message(err))
	assert.Equal(t, int32(0), b.checkouts.Load())
	assert.Zero(t, h.prompter.asked)
}

func TestLoginPersistsAcrossRuns(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	h := newHarness(t, b)

	out, err := h.run("login", "--email", "user@example.com", "--password", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as Test User")

	out, err = h.run("whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "user@example.com")

	out, err = h.run("buy", "starter")
	require.NoError(t, err)
	assert.Contains(t, out, "https://checkout.example.com/starter")
	assert.Equal(t, int32(1), b.checkouts.Load())

	out, err = h.run("logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out successfully.")

	out, err = h.run("logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in.")
}

func TestLogin_Rejected(t *testing.T) {
	t.Parallel()
	h := newHarness(t, newBackend(t))

	_, err := h.run("login", "--email", "user@example.com", "--password", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Incorrect email or password", storefront.Message(err))
}

func TestConsult_PromptsForLoginThenResumes(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	h := newHarness(t, b)

	out, err := h.run("consult")
	require.NoError(t, err)
	assert.Equal(t, 1, h.prompter.asked)
	assert.Contains(t, out, "Please log in to continue.")
	assert.Contains(t, out, "https://checkout.example.com/consultation")
}

func TestLearn_CapturesEmailWhenSignedOut(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	h := newHarness(t, b)

	out, err := h.run("learn")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome to the list!")
	assert.Equal(t, int32(1), b.captures.Load())
}

func TestLearn_NoInput(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	h := newHarness(t, b)

	_, err := h.run("learn", "--no-input")
	assert.ErrorIs(t, err, cli.ErrInputRequired)
	assert.Equal(t, int32(0), b.captures.Load())
}

func TestSubscribe(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	h := newHarness(t, b)

	out, err := h.run("subscribe", "user@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome to the list!")
	assert.Zero(t, h.prompter.asked)
}

func TestRegister(t *testing.T) {
	t.Parallel()
	h := newHarness(t, newBackend(t))

	out, err := h.run("register", "--email", "new@example.com", "--password", "secret", "--name", "New User")
	require.NoError(t, err)
	assert.Contains(t, out, "User registered successfully")
	assert.Contains(t, out, "storefront login")
}

func TestStatus(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	h := newHarness(t, b)

	// The fake backend has no health route, so the API check fails.
	out, err := h.run("status")
	require.Error(t, err)
	assert.Contains(t, out, "api")
	assert.Contains(t, out, "unavailable")
	assert.Contains(t, out, "Not logged in.")
}
