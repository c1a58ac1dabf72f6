package apiclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurogrid/storefront/core/apiclient"
	"github.com/neurogrid/storefront/core/validator"
)

func newServer(t *testing.T, h http.HandlerFunc) *apiclient.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return apiclient.New(srv.URL+"/api/", apiclient.WithHTTPClient(srv.Client()))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_Me_SendsBearer(t *testing.T) {
	t.Parallel()
	id := uuid.New()

	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/auth/me", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{"id": id, "email": "a@b.com", "full_name": "Ada"})
	})

	c.SetToken("tok-1")
	require.True(t, c.HasToken())

	u, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, "Ada", u.FullName)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	t.Parallel()

	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Successfully subscribed!"})
	})

	c.SetToken("tok")
	c.ClearToken()
	assert.False(t, c.HasToken())

	resp, err := c.CaptureEmail(context.Background(), apiclient.EmailCaptureRequest{Email: "a@b.com"})
	require.NoError(t, err)
	assert.Equal(t, "Successfully subscribed!", resp.Message)
}

func TestClient_Me_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"detail":"Could not validate credentials"}`, wantErr: apiclient.ErrUnauthorized},
		{name: "bad json", status: http.StatusOK, body: `{"id":`, wantErr: apiclient.ErrMalformedResponse},
		{name: "bad id", status: http.StatusOK, body: `{"id":"not-a-uuid"}`, wantErr: apiclient.ErrMalformedResponse},
		{name: "missing id", status: http.StatusOK, body: `{"email":"a@b.com"}`, wantErr: apiclient.ErrMalformedResponse},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.Me(context.Background())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClient_Login(t *testing.T) {
	t.Parallel()

	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req apiclient.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		if req.Password != "pw" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Incorrect email or password"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"access_token": "jwt", "token_type": "bearer"})
	})

	tok, err := c.Login(context.Background(), apiclient.LoginRequest{Email: "a@b.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "jwt", tok.AccessToken)
	assert.False(t, c.HasToken(), "login must not attach the token itself")

	_, err = c.Login(context.Background(), apiclient.LoginRequest{Email: "a@b.com", Password: "nope"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apiclient.ErrUnauthorized)
	assert.Equal(t, http.StatusUnauthorized, apiclient.StatusOf(err))
	assert.Equal(t, "Incorrect email or password", apiclient.MessageOf(err))
}

func TestClient_Login_MissingToken(t *testing.T) {
	t.Parallel()
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"token_type": "bearer"})
	})

	_, err := c.Login(context.Background(), apiclient.LoginRequest{Email: "a", Password: "b"})
	assert.ErrorIs(t, err, apiclient.ErrMalformedResponse)
}

func TestClient_Register_ValidationDetail(t *testing.T) {
	t.Parallel()
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/register", r.URL.Path)
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{{"loc": []string{"body", "email"}, "msg": "value is not a valid email address"}},
		})
	})

	_, err := c.Register(context.Background(), apiclient.RegisterRequest{Email: "x", Password: "y", FullName: "z"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, apiclient.ErrUnauthorized)
	assert.Equal(t, "value is not a valid email address", apiclient.MessageOf(err))
}

func TestClient_CreateCheckoutSession(t *testing.T) {
	t.Parallel()

	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/payments/checkout/session", r.URL.Path)
		var req apiclient.CheckoutRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		switch req.PackageID {
		case "starter":
			writeJSON(w, http.StatusOK, map[string]any{"url": "https://checkout.example.com/c/pay/cs_1", "session_id": "cs_1"})
		case "broken":
			writeJSON(w, http.StatusOK, map[string]any{"url": "not a url"})
		default:
			writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "Invalid package selected"})
		}
	})
	ctx := context.Background()

	sess, err := c.CreateCheckoutSession(ctx, apiclient.CheckoutRequest{PackageID: "starter", PaymentType: apiclient.PaymentTypeCourse, ItemID: "starter"})
	require.NoError(t, err)
	assert.Equal(t, "cs_1", sess.SessionID)

	_, err = c.CreateCheckoutSession(ctx, apiclient.CheckoutRequest{PackageID: "broken", PaymentType: apiclient.PaymentTypeCourse})
	assert.ErrorIs(t, err, apiclient.ErrMalformedResponse)

	_, err = c.CreateCheckoutSession(ctx, apiclient.CheckoutRequest{PackageID: "gold", PaymentType: apiclient.PaymentTypeCourse})
	assert.Equal(t, http.StatusBadRequest, apiclient.StatusOf(err))
	assert.Equal(t, "Invalid package selected", apiclient.MessageOf(err))
}

func TestClient_Transport(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := apiclient.New(base)
	_, err := c.Me(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, apiclient.ErrTransport)
	assert.Zero(t, apiclient.StatusOf(err))
}

func TestAPIError_Message(t *testing.T) {
	t.Parallel()

	err := error(&apiclient.APIError{Status: 500})
	assert.Contains(t, err.Error(), "500")
	assert.False(t, errors.Is(err, apiclient.ErrUnauthorized))
}

func TestClient_Health(t *testing.T) {
	t.Parallel()

	healthy := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{"status": "healthy", "service": "NeuroGrid AI Backend", "version": "1.0.0"})
	})
	st, err := healthy.ServiceStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", st.Version)
	assert.NoError(t, healthy.Health(context.Background()))

	degraded := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "degraded"})
	})
	assert.ErrorIs(t, degraded.Health(context.Background()), apiclient.ErrUnhealthy)
}

func TestClient_RequestID(t *testing.T) {
	t.Parallel()

	var (
		mu   sync.Mutex
		seen []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.Header.Get(apiclient.HeaderRequestID))
		mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"status": "healthy"})
	}))
	t.Cleanup(srv.Close)

	ids := func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), seen...)
	}

	c := apiclient.New(srv.URL + "/api")
	require.NoError(t, c.Health(context.Background()))
	require.NoError(t, c.Health(context.Background()))
	got := ids()
	require.Len(t, got, 2)
	_, err := uuid.Parse(got[0])
	assert.NoError(t, err)
	assert.NotEqual(t, got[0], got[1])

	fixed := apiclient.New(srv.URL+"/api", apiclient.WithRequestIDGenerator(func() string { return "req-1" }))
	require.NoError(t, fixed.Health(context.Background()))
	assert.Equal(t, "req-1", ids()[2])
}

func TestCheckoutRequest_Validation(t *testing.T) {
	t.Parallel()

	ok := apiclient.CheckoutRequest{PackageID: "starter", PaymentType: apiclient.PaymentTypeCourse, ItemID: "starter"}
	require.NoError(t, validator.ValidateStruct(&ok))

	bad := apiclient.CheckoutRequest{PaymentType: "subscription"}
	err := validator.ValidateStruct(&bad)
	require.ErrorIs(t, err, validator.ErrValidation)
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, []string{"payment_type", "item_id"}, verrs.Fields())
}
