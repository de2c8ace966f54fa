package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aranaskd/blogctl/pkg/session"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Full sign-in flow against a stub API: exchange credentials for a token,
// fetch the identity it belongs to, publish the session, and reconcile the
// persisted record on the next start.
func TestLoginFlow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/login":
			var req map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			if req["email"] == "a@b.com" && req["password"] == "x" {
				json.NewEncoder(w).Encode(map[string]string{"access": "tok123"})
				return
			}
			json.NewEncoder(w).Encode(map[string]string{"error": "Incorrect email or password"})
		case "/users/details":
			if r.Header.Get("Authorization") != "Bearer tok123" {
				json.NewEncoder(w).Encode(map[string]string{"error": "Invalid token"})
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"user": map[string]any{"_id": "u1", "username": "alice", "isAdmin": false},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	dir := t.TempDir()
	store, err := session.NewStore(dir)
	require.NoError(t, err)

	client, err := New(Options{BaseURL: server.URL, Timeout: 2 * time.Second, Logger: zerolog.Nop()})
	require.NoError(t, err)

	mgr := session.NewManager(store, client, zerolog.Nop())
	client.SetTokenSource(mgr)

	ctx := context.Background()

	token, err := client.Login(ctx, "a@b.com", "x")
	require.NoError(t, err)
	require.Equal(t, "tok123", token)

	id, err := client.Details(ctx, token)
	require.NoError(t, err)

	mgr.SetSession(ctx, session.Session{
		UserID:   id.UserID,
		Username: id.Username,
		IsAdmin:  id.IsAdmin,
		Token:    token,
	})

	want := session.Session{UserID: "u1", Username: "alice", IsAdmin: false, Token: "tok123"}
	assert.Equal(t, want, mgr.Current())

	// Restart: a fresh manager over the same data dir reconciles back to
	// the same session.
	store2, err := session.NewStore(dir)
	require.NoError(t, err)
	client2, err := New(Options{BaseURL: server.URL, Timeout: 2 * time.Second, Logger: zerolog.Nop()})
	require.NoError(t, err)
	mgr2 := session.NewManager(store2, client2, zerolog.Nop())
	client2.SetTokenSource(mgr2)

	mgr2.Reconcile(ctx)
	assert.Equal(t, want, mgr2.Current())
}

// An expired token found at startup is cleared everywhere, leaving the
// client anonymous.
func TestReconcileExpiredTokenAgainstAPI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid token"})
	}))
	t.Cleanup(server.Close)

	store, err := session.NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Save(session.Record{Token: "expired", UserID: "u1", IsAdmin: true}))

	client, err := New(Options{BaseURL: server.URL, Timeout: 2 * time.Second, Logger: zerolog.Nop()})
	require.NoError(t, err)
	mgr := session.NewManager(store, client, zerolog.Nop())
	client.SetTokenSource(mgr)

	mgr.Reconcile(context.Background())

	assert.False(t, mgr.Current().Authenticated())
	assert.Nil(t, store.Load())
}
