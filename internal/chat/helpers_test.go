package chat

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"rwci-server/internal/auth"
	"rwci-server/internal/core"
	"rwci-server/internal/store/sqlite"
)

var testChannels = []string{"general", "test", "test2", "spam"}

func newTestService(t *testing.T) *Service {
	t.Helper()

	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	jwtConfig := &auth.JWTConfig{
		Secret:   []byte("test-secret-change-me"),
		Issuer:   "test",
		Audience: "test",
		TTL:      time.Hour,
	}
	authService := auth.NewService(st, jwtConfig)

	logger := zerolog.Nop()
	registry := core.NewRegistry()
	router := core.NewRouter(&logger)

	return NewService(registry, router, authService, testChannels, "general", &logger)
}

func frame(t *testing.T, fields map[string]any) []byte {
	t.Helper()
	raw, err := json.Marshal(fields)
	if err != nil {
		t.Fatalf("marshal frame: %v", err)
	}
	return raw
}

func sendAuth(t *testing.T, s *Service, conn *core.Conn, username, password string) {
	t.Helper()
	s.HandleFrame(context.Background(), conn, frame(t, map[string]any{
		"type":     "auth",
		"username": username,
		"password": password,
	}))
}

// authOnline authenticates a fresh connection and drains the four snapshot
// replies so later assertions see only what happens next.
func authOnline(t *testing.T, s *Service, username, password string) *core.Conn {
	t.Helper()

	conn := core.NewConn()
	sendAuth(t, s, conn, username, password)

	ev := mustEvent(t, conn, "auth")
	if ev["success"] != true {
		t.Fatalf("auth for %s failed: %+v", username, ev)
	}
	mustEvent(t, conn, "user_list")
	mustEvent(t, conn, "channel_list")
	mustEvent(t, conn, "default_channel")
	return conn
}

func mustEvent(t *testing.T, conn *core.Conn, wantType string) core.Payload {
	t.Helper()

	select {
	case ev := <-conn.Outbound():
		if ev.Type() != wantType {
			t.Fatalf("expected event type %q, got %+v", wantType, ev)
		}
		return ev
	case <-time.After(2 * time.Second):
		t.Fatalf("expected event type %q not received", wantType)
	}
	return nil
}

func mustNoEvent(t *testing.T, conn *core.Conn) {
	t.Helper()

	select {
	case ev := <-conn.Outbound():
		t.Fatalf("expected no event, got %+v", ev)
	default:
	}
}
