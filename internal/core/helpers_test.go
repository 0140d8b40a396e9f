package core

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func mustEvent(t *testing.T, conn *Conn, wantType string) Payload {
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

func mustNoEvent(t *testing.T, conn *Conn) {
	t.Helper()

	select {
	case ev := <-conn.Outbound():
		t.Fatalf("expected no event, got %+v", ev)
	default:
	}
}
