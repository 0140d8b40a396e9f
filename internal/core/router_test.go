package core

import (
	"context"
	"testing"
)

func testContext(conn *Conn) *Context {
	return &Context{Context: context.Background(), Conn: conn}
}

func TestDispatchInjectsTypeFromRegisteredName(t *testing.T) {
	r := NewRouter(testLogger())
	r.Register("user_list", func(_ *Context, _ Fields) (Payload, error) {
		return Payload{"users": []string{"alice"}}, nil
	})

	conn := NewConn()
	r.Dispatch(testContext(conn), []byte(`{"type":"user_list"}`))

	ev := mustEvent(t, conn, "user_list")
	users, ok := ev["users"].([]string)
	if !ok || len(users) != 1 || users[0] != "alice" {
		t.Fatalf("unexpected payload: %+v", ev)
	}
}

func TestDispatchKeepsExplicitTag(t *testing.T) {
	r := NewRouter(testLogger())
	r.Register("ping", func(_ *Context, _ Fields) (Payload, error) {
		return Payload{TypeField: "pong"}, nil
	})

	conn := NewConn()
	r.Dispatch(testContext(conn), []byte(`{"type":"ping"}`))

	mustEvent(t, conn, "pong")
}

func TestDispatchNilResultSendsNothing(t *testing.T) {
	r := NewRouter(testLogger())
	called := false
	r.Register("fire_and_forget", func(_ *Context, _ Fields) (Payload, error) {
		called = true
		return nil, nil
	})

	conn := NewConn()
	r.Dispatch(testContext(conn), []byte(`{"type":"fire_and_forget"}`))

	if !called {
		t.Fatalf("handler was not invoked")
	}
	mustNoEvent(t, conn)
}

func TestDispatchMalformedFrameDropped(t *testing.T) {
	r := NewRouter(testLogger())
	r.Register("auth", func(_ *Context, _ Fields) (Payload, error) {
		t.Fatalf("handler must not run for a malformed frame")
		return nil, nil
	})

	conn := NewConn()
	r.Dispatch(testContext(conn), []byte(`{"type":`))

	// Frame dropped, nothing sent, connection still usable.
	mustNoEvent(t, conn)
	if !conn.Send(Payload{TypeField: "probe"}) {
		t.Fatalf("connection should still accept events")
	}
}

func TestDispatchUnknownCommandDropped(t *testing.T) {
	r := NewRouter(testLogger())
	conn := NewConn()

	r.Dispatch(testContext(conn), []byte(`{"type":"warp"}`))
	r.Dispatch(testContext(conn), []byte(`{"no_type":"here"}`))

	mustNoEvent(t, conn)
}

func TestDispatchCoreErrorRejectsToSender(t *testing.T) {
	r := NewRouter(testLogger())
	r.Register("message", func(_ *Context, _ Fields) (Payload, error) {
		return nil, ErrUnauthenticatedUsage()
	})

	conn := NewConn()
	r.Dispatch(testContext(conn), []byte(`{"type":"message"}`))

	ev := mustEvent(t, conn, EventError)
	if ev["code"] != ErrCodeUnauthenticated {
		t.Fatalf("unexpected error payload: %+v", ev)
	}
}

func TestRegisterLastWriteWins(t *testing.T) {
	r := NewRouter(testLogger())
	r.Register("greet", func(_ *Context, _ Fields) (Payload, error) {
		return Payload{"v": "old"}, nil
	})
	r.Register("greet", func(_ *Context, _ Fields) (Payload, error) {
		return Payload{"v": "new"}, nil
	})

	conn := NewConn()
	r.Dispatch(testContext(conn), []byte(`{"type":"greet"}`))

	ev := mustEvent(t, conn, "greet")
	if ev["v"] != "new" {
		t.Fatalf("expected replacement handler to win, got %+v", ev)
	}
}

func TestRegisterWireNameAlias(t *testing.T) {
	// The wire name is free-form; reserved or hyphenated names register
	// like any other.
	r := NewRouter(testLogger())
	r.Register("direct-message", func(_ *Context, _ Fields) (Payload, error) {
		return Payload{"ok": true}, nil
	})

	conn := NewConn()
	r.Dispatch(testContext(conn), []byte(`{"type":"direct-message"}`))

	mustEvent(t, conn, "direct-message")
}

func TestInvokeDoesNotSend(t *testing.T) {
	r := NewRouter(testLogger())
	r.Register("user_list", func(_ *Context, _ Fields) (Payload, error) {
		return Payload{"users": []string{}}, nil
	})

	conn := NewConn()
	out, err := r.Invoke("user_list", testContext(conn), nil)
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if out.Type() != "user_list" {
		t.Fatalf("invoke must tag the result, got %+v", out)
	}
	mustNoEvent(t, conn)
}
