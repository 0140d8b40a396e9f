package core

import "testing"

func TestConnSendAfterClose(t *testing.T) {
	conn := NewConn()
	conn.Close()

	if conn.Send(Payload{TypeField: "x"}) {
		t.Fatalf("send on a closed connection must fail")
	}
	// Double close must not panic.
	conn.Close()
}

func TestConnSendDropsWhenFull(t *testing.T) {
	conn := NewConn()

	delivered := 0
	for conn.Send(Payload{TypeField: "x"}) {
		delivered++
		if delivered > 10_000 {
			t.Fatalf("send never reported a full queue")
		}
	}
	if delivered == 0 {
		t.Fatalf("expected at least one delivery before the queue filled")
	}
}
