package redis

import (
	"context"
	"testing"
	"time"
)

func TestConnect_UnreachableAddress(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	store, err := Connect(ctx, Config{Addr: "127.0.0.1:1"})
	if err == nil {
		t.Fatalf("expected an error for an unreachable address")
	}
	if store != nil {
		t.Fatalf("no store must be returned on failure")
	}
}

func TestSessionStore_KeyNamespacing(t *testing.T) {
	s := &SessionStore{}
	if got := s.key("abc"); got != "session:abc" {
		t.Fatalf("unexpected key %q", got)
	}
}
