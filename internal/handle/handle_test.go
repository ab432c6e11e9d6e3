package handle

import (
	"context"
	"errors"
	"testing"
)

func TestFrom_Missing(t *testing.T) {
	_, err := From(context.Background())
	if !errors.Is(err, ErrMissingHandle) {
		t.Fatalf("expected ErrMissingHandle, got %v", err)
	}
}

func TestFrom_Blank(t *testing.T) {
	ctx := WithHandle(context.Background(), Handle("   "))
	if _, err := From(ctx); !errors.Is(err, ErrMissingHandle) {
		t.Fatalf("expected ErrMissingHandle for blank handle, got %v", err)
	}
}

func TestFrom_RoundTrip(t *testing.T) {
	ctx := WithHandle(context.Background(), Normalize("  tourist "))
	h, err := From(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h != "tourist" {
		t.Errorf("handle = %q, want %q", h, "tourist")
	}
}
