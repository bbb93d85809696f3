package authctx

import (
	"context"
	"testing"
)

type testIdentity struct {
	Username string
}

func TestSetGet(t *testing.T) {
	ctx := Set(context.Background(), testIdentity{Username: "manu"})

	id, ok := Get[testIdentity](ctx)
	if !ok {
		t.Fatal("expected identity in context")
	}
	if id.Username != "manu" {
		t.Errorf("expected 'manu', got %q", id.Username)
	}
}

func TestGetMissing(t *testing.T) {
	_, ok := Get[testIdentity](context.Background())
	if ok {
		t.Error("expected no identity in empty context")
	}
}

func TestGetWrongType(t *testing.T) {
	ctx := Set(context.Background(), "just-a-string")
	_, ok := Get[testIdentity](ctx)
	if ok {
		t.Error("expected type mismatch to report not found")
	}
}

func TestMustGetPanicsWhenMissing(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for missing identity")
		}
	}()
	MustGet[testIdentity](context.Background())
}

func TestMustGet(t *testing.T) {
	ctx := Set(context.Background(), testIdentity{Username: "manu"})
	id := MustGet[testIdentity](ctx)
	if id.Username != "manu" {
		t.Errorf("expected 'manu', got %q", id.Username)
	}
}

func TestGetOrError(t *testing.T) {
	_, err := GetOrError[testIdentity](context.Background())
	if err != ErrNoIdentity {
		t.Errorf("expected ErrNoIdentity, got %v", err)
	}

	ctx := Set(context.Background(), testIdentity{Username: "manu"})
	id, err := GetOrError[testIdentity](ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.Username != "manu" {
		t.Errorf("expected 'manu', got %q", id.Username)
	}
}
