package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestLocalStoragePutGet(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/receipts/")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx := context.Background()

	if err := s.Put(ctx, "receipts/u1/r1.json", strings.NewReader(`{"ok":true}`), "application/json"); err != nil {
		t.Fatalf("put: %v", err)
	}
	rc, err := s.Get(ctx, "receipts/u1/r1.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	if string(body) != `{"ok":true}` {
		t.Fatalf("unexpected body %q", body)
	}

	if got := s.GetURL("receipts/u1/r1.json"); got != "http://localhost:8080/receipts/receipts/u1/r1.json" {
		t.Fatalf("unexpected url %q", got)
	}
}

func TestLocalStorageStaysInsideBase(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir, "")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := s.Put(context.Background(), "../../escape.txt", strings.NewReader("x"), "text/plain"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := s.Get(context.Background(), "escape.txt"); err != nil {
		t.Fatalf("expected object under base dir: %v", err)
	}
	if _, err := s.Get(context.Background(), "missing.txt"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
