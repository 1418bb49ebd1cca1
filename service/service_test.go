package service

import (
	"os"
	"path/filepath"
	"testing"
)

const k1Config = "2\n-a\n-bB\n\na:b\nb:a\n"

func writeK1Fixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "k1.cfg")
	if err := os.WriteFile(path, []byte(k1Config), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestServiceCount(t *testing.T) {
	svc := New()
	path := writeK1Fixture(t)

	resp, err := svc.Count(Request{Arrangement: path, Keys: "ab", Min: 1, Max: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.PerStart["a"] == "" || resp.PerStart["b"] == "" {
		t.Fatalf("missing per-start counts: %+v", resp)
	}
	if resp.Total == "" || resp.Total == "0" {
		t.Fatalf("unexpected total: %q", resp.Total)
	}
}

func TestServiceCountCachesKeyboard(t *testing.T) {
	svc := New()
	path := writeK1Fixture(t)

	if _, err := svc.Count(Request{Arrangement: path, Keys: "a", Min: 1, Max: 1}); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if len(svc.keyboards) != 1 {
		t.Fatalf("expected 1 cached keyboard, got %d", len(svc.keyboards))
	}
	if _, err := svc.Count(Request{Arrangement: path, Keys: "b", Min: 1, Max: 1}); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if len(svc.keyboards) != 1 {
		t.Fatalf("expected cache reuse, got %d entries", len(svc.keyboards))
	}
}

func TestServiceEnumerate(t *testing.T) {
	svc := New()
	path := writeK1Fixture(t)

	var got []string
	err := svc.Enumerate(Request{Arrangement: path, Keys: "a", Min: 1, Max: 2}, func(s string) {
		got = append(got, s)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("expected at least one emitted string")
	}
}

func TestServiceEnumerateWithRestart(t *testing.T) {
	svc := New()
	path := writeK1Fixture(t)

	var full []string
	err := svc.Enumerate(Request{Arrangement: path, Keys: "a", Min: 2, Max: 3}, func(s string) {
		full = append(full, s)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(full) < 2 {
		t.Fatalf("expected multiple emissions, got %v", full)
	}

	var resumed []string
	err = svc.Enumerate(Request{Arrangement: path, Keys: "a", Min: 2, Max: 3, Restart: full[0]}, func(s string) {
		resumed = append(resumed, s)
	})
	if err != nil {
		t.Fatalf("unexpected error on restart: %v", err)
	}
	if len(resumed) == 0 {
		t.Fatal("expected at least one emission from restart")
	}
}

func TestServiceCountRejectsUnknownArrangement(t *testing.T) {
	svc := New()
	if _, err := svc.Count(Request{Arrangement: "/nonexistent/path.cfg", Keys: "a", Min: 1, Max: 1}); err == nil {
		t.Fatal("expected error for unreadable arrangement file")
	}
}

func TestServiceCountRejectsUnknownStartKey(t *testing.T) {
	svc := New()
	path := writeK1Fixture(t)
	if _, err := svc.Count(Request{Arrangement: path, Keys: "z", Min: 1, Max: 1}); err == nil {
		t.Fatal("expected error for unknown start key")
	}
}

func TestStatusForMapsKinds(t *testing.T) {
	svc := New()
	path := writeK1Fixture(t)

	_, err := svc.Count(Request{Arrangement: path, Keys: "z", Min: 1, Max: 1})
	if err == nil {
		t.Fatal("expected error")
	}
	if status := statusFor(err); status != 400 {
		t.Fatalf("status = %d, want 400", status)
	}
	if status := statusFor(nil); status != 500 {
		t.Fatalf("status for nil-kind error = %d, want 500", status)
	}
}
