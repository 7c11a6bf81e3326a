package tests

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/Altair788/AdHub/internal/agent/config"
)

func TestDefaultPath_ReturnsPathInHomeDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p, err := config.DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath returned error: %v", err)
	}

	want := filepath.Join(home, ".adhub", "credentials.json")
	if p != want {
		t.Fatalf("expected %q, got %q", want, p)
	}
}

func TestLoad_FileNotExists_ReturnsEmptyCredentials(t *testing.T) {
	p := filepath.Join(t.TempDir(), "no-such-file.json")

	creds, err := config.Load(p)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if creds == nil {
		t.Fatalf("expected non-nil creds")
	}
	if creds.LoggedIn() {
		t.Fatalf("expected empty creds, got %+v", *creds)
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a", "credentials.json") // вложенная директория

	want := &config.Credentials{
		Server:       "https://127.0.0.1:8080",
		Email:        "test@example.com",
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
	}

	if err := config.Save(p, want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got, err := config.Load(p)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if *got != *want {
		t.Fatalf("expected %+v, got %+v", *want, *got)
	}
	if !got.LoggedIn() {
		t.Fatalf("expected LoggedIn")
	}

	if runtime.GOOS != "windows" {
		st, err := os.Stat(p)
		if err != nil {
			t.Fatalf("Stat returned error: %v", err)
		}
		if perm := st.Mode().Perm(); perm&0o077 != 0 {
			t.Fatalf("expected no group/other permissions, got %o", perm)
		}
	}
}

func TestSave_TightensExistingFilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permissions are not enforced on windows")
	}
	p := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(p, []byte("{}"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := config.Save(p, &config.Credentials{AccessToken: "a"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	st, err := os.Stat(p)
	if err != nil {
		t.Fatalf("Stat returned error: %v", err)
	}
	if perm := st.Mode().Perm(); perm != 0o600 {
		t.Fatalf("expected 0600, got %o", perm)
	}
}

func TestLoad_InvalidJSON_ReturnsError(t *testing.T) {
	p := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(p, []byte("{bad json"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := config.Load(p); err == nil {
		t.Fatalf("expected error for invalid json")
	}
}

func TestClear(t *testing.T) {
	p := filepath.Join(t.TempDir(), "credentials.json")
	if err := config.Save(p, &config.Credentials{AccessToken: "a", RefreshToken: "r"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	if err := config.Clear(p); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if _, err := os.Stat(p); !os.IsNotExist(err) {
		t.Fatalf("expected file to be removed, got %v", err)
	}
	// повторный вызов не падает
	if err := config.Clear(p); err != nil {
		t.Fatalf("second Clear returned error: %v", err)
	}
}
