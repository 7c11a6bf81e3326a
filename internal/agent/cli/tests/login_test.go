package tests

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/Altair788/AdHub/internal/agent/cli"
	"github.com/Altair788/AdHub/internal/agent/config"
	serr "github.com/Altair788/AdHub/internal/shared/errors"
	"github.com/Altair788/AdHub/internal/shared/models"
)

func loginHandler(t *testing.T, wantPassword string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /users/login", func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Email != "test@example.com" {
			t.Fatalf("expected email test@example.com, got %q", req.Email)
		}
		if req.Password != wantPassword {
			writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: serr.ErrInvalidCredentials.Error()})
			return
		}
		writeJSON(w, http.StatusOK, models.TokenResponse{AccessToken: "access-1", RefreshToken: "refresh-1"})
	})
	return mux
}

func TestNewLoginCmd_Success_SavesTokensAndPrintsMessage(t *testing.T) {
	app := newApp(t, loginHandler(t, "StrongPass123"))

	out, err := run(cli.NewLoginCmd(app), "--email", "test@example.com", "--password", "StrongPass123")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !strings.Contains(out, "login ok (tokens saved)") {
		t.Fatalf("unexpected output: %q", out)
	}

	loaded, err := config.Load(app.CredsPath)
	if err != nil {
		t.Fatalf("load creds: %v", err)
	}
	want := config.Credentials{
		Server:       app.ServerURL,
		Email:        "test@example.com",
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
	}
	if *loaded != want {
		t.Fatalf("expected %+v, got %+v", want, *loaded)
	}
}

func TestNewLoginCmd_PromptsForPassword(t *testing.T) {
	app := newApp(t, loginHandler(t, "Prompted123"))
	stubPassword(t, "Prompted123")

	if _, err := run(cli.NewLoginCmd(app), "--email", "test@example.com"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !app.Creds.LoggedIn() {
		t.Fatalf("expected tokens in app state")
	}
}

func TestNewLoginCmd_PasswordFromStdin(t *testing.T) {
	app := newApp(t, loginHandler(t, "FromStdin123"))

	cmd := cli.NewLoginCmd(app)
	cmd.SetIn(strings.NewReader("FromStdin123\nignored\n"))
	if _, err := run(cmd, "--email", "test@example.com", "--password-stdin"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestNewLoginCmd_PasswordAndStdinAreExclusive(t *testing.T) {
	app := newApp(t, http.NotFoundHandler())

	_, err := run(cli.NewLoginCmd(app), "--email", "test@example.com", "--password", "x", "--password-stdin")
	if err == nil {
		t.Fatalf("%s, got nil", serr.ErrExpectedError.Error())
	}
}

func TestNewLoginCmd_MissingRequiredFlags_ReturnsError(t *testing.T) {
	app := newApp(t, http.NotFoundHandler())

	_, err := run(cli.NewLoginCmd(app), "--password", "StrongPass123")
	if err == nil {
		t.Fatalf("%s, got nil", serr.ErrExpectedError.Error())
	}
	// cobra пишет "required flag(s) \"email\" not set"
	if !strings.Contains(err.Error(), "required") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewLoginCmd_ServerReturnsError_DoesNotWriteCredsFile(t *testing.T) {
	app := newApp(t, loginHandler(t, "StrongPass123"))

	_, err := run(cli.NewLoginCmd(app), "--email", "test@example.com", "--password", "wrong")
	if err == nil {
		t.Fatalf("%s, got nil", serr.ErrExpectedError.Error())
	}
	if !strings.Contains(err.Error(), serr.ErrInvalidCredentials.Error()) {
		t.Fatalf("unexpected error: %v", err)
	}

	// токены не должны сохраняться при ошибке логина
	if _, statErr := os.Stat(app.CredsPath); statErr == nil {
		t.Fatalf("creds file should not be created on login error")
	}
}

func TestNewLogoutCmd_RemovesCreds(t *testing.T) {
	app := newApp(t, http.NotFoundHandler())
	loggedIn(app, "a", "r")
	if err := config.Save(app.CredsPath, app.Creds); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := run(cli.NewLogoutCmd(app))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !strings.Contains(out, "logged out") {
		t.Fatalf("unexpected output: %q", out)
	}
	if _, statErr := os.Stat(app.CredsPath); !os.IsNotExist(statErr) {
		t.Fatalf("expected creds file removed, got %v", statErr)
	}
}
