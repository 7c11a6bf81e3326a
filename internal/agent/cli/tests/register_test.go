package tests

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/Altair788/AdHub/internal/agent/cli"
	serr "github.com/Altair788/AdHub/internal/shared/errors"
	"github.com/Altair788/AdHub/internal/shared/models"
)

func TestNewRegisterCmd_Success(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /users/register", func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Email != "test@example.com" || req.Password != "StrongPass123" {
			t.Fatalf("unexpected request: %+v", req)
		}
		if req.FirstName != "Ivan" {
			t.Fatalf("expected first_name Ivan, got %q", req.FirstName)
		}
		if req.Phone == nil || *req.Phone != "+79990000000" {
			t.Fatalf("expected phone, got %v", req.Phone)
		}
		if req.TgID != nil {
			t.Fatalf("tg_id should be omitted, got %d", *req.TgID)
		}
		writeJSON(w, http.StatusCreated, models.Account{ID: 5, Email: req.Email})
	})
	app := newApp(t, mux)

	cmd := cli.NewRegisterCmd(app)
	cmd.SetIn(strings.NewReader("StrongPass123\n"))
	out, err := run(cmd,
		"--email", "test@example.com",
		"--password-stdin",
		"--first-name", "Ivan",
		"--phone", "+79990000000",
	)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !strings.Contains(out, "registration successful (id=5)") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestNewRegisterCmd_EmptyStdinPassword(t *testing.T) {
	app := newApp(t, http.NotFoundHandler())

	cmd := cli.NewRegisterCmd(app)
	cmd.SetIn(strings.NewReader("\n"))
	_, err := run(cmd, "--email", "test@example.com", "--password-stdin")
	if err == nil || !strings.Contains(err.Error(), "empty password") {
		t.Fatalf("expected empty password error, got %v", err)
	}
}

func TestNewRegisterCmd_ValidationErrorShowsFields(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /users/register", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
			Error:  serr.ErrInvalidInput.Error(),
			Fields: map[string]string{"password": "too short (min 8)"},
		})
	})
	app := newApp(t, mux)

	_, err := run(cli.NewRegisterCmd(app), "--email", "test@example.com", "--password", "short")
	if err == nil {
		t.Fatalf("%s, got nil", serr.ErrExpectedError.Error())
	}
	if !strings.Contains(err.Error(), "password: too short (min 8)") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewConfirmEmailCmd(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/email-confirm/{token}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("token") != "tok-1" {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: serr.ErrInvalidToken.Error()})
			return
		}
		writeJSON(w, http.StatusOK, models.DetailResponse{Detail: "email confirmed"})
	})
	app := newApp(t, mux)

	out, err := run(cli.NewConfirmEmailCmd(app), "tok-1")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !strings.Contains(out, "email confirmed") {
		t.Fatalf("unexpected output: %q", out)
	}

	if _, err := run(cli.NewConfirmEmailCmd(app), "bad"); err == nil {
		t.Fatalf("%s, got nil", serr.ErrExpectedError.Error())
	}
	if _, err := run(cli.NewConfirmEmailCmd(app)); err == nil {
		t.Fatalf("expected error when token argument is missing")
	}
}
