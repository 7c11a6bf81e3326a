package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/Altair788/AdHub/internal/agent/cli"
	"github.com/Altair788/AdHub/internal/agent/config"
)

// newApp поднимает HTTPS сервер с handler и возвращает App, смотрящий на него.
func newApp(t *testing.T, h http.Handler) *cli.App {
	t.Helper()
	srv := httptest.NewTLSServer(h)
	t.Cleanup(srv.Close)

	return &cli.App{
		ServerURL: srv.URL,
		Insecure:  true,
		CredsPath: filepath.Join(t.TempDir(), "creds.json"),
		Creds:     &config.Credentials{},
	}
}

// loggedIn сохраняет в App пару токенов, как после login.
func loggedIn(app *cli.App, access, refresh string) {
	app.Creds = &config.Credentials{Server: app.ServerURL, AccessToken: access, RefreshToken: refresh}
}

func run(cmd *cobra.Command, args ...string) (string, error) {
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	// nil заставит cobra читать os.Args тестового бинарника
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// stubPassword подменяет чтение пароля с терминала.
func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := cli.ReadPassword
	cli.ReadPassword = func(cmd *cobra.Command, prompt string, fromStdin bool) (string, error) {
		return pw, nil
	}
	t.Cleanup(func() { cli.ReadPassword = orig })
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o600)
}
