package tests

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/Altair788/AdHub/internal/agent/cli"
	serr "github.com/Altair788/AdHub/internal/shared/errors"
	"github.com/Altair788/AdHub/internal/shared/models"
	"github.com/Altair788/AdHub/internal/shared/utils"
)

func TestAdsList_PrintsTableAndPageInfo(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ads", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Fatalf("anonymous list should not send a token")
		}
		if r.URL.Query().Get("title") != "bike" || r.URL.Query().Get("page") != "2" {
			t.Fatalf("unexpected query: %s", r.URL.RawQuery)
		}
		writeJSON(w, http.StatusOK, models.Page[models.Ad]{
			Count:    9,
			Next:     utils.StrPtr("https://x/ads?page=3&title=bike"),
			Previous: utils.StrPtr("https://x/ads?title=bike"),
			Results: []models.Ad{
				{ID: 6, Title: "Red bike", Price: 100, Author: 1},
				{ID: 5, Title: "Blue bike", Price: 200, Author: 2},
			},
		})
	})
	app := newApp(t, mux)

	out, err := run(cli.NewAdsCmd(app), "list", "--title", "bike", "--page", "2")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	for _, want := range []string{"TITLE", "Red bike", "Blue bike", "total: 9, page: 2, prev: 1, next: 3"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output: %q", want, out)
		}
	}
}

func TestAdsList_InvalidPage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ads", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: serr.ErrInvalidPage.Error()})
	})
	app := newApp(t, mux)

	_, err := run(cli.NewAdsCmd(app), "list", "--page", "99")
	if err == nil || !strings.Contains(err.Error(), serr.ErrInvalidPage.Error()) {
		t.Fatalf("expected invalid page error, got %v", err)
	}
}

func TestAdsGet_RequiresLogin(t *testing.T) {
	app := newApp(t, http.NotFoundHandler())

	_, err := run(cli.NewAdsCmd(app), "get", "1")
	if err == nil || !strings.Contains(err.Error(), "not logged in") {
		t.Fatalf("expected not logged in error, got %v", err)
	}
}

func TestAdsGet_InvalidID(t *testing.T) {
	app := newApp(t, http.NotFoundHandler())
	loggedIn(app, "a", "r")

	_, err := run(cli.NewAdsCmd(app), "get", "abc")
	if err == nil || !strings.Contains(err.Error(), "invalid id") {
		t.Fatalf("expected invalid id error, got %v", err)
	}
}

func TestAdsCreateGetDelete(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /ads", func(w http.ResponseWriter, r *http.Request) {
		var req models.AdRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Title != "Bike" || req.Price == nil || *req.Price != 0 || req.Image != nil {
			t.Fatalf("unexpected request: %+v", req)
		}
		writeJSON(w, http.StatusCreated, models.Ad{ID: 3, Title: req.Title, Author: 1})
	})
	mux.HandleFunc("GET /ads/3", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.Ad{ID: 3, Title: "Bike", Description: "fast", Author: 1})
	})
	mux.HandleFunc("DELETE /ads/3", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer a" {
			t.Fatalf("expected bearer token")
		}
		w.WriteHeader(http.StatusNoContent)
	})
	app := newApp(t, mux)
	loggedIn(app, "a", "r")

	out, err := run(cli.NewAdsCmd(app), "create", "--title", "Bike", "--price", "0")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.Contains(out, "ad created (id=3)") {
		t.Fatalf("unexpected output: %q", out)
	}

	out, err = run(cli.NewAdsCmd(app), "get", "3")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !strings.Contains(out, "fast") || !strings.Contains(out, "image:") {
		t.Fatalf("unexpected output: %q", out)
	}

	out, err = run(cli.NewAdsCmd(app), "delete", "3")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !strings.Contains(out, "ad 3 deleted") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestAdsUpdate_SendsOnlyChangedFields(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /ads/3", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(body) != 2 || body["price"] != float64(50) || body["image"] != "" {
			t.Fatalf("unexpected body: %v", body)
		}
		writeJSON(w, http.StatusOK, models.Ad{ID: 3, Title: "Bike", Price: 50})
	})
	app := newApp(t, mux)
	loggedIn(app, "a", "r")

	out, err := run(cli.NewAdsCmd(app), "update", "3", "--price", "50", "--image", "")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !strings.Contains(out, "50") {
		t.Fatalf("unexpected output: %q", out)
	}

	_, err = run(cli.NewAdsCmd(app), "update", "3")
	if err == nil || !strings.Contains(err.Error(), "nothing to update") {
		t.Fatalf("expected nothing to update error, got %v", err)
	}
}

func TestAdsDelete_Forbidden(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /ads/3", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, models.ErrorResponse{Error: serr.ErrForbidden.Error()})
	})
	app := newApp(t, mux)
	loggedIn(app, "a", "r")

	_, err := run(cli.NewAdsCmd(app), "delete", "3")
	if err == nil || !strings.Contains(err.Error(), "HTTP 403") {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}
