package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/desertthunder/scplayer/internal/models"
	"github.com/desertthunder/scplayer/internal/repositories"
	"github.com/desertthunder/scplayer/internal/services"
	"github.com/desertthunder/scplayer/internal/shared"
)

// soundCloudStub serves the token, profile and track endpoints used by a sign in and a search.
func soundCloudStub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"a1","refresh_token":"r1","expires_in":3600}`))
	})
	mux.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":42,"username":"listener","full_name":"A Listener"}`))
	})
	mux.HandleFunc("/tracks", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer a1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"title":"Night Drive","user":{"username":"artist"}},{"title":"Morning Run","user":{"username":"artist"}}]`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestApp(t *testing.T) {
	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	stub := soundCloudStub(t)
	logger := shared.NewLogger(testLogger())

	users := repositories.NewUserRepository(db)
	identities := repositories.NewIdentityRepository(db)
	sessions := repositories.NewSessionRepository(db)

	soundcloud := services.NewSoundCloudService(services.SoundCloudOpts{
		Credentials: shared.SoundCloudCredentials{ClientID: "id", ClientSecret: "secret", RedirectURI: "http://localhost/callback"},
		Endpoints: shared.SoundCloudConfig{
			APIURL:   stub.URL,
			TokenURL: stub.URL + "/oauth2/token",
			AuthURL:  stub.URL + "/authorize",
		},
		HTTPClient: stub.Client(),
		Store:      identities,
		Logger:     logger,
	})
	accounts := services.NewAccounts(users, identities, logger)

	app := NewApp(AppOpts{
		Provider: soundcloud,
		Accounts: accounts,
		Searcher: services.NewSearcher(soundcloud, soundcloud, logger),
		Sessions: sessions,
		Users:    users,
		DB:       db,
		Renderer: newRenderer(t),
		Cookies:  Cookies{SessionName: "sid"},
		Logger:   logger,
	})

	serve := func(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, req)
		return rec
	}

	t.Run("Anonymous Home", func(t *testing.T) {
		rec := serve("/?q=foo")
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), services.MsgMissingAccessToken) {
			t.Error("expected missing token message")
		}
	})

	t.Run("Health", func(t *testing.T) {
		if rec := serve("/healthz"); rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("Not Found", func(t *testing.T) {
		if rec := serve("/nope"); rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("Sign In Search Sign Out", func(t *testing.T) {
		login := serve("/login")
		state := findCookie(login, stateCookie)
		if state == nil {
			t.Fatal("expected state cookie")
		}
		if !strings.HasPrefix(login.Header().Get("Location"), stub.URL+"/authorize") {
			t.Errorf("expected redirect to authorize URL, got %s", login.Header().Get("Location"))
		}

		cb := serve("/callback?code=the-code&state="+url.QueryEscape(state.Value), state)
		if cb.Code != http.StatusFound {
			t.Fatalf("expected redirect after callback, got %d: %s", cb.Code, cb.Body.String())
		}
		session := findCookie(cb, "sid")
		if session == nil {
			t.Fatal("expected session cookie")
		}

		listed, err := users.List(t.Context(), map[string]any{"username": "listener"})
		if err != nil || len(listed) != 1 {
			t.Fatalf("expected one registered user, got %d (%v)", len(listed), err)
		}
		user := listed[0]

		home := serve("/?q=night", session)
		if home.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", home.Code)
		}
		for _, want := range []string{"Night Drive", "Morning Run", "listener"} {
			if !strings.Contains(home.Body.String(), want) {
				t.Errorf("expected page to contain %q", want)
			}
		}

		logout := serve("/logout", session)
		if logout.Code != http.StatusFound || logout.Header().Get("Location") != "/" {
			t.Errorf("expected redirect home, got %d %s", logout.Code, logout.Header().Get("Location"))
		}

		if _, err := identities.Find(t.Context(), user.ID(), models.ProviderSoundCloud); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected identity to be removed, got %v", err)
		}
		if _, err := sessions.Get(t.Context(), session.Value); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected session to be removed, got %v", err)
		}

		after := serve("/?q=night", session)
		if !strings.Contains(after.Body.String(), services.MsgMissingAccessToken) {
			t.Error("expected to be signed out")
		}
	})
}
