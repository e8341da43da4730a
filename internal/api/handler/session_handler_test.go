package handler

import (
	"net/http"
	"testing"

	"github.com/libraryhub/portal/internal/core/domain"
)

func newSessionEnv(t *testing.T, accounts *stubAccounts) *testEnv {
	env := newTestEnv(t)
	h := NewSessionHandler(accounts)
	env.e.GET("/", h.Welcome)
	env.e.GET("/login", h.LoginPage)
	env.e.POST("/login", h.Login)
	env.e.POST("/register", h.Register)
	env.e.POST("/logout", h.Logout)
	env.e.GET("/session", h.Session)
	env.e.GET("/forbidden", h.Forbidden)
	return env
}

func TestSessionHandler_LoginStartsSession(t *testing.T) {
	env := newSessionEnv(t, &stubAccounts{result: &domain.LoginResult{Token: "tok123", Role: domain.RoleAdmin}})

	rec := env.do(http.MethodPost, "/login", `{"username":"ada","password":"secret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decode[sessionResponse](t, rec)
	if !resp.Authenticated || resp.Role != domain.RoleAdmin || resp.Redirect != "/admin" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	cred, ok, _ := env.session(t).Credentials().Load(t.Context())
	if !ok || cred.Token != "tok123" {
		t.Fatalf("expected stored credential, got %+v ok=%v", cred, ok)
	}
}

func TestSessionHandler_LoginValidation(t *testing.T) {
	env := newSessionEnv(t, &stubAccounts{})

	rec := env.do(http.MethodPost, "/login", `{"username":"ada"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if env.session(t).State().Authenticated {
		t.Fatalf("session must stay empty")
	}
}

func TestSessionHandler_LoginRejectedByBackend(t *testing.T) {
	env := newSessionEnv(t, &stubAccounts{loginErr: domain.ErrUnauthenticated})

	rec := env.do(http.MethodPost, "/login", `{"username":"ada","password":"wrong"}`)
	if rec.Code == http.StatusOK {
		t.Fatalf("expected failure")
	}
	if env.session(t).State().Authenticated {
		t.Fatalf("session must stay empty")
	}
}

func TestSessionHandler_LoginWithUnknownRole(t *testing.T) {
	env := newSessionEnv(t, &stubAccounts{result: &domain.LoginResult{Token: "tok", Role: "LIBRARIAN"}})

	_ = env.do(http.MethodPost, "/login", `{"username":"ada","password":"secret"}`)
	if env.session(t).State().Authenticated {
		t.Fatalf("unknown role must not start a session")
	}
}

func TestSessionHandler_LogoutAndSession(t *testing.T) {
	env := newSessionEnv(t, &stubAccounts{})
	svc := env.session(t)
	_ = svc.Login(t.Context(), "tok", domain.RoleUser)

	rec := env.do(http.MethodGet, "/session", "")
	if got := decode[domain.SessionState](t, rec); !got.Authenticated || got.Role != domain.RoleUser {
		t.Fatalf("unexpected session: %+v", got)
	}

	rec = env.do(http.MethodPost, "/logout", "")
	if resp := decode[sessionResponse](t, rec); resp.Authenticated || resp.Redirect != "/login" {
		t.Fatalf("unexpected logout response: %+v", resp)
	}

	rec = env.do(http.MethodGet, "/session", "")
	if got := decode[domain.SessionState](t, rec); got.Authenticated {
		t.Fatalf("expected logged out, got %+v", got)
	}
}

func TestSessionHandler_LoginPageRedirectsAuthenticated(t *testing.T) {
	env := newSessionEnv(t, &stubAccounts{})
	_ = env.session(t).Login(t.Context(), "tok", domain.RoleUser)

	resp := decode[sessionResponse](t, env.do(http.MethodGet, "/login", ""))
	if resp.Redirect != "/user" {
		t.Fatalf("expected redirect hint to /user, got %+v", resp)
	}
}

func TestSessionHandler_RegisterDefaultsRole(t *testing.T) {
	accounts := &stubAccounts{}
	env := newSessionEnv(t, accounts)

	rec := env.do(http.MethodPost, "/register", `{"firstname":"Ada","lastname":"Lovelace","username":"ada","password":"secret"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if accounts.lastReg.Role != domain.RoleUser {
		t.Fatalf("expected default role USER, got %q", accounts.lastReg.Role)
	}
}

func TestSessionHandler_RegisterRejectsUnknownRole(t *testing.T) {
	env := newSessionEnv(t, &stubAccounts{})

	rec := env.do(http.MethodPost, "/register", `{"firstname":"A","lastname":"L","username":"ada","password":"x","role":"ROOT"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSessionHandler_RegisterBackendError(t *testing.T) {
	env := newSessionEnv(t, &stubAccounts{regErr: domain.ErrValidation})

	rec := env.do(http.MethodPost, "/register", `{"firstname":"A","lastname":"L","username":"ada","password":"x"}`)
	if rec.Code == http.StatusCreated {
		t.Fatalf("expected failure")
	}
}

func TestSessionHandler_WelcomeAndForbidden(t *testing.T) {
	env := newSessionEnv(t, &stubAccounts{})

	resp := decode[welcomeResponse](t, env.do(http.MethodGet, "/", ""))
	if len(resp.Links) == 0 || resp.Session.Authenticated {
		t.Fatalf("unexpected welcome: %+v", resp)
	}

	if rec := env.do(http.MethodGet, "/forbidden", ""); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

