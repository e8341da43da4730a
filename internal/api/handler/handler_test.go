package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/libraryhub/portal/internal/api/middleware"
	"github.com/libraryhub/portal/internal/core/domain"
	"github.com/libraryhub/portal/internal/core/ports"
	"github.com/libraryhub/portal/internal/core/service"
	"github.com/libraryhub/portal/internal/infrastructure/store/memory"
)

const testCtxID = "0b6f5f7e-8f3a-4b8e-9d2c-5e1a7c3b9f10"

type stubAccounts struct {
	result   *domain.LoginResult
	loginErr error
	regErr   error
	lastReg  domain.Registration
}

func (s *stubAccounts) Register(_ context.Context, reg domain.Registration) error {
	s.lastReg = reg
	return s.regErr
}

func (s *stubAccounts) Login(context.Context, domain.LoginRequest) (*domain.LoginResult, error) {
	return s.result, s.loginErr
}

// stubLibrary embeds the interface so tests only implement what they call.
type stubLibrary struct {
	ports.LibraryAPI

	mu         sync.Mutex
	creds      ports.CredentialSource
	profile    *domain.Profile
	books      []domain.Book
	users      []domain.Profile
	records    []domain.BorrowRecord
	err        error
	searched   domain.BookSearchField
	stock      int
	recordsFor string
}

func (s *stubLibrary) factory() ports.LibraryAPIFactory {
	return func(creds ports.CredentialSource) ports.LibraryAPI {
		s.mu.Lock()
		s.creds = creds
		s.mu.Unlock()
		return s
	}
}

func (s *stubLibrary) Profile(context.Context) (*domain.Profile, error) { return s.profile, s.err }
func (s *stubLibrary) UserProfile(context.Context, string) (*domain.Profile, error) {
	return s.profile, s.err
}
func (s *stubLibrary) AvailableBooks(context.Context) ([]domain.Book, error) { return s.books, s.err }
func (s *stubLibrary) SearchBooks(_ context.Context, f domain.BookSearchField, _ string) ([]domain.Book, error) {
	s.mu.Lock()
	s.searched = f
	s.mu.Unlock()
	return s.books, s.err
}
func (s *stubLibrary) ListUsers(context.Context) ([]domain.Profile, error) { return s.users, s.err }
func (s *stubLibrary) BorrowRecords(context.Context) ([]domain.BorrowRecord, error) {
	return s.records, s.err
}
func (s *stubLibrary) BorrowRecordsFor(_ context.Context, username string) ([]domain.BorrowRecord, error) {
	s.recordsFor = username
	return s.records, s.err
}
func (s *stubLibrary) UpdateStock(_ context.Context, _ string, change int) error {
	s.stock = change
	return s.err
}
func (s *stubLibrary) Borrow(context.Context, string) error { return s.err }

type testEnv struct {
	e   *echo.Echo
	reg *service.SessionRegistry
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mem := memory.NewStore()
	reg, err := service.NewSessionRegistry(func(id string) ports.CredentialStore {
		return service.NewKeyValueCredentialStore(mem.For(id))
	}, nil, 8, zerolog.Nop())
	if err != nil {
		t.Fatalf("registry: %v", err)
	}

	e := echo.New()
	e.Validator = NewValidator()
	e.Use(middleware.BrowserContext(reg, middleware.BrowserContextConfig{}))
	return &testEnv{e: e, reg: reg}
}

func (env *testEnv) session(t *testing.T) *service.SessionService {
	t.Helper()
	svc, err := env.reg.Get(context.Background(), testCtxID)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	return svc
}

func (env *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.AddCookie(&http.Cookie{Name: "portal_ctx", Value: testCtxID})
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}
