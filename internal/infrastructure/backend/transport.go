package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/libraryhub/portal/internal/core/ports"
)

type authMarker struct{}

// withAuthMarker returns a context whose requests report back, through the
// returned flag, whether a bearer token was attached.
func withAuthMarker(ctx context.Context) (context.Context, *bool) {
	flag := new(bool)
	return context.WithValue(ctx, authMarker{}, flag), flag
}

// bearerTransport resolves the credential at dispatch time, so a request
// always carries whatever the store holds at the moment it is sent.
type bearerTransport struct {
	creds ports.CredentialSource
	next  http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.creds == nil {
		return t.next.RoundTrip(req)
	}

	cred, ok, err := t.creds.Load(req.Context())
	if err != nil {
		if req.Body != nil {
			_ = req.Body.Close()
		}
		return nil, fmt.Errorf("resolve credential: %w", err)
	}
	if !ok {
		return t.next.RoundTrip(req)
	}

	// RoundTrippers must not mutate the caller's request.
	r := req.Clone(req.Context())
	r.Header.Set("Authorization", "Bearer "+cred.Token)
	if marked, _ := req.Context().Value(authMarker{}).(*bool); marked != nil {
		*marked = true
	}
	return t.next.RoundTrip(r)
}
