package clients

import (
	"net/http"

	"github.com/google/uuid"

	"shop_client/internal/session"
)

// RequestDecorator finalizes an outgoing request from a session snapshot.
// Decorators run synchronously, in order, right before dispatch.
type RequestDecorator func(req *http.Request, snap session.Snapshot)

// BearerAuth attaches the stored credential, if any.
func BearerAuth(req *http.Request, snap session.Snapshot) {
	if snap.Token == "" {
		req.Header.Del("Authorization")
		return
	}
	req.Header.Set("Authorization", "Bearer "+snap.Token)
}

// RequestID tags the request for correlation in server logs.
func RequestID(req *http.Request, _ session.Snapshot) {
	if req.Header.Get("X-Request-ID") == "" {
		req.Header.Set("X-Request-ID", uuid.NewString())
	}
}
