package clients

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"shop_client/internal/domain"
)

const unknownField = "unknown"

// UnauthorizedHandler reacts to a 401 response, typically by dropping the
// session and sending the user to the login route.
type UnauthorizedHandler interface {
	HandleUnauthorized()
}

// Normalizer turns every transport outcome into either the unwrapped
// payload, ErrCancelled or an *APIError.
type Normalizer struct {
	mu             sync.RWMutex
	onUnauthorized UnauthorizedHandler
	log            *logrus.Logger
}

func NewNormalizer(logger *logrus.Logger) *Normalizer {
	return &Normalizer{log: logger}
}

func (n *Normalizer) SetUnauthorizedHandler(h UnauthorizedHandler) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.onUnauthorized = h
}

// Unwrap decodes the {success, data} envelope and stores data into out.
// out may be nil when the caller does not need the payload.
func (n *Normalizer) Unwrap(resp *Response, out any) error {
	if len(resp.Body) == 0 {
		return nil
	}

	var env struct {
		Success *bool           `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		n.log.Warnf("Normalizer: Undecodable response body (status %d): %v", resp.Status, err)
		return &APIError{Status: resp.Status, Message: DefaultErrorMessage, kind: KindAPI, cause: err}
	}
	if env.Success != nil && !*env.Success {
		return n.Normalize(&TransportError{Status: resp.Status, Body: resp.Body})
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		n.log.Warnf("Normalizer: Payload does not match %T: %v", out, err)
		return &APIError{Status: resp.Status, Message: DefaultErrorMessage, kind: KindAPI, cause: err}
	}
	return nil
}

// Normalize maps a failure to the uniform error shape. Cancellation is
// returned unchanged.
func (n *Normalizer) Normalize(err error) error {
	if err == nil || errors.Is(err, ErrCancelled) {
		return err
	}

	var te *TransportError
	if !errors.As(err, &te) {
		return &APIError{Message: DefaultErrorMessage, kind: KindAPI, cause: err}
	}
	if te.Status == 0 {
		return &APIError{Message: NetworkErrorMessage, kind: KindNetwork, cause: te}
	}

	apiErr := parseErrorBody(te.Status, te.Body)
	apiErr.cause = te
	if te.Status == http.StatusUnauthorized {
		n.mu.RLock()
		h := n.onUnauthorized
		n.mu.RUnlock()
		n.log.Warn("Normalizer: Received 401, session is no longer valid")
		if h != nil {
			h.HandleUnauthorized()
		}
	}
	return apiErr
}

func parseErrorBody(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status, Message: DefaultErrorMessage, kind: KindAPI}
	if status == http.StatusUnauthorized {
		apiErr.kind = KindUnauthenticated
	}
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return apiErr
	}

	root := gjson.ParseBytes(body)
	if msg := firstString(root, "message", "error"); msg != "" {
		apiErr.Message = msg
	}

	if list := root.Get("errors"); list.IsArray() {
		list.ForEach(func(_, item gjson.Result) bool {
			field := firstString(item, "field", "path")
			if field == "" {
				field = unknownField
			}
			apiErr.Errors = append(apiErr.Errors, domain.FieldError{
				Field:   field,
				Message: firstString(item, "message", "msg"),
			})
			return true
		})
		if len(apiErr.Errors) > 0 && apiErr.kind == KindAPI {
			apiErr.kind = KindValidation
		}
	}
	return apiErr
}

// firstString returns the first non-empty string value among keys.
func firstString(r gjson.Result, keys ...string) string {
	for _, k := range keys {
		if v := r.Get(k); v.Type == gjson.String && v.Str != "" {
			return v.Str
		}
	}
	return ""
}
