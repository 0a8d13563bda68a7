package services

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"shop_client/internal/clients"
	"shop_client/internal/domain"
)

// resource binds a client to one REST collection path.
type resource struct {
	client *clients.Client
	base   string
	log    *logrus.Logger
}

func newResource(client *clients.Client, base string, logger *logrus.Logger) resource {
	return resource{client: client, base: base, log: logger}
}

// path joins escaped segments onto the collection path.
func (r resource) path(segments ...string) string {
	if len(segments) == 0 {
		return r.base
	}
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return r.base + "/" + strings.Join(escaped, "/")
}

func (r resource) call(ctx context.Context, method, path string, query url.Values, body, out any) error {
	return r.client.Do(ctx, clients.Request{Method: method, Path: path, Query: query, Body: body}, out)
}

func list[T any](ctx context.Context, r resource, params domain.ListParams) (*T, error) {
	var page T
	if err := r.call(ctx, http.MethodGet, r.base, params.Values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func get[T any](ctx context.Context, r resource, id string) (*T, error) {
	var item T
	if err := r.call(ctx, http.MethodGet, r.path(id), nil, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func send[T any](ctx context.Context, r resource, method, path string, body any) (*T, error) {
	var item T
	if err := r.call(ctx, method, path, nil, body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func remove(ctx context.Context, r resource, id string) error {
	return r.call(ctx, http.MethodDelete, r.path(id), nil, nil, nil)
}
