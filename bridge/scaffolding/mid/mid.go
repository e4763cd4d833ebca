// Package mid provides app level middleware support.
package mid

import (
	"context"
	"errors"

	"github.com/tasktide/tasktide/core/scaffolding/authz"
	"github.com/tasktide/tasktide/infrastructure/web"
)

type ctxKey int

const principalKey ctxKey = 1

func setPrincipal(ctx context.Context, p authz.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipal returns the authenticated principal from the context.
func GetPrincipal(ctx context.Context) (authz.Principal, error) {
	p, ok := ctx.Value(principalKey).(authz.Principal)
	if !ok {
		return authz.Principal{}, errors.New("principal not found in context")
	}

	return p, nil
}

// isError tests if the Encoder has an error inside of it.
func isError(e web.Encoder) error {
	err, isError := e.(error)
	if isError {
		return err
	}
	return nil
}
