package batch

import (
	"context"

	"reklamefix/internal/doms"
)

// RemoteStore is the repository the batch reads from and writes back to.
// *doms.Client implements it.
type RemoteStore interface {
	FetchContent(ctx context.Context, id string) ([]byte, error)
	GetState(ctx context.Context, id string) (doms.State, error)
	BeginEdit(ctx context.Context, id string) error
	WriteContent(ctx context.Context, id string, content []byte) error
	Publish(ctx context.Context, id string) error
}

var _ RemoteStore = (*doms.Client)(nil)
