package pipeline

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/vkgram/vkgram/internal/compose"
	"github.com/vkgram/vkgram/internal/vk"
)

// Source fetches the newest page of wall items, newest first.
type Source interface {
	FetchWall(ctx context.Context) ([]vk.Item, error)
}

// Sender delivers one finished draft to the destination channel.
type Sender interface {
	Send(ctx context.Context, draft compose.Draft) error
}

// Store persists the watermark between runs.
type Store interface {
	GetValue(ctx context.Context, key string) (value string, ok bool, err error)
	SetValue(ctx context.Context, key, value string) error
}
