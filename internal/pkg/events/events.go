// Package events fans out registry change notifications over Redis pub/sub.
// Notifications are hints for background jobs that still poll on their own;
// losing one never loses data.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Channel names
const (
	FileUploaded     = "orbit:files:uploaded"
	FileDeleted      = "orbit:files:deleted"
	FilesReset       = "orbit:files:reset"
	GalleryPublished = "orbit:gallery:published"
	GalleryViewed    = "orbit:gallery:viewed"
)

// Event is the JSON payload sent on every channel
type Event struct {
	Channel string    `json:"channel"`
	ID      string    `json:"id,omitempty"`
	At      time.Time `json:"at"`
}

// Publisher announces that a registry document changed
type Publisher interface {
	Publish(ctx context.Context, channel, id string) error
}

// Bus publishes and subscribes through Redis. A Bus built from a nil client
// drops publishes and never delivers, so Redis stays optional.
type Bus struct {
	client *redis.Client
}

var _ Publisher = (*Bus)(nil)

// NewBus creates a bus over client, which may be nil
func NewBus(client *redis.Client) *Bus {
	return &Bus{client: client}
}

// Enabled reports whether a Redis client is attached
func (b *Bus) Enabled() bool {
	return b != nil && b.client != nil
}

// Publish sends an event; failures are returned but callers treat them as best effort
func (b *Bus) Publish(ctx context.Context, channel, id string) error {
	if !b.Enabled() {
		return nil
	}
	payload, err := json.Marshal(Event{Channel: channel, ID: id, At: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := b.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", channel, err)
	}
	return nil
}

// Wakeups delivers a coalesced signal whenever any of channels fires.
// The returned channel is closed when ctx ends.
func (b *Bus) Wakeups(ctx context.Context, channels ...string) <-chan struct{} {
	wake := make(chan struct{}, 1)
	if !b.Enabled() {
		go func() {
			<-ctx.Done()
			close(wake)
		}()
		return wake
	}

	sub := b.client.Subscribe(ctx, channels...)
	go func() {
		defer close(wake)
		defer func() { _ = sub.Close() }()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				log.Debug().Str("channel", msg.Channel).Msg("Wake-up received")
				select {
				case wake <- struct{}{}:
				default:
				}
			}
		}
	}()
	return wake
}

// Nop is a Publisher that drops everything
type Nop struct{}

func (Nop) Publish(context.Context, string, string) error { return nil }

// Hooks runs in-process listeners for a channel, then forwards the event to
// next. Listeners run synchronously on the publishing goroutine.
type Hooks struct {
	next      Publisher
	mu        sync.RWMutex
	listeners map[string][]func(ctx context.Context, id string)
}

var _ Publisher = (*Hooks)(nil)

// NewHooks wraps next, which may be nil
func NewHooks(next Publisher) *Hooks {
	if next == nil {
		next = Nop{}
	}
	return &Hooks{next: next, listeners: map[string][]func(context.Context, string){}}
}

// On registers fn for every listed channel
func (h *Hooks) On(fn func(ctx context.Context, id string), channels ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range channels {
		h.listeners[ch] = append(h.listeners[ch], fn)
	}
}

func (h *Hooks) Publish(ctx context.Context, channel, id string) error {
	h.mu.RLock()
	fns := h.listeners[channel]
	h.mu.RUnlock()
	for _, fn := range fns {
		fn(ctx, id)
	}
	return h.next.Publish(ctx, channel, id)
}
