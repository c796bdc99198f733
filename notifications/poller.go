package notifications

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/octabyte/saveat-admin/apiclient"
	"github.com/octabyte/saveat-admin/models"
	"github.com/octabyte/saveat-admin/utils/logger"
)

const DefaultInterval = 60 * time.Second

type Source interface {
	ListNotifications(ctx context.Context) ([]models.Notification, error)
	DeleteNotification(ctx context.Context, id string) error
}

type SessionSource interface {
	Snapshot() models.Session
}

// Poller keeps the operator's notification list fresh. It only talks to the backend while
// a session is signed in; a failed refresh keeps the previous list.
type Poller struct {
	src      Source
	sessions SessionSource
	interval time.Duration

	mu        sync.RWMutex
	items     []models.Notification
	updatedAt time.Time
}

func NewPoller(src Source, sessions SessionSource, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{src: src, sessions: sessions, interval: interval}
}

// Run refreshes immediately and then on every tick until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	logger.LogInfo("notification poller started", zap.Duration("interval", p.interval))
	_ = p.Refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.LogInfo("notification poller stopped")
			return
		case <-ticker.C:
			_ = p.Refresh(ctx)
		}
	}
}

// Refresh fetches the list now.
func (p *Poller) Refresh(ctx context.Context) error {
	if !p.sessions.Snapshot().IsAuthenticated() {
		p.replace(nil)
		return nil
	}

	items, err := p.src.ListNotifications(ctx)
	if err != nil {
		if errors.Is(err, apiclient.ErrUnauthorized) {
			p.replace(nil)
		} else {
			logger.LogWarn("failed to refresh notifications, keeping previous list", zap.Error(err))
		}
		return err
	}

	p.replace(items)
	logger.LogDebugf("notifications refreshed: %d", len(items))
	return nil
}

// Delete removes a notification from the backend and then from the local list.
func (p *Poller) Delete(ctx context.Context, id string) error {
	if err := p.src.DeleteNotification(ctx, id); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = slices.DeleteFunc(p.items, func(n models.Notification) bool { return n.ID == id })
	return nil
}

// Notifications returns a copy of the latest list.
func (p *Poller) Notifications() []models.Notification {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.items)
}

func (p *Poller) Unread() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	n := 0
	for _, item := range p.items {
		if !item.IsRead {
			n++
		}
	}
	return n
}

func (p *Poller) UpdatedAt() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.updatedAt
}

func (p *Poller) replace(items []models.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = items
	p.updatedAt = time.Now()
}
