package services

import (
	"fmt"
	"log"
	"os"

	"github.com/nats-io/nats.go"
)

// Notifier pushes view-invalidation events to connected clients over NATS,
// one subject per read view (league.changes.<view>). Delivery is at-most-once
// best-effort: clients that miss an event pick the change up on their next
// fetch, and the expiry sweep self-heals on every challenge list read.
type Notifier struct {
	nc *nats.Conn
}

// NewNotifier connects to NATS_URL. An empty NATS_URL yields a no-op
// notifier so the service stays usable without a broker.
func NewNotifier() (*Notifier, error) {
	url := os.Getenv("NATS_URL")
	if url == "" {
		log.Println("⚠️  NATS_URL not set — realtime invalidations disabled")
		return &Notifier{}, nil
	}
	nc, err := nats.Connect(url, nats.Name("pool-league-system"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &Notifier{nc: nc}, nil
}

// Invalidate publishes each stale view key. Errors are logged, never
// propagated: a dropped notification must not fail the write that caused it.
func (n *Notifier) Invalidate(views ...string) {
	if n == nil || n.nc == nil {
		return
	}
	for _, view := range views {
		subject := "league.changes." + view
		if err := n.nc.Publish(subject, []byte(view)); err != nil {
			log.Printf("[REALTIME] Failed to publish %s: %v", subject, err)
		}
	}
}

func (n *Notifier) Close() {
	if n != nil && n.nc != nil {
		n.nc.Close()
	}
}
