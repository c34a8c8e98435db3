// Package notify delivers committed pairings: one broadcast to the
// announcement channel and a direct message to every member.
package notify

import (
	"context"
	"fmt"
	"sync"

	"github.com/icssc/matchy-meetups-bot/internal/logging"
	"github.com/icssc/matchy-meetups-bot/internal/roster"
)

// Notifier is the delivery backend.
type Notifier interface {
	// Broadcast posts text to the announcement channel and returns a link to it.
	Broadcast(ctx context.Context, text string) (string, error)

	// Direct sends text to a single member.
	Direct(ctx context.Context, user roster.UserID, text string) error
}

// LogNotifier writes every message to the log instead of a chat service.
type LogNotifier struct {
	log *logging.Logger

	mu    sync.Mutex
	posts int
}

// NewLogNotifier returns a Notifier that logs deliveries.
func NewLogNotifier(log *logging.Logger) *LogNotifier {
	return &LogNotifier{log: log.WithComponent("notify")}
}

// Broadcast implements Notifier.
func (n *LogNotifier) Broadcast(ctx context.Context, text string) (string, error) {
	n.mu.Lock()
	n.posts++
	link := fmt.Sprintf("log://announcements/%d", n.posts)
	n.mu.Unlock()

	n.log.InfoContext(ctx, "broadcast", "link", link, "text", text)
	return link, nil
}

// Direct implements Notifier.
func (n *LogNotifier) Direct(ctx context.Context, user roster.UserID, text string) error {
	n.log.InfoContext(ctx, "direct message", "user", uint64(user), "text", text)
	return nil
}

// Recorder is an in-memory Notifier. Failing users get an error from Direct.
type Recorder struct {
	mu         sync.Mutex
	Broadcasts []string
	Directs    map[roster.UserID]string
	Failing    map[roster.UserID]error
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		Directs: make(map[roster.UserID]string),
		Failing: make(map[roster.UserID]error),
	}
}

// Broadcast implements Notifier.
func (r *Recorder) Broadcast(_ context.Context, text string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Broadcasts = append(r.Broadcasts, text)
	return fmt.Sprintf("mem://announcements/%d", len(r.Broadcasts)), nil
}

// Direct implements Notifier.
func (r *Recorder) Direct(_ context.Context, user roster.UserID, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.Failing[user]; err != nil {
		return err
	}
	r.Directs[user] = text
	return nil
}
