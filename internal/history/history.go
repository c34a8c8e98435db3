// Package history recovers previous rounds from the history transcript: each
// line of a message that mentions two or more members is one past Match.
package history

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/icssc/matchy-meetups-bot/internal/roster"
	"github.com/icssc/matchy-meetups-bot/pairing"
)

const (
	// DefaultWindow is how far back past rounds still constrain pairing.
	DefaultWindow = 365 * 24 * time.Hour

	// DefaultMaxMessages caps how many transcript messages are read.
	DefaultMaxMessages = 1000
)

var mentionPattern = regexp.MustCompile(`<@([0-9]+)>`)

// Message is one transcript entry.
type Message struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Content   string    `json:"content"`
}

// Transcript is the history channel: read newest-first, append-only.
type Transcript interface {
	// Recent returns up to limit messages, newest first.
	Recent(ctx context.Context, limit int) ([]Message, error)

	// Append stores content and returns the new message.
	Append(ctx context.Context, content string) (Message, error)
}

// ParseMatches extracts past matches from msgs (newest first). It stops at the
// first message older than window relative to now and reads at most max messages.
func ParseMatches(msgs []Message, now time.Time, window time.Duration, max int) []pairing.Match[roster.UserID] {
	cutoff := now.Add(-window)
	var out []pairing.Match[roster.UserID]
	for i, msg := range msgs {
		if i >= max || msg.Timestamp.Before(cutoff) {
			break
		}
		for _, line := range strings.Split(msg.Content, "\n") {
			if m := lineMentions(line); len(m) > 1 {
				out = append(out, m)
			}
		}
	}
	return out
}

// lineMentions returns the user ids mentioned on one line, in order.
func lineMentions(line string) pairing.Match[roster.UserID] {
	var ids pairing.Match[roster.UserID]
	for _, sub := range mentionPattern.FindAllStringSubmatch(line, -1) {
		id, err := roster.ParseUserID(sub[1])
		if err != nil {
			// overflowing ids are not real users
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// PreviousMatches reads the transcript and parses it with ParseMatches.
func PreviousMatches(ctx context.Context, t Transcript, now time.Time, window time.Duration, max int) ([]pairing.Match[roster.UserID], error) {
	msgs, err := t.Recent(ctx, max)
	if err != nil {
		return nil, err
	}
	return ParseMatches(msgs, now, window, max), nil
}
