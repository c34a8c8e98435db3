// Package matchy runs a round: preview a pairing for a seed, then commit it
// with the key the preview returned.
package matchy

import (
	"context"
	"fmt"
	"time"

	"github.com/icssc/matchy-meetups-bot/internal/history"
	"github.com/icssc/matchy-meetups-bot/internal/logging"
	"github.com/icssc/matchy-meetups-bot/internal/notify"
	"github.com/icssc/matchy-meetups-bot/internal/present"
	"github.com/icssc/matchy-meetups-bot/internal/replay"
	"github.com/icssc/matchy-meetups-bot/internal/roster"
	"github.com/icssc/matchy-meetups-bot/pairing"
)

// Settings are the round parameters taken from configuration.
type Settings struct {
	RoleName    string
	Window      time.Duration
	MaxMessages int
	Options     []pairing.Option
}

// Service wires the roster, the transcript, the engine and delivery together.
type Service struct {
	dir        roster.Directory
	transcript history.Transcript
	notifier   notify.Notifier
	dispatch   *notify.Dispatcher
	settings   Settings
	log        *logging.Logger
	now        func() time.Time
}

// NewService returns a Service. Zero Window/MaxMessages fall back to the history defaults.
func NewService(dir roster.Directory, t history.Transcript, n notify.Notifier, d *notify.Dispatcher, s Settings, log *logging.Logger) *Service {
	if s.Window <= 0 {
		s.Window = history.DefaultWindow
	}
	if s.MaxMessages <= 0 {
		s.MaxMessages = history.DefaultMaxMessages
	}
	return &Service{
		dir:        dir,
		transcript: t,
		notifier:   n,
		dispatch:   d,
		settings:   s,
		log:        log.WithComponent("matchy"),
		now:        time.Now,
	}
}

// Preview is the outcome of a pairing request.
type Preview struct {
	Pairing        pairing.Pairing[roster.UserID]
	Key            replay.Key
	Text           string
	RemainderScore int
	NovelPairs     int
}

// SendResult is the outcome of committing a pairing.
type SendResult struct {
	Link     string
	Messaged int
	Failed   int
}

// pair runs the engine on the live roster and transcript.
func (s *Service) pair(ctx context.Context, seed string) (pairing.Result[roster.UserID], error) {
	participants, err := roster.Participants(ctx, s.dir, s.settings.RoleName)
	if err != nil {
		return pairing.Result[roster.UserID]{}, err
	}
	past, err := history.PreviousMatches(ctx, s.transcript, s.now(), s.settings.Window, s.settings.MaxMessages)
	if err != nil {
		return pairing.Result[roster.UserID]{}, fmt.Errorf("matchy: error fetching message history: %w", err)
	}
	return pairing.Solve(participants, past, pairing.HashSeed(seed), s.settings.Options...)
}

// Preview generates a pairing for seed without announcing it.
func (s *Service) Preview(ctx context.Context, seed string) (Preview, error) {
	res, err := s.pair(ctx, seed)
	if err != nil {
		s.log.LogPreview(ctx, seed, 0, 0, "", err)
		return Preview{}, err
	}

	key := replay.Key{Seed: seed, Checksum: res.Checksum}
	p := Preview{
		Pairing:        res.Pairing,
		Key:            key,
		Text:           present.Preview(res.Pairing, key.String()),
		RemainderScore: res.RemainderScore,
		NovelPairs:     res.NovelPairs,
	}
	s.log.LogPreview(ctx, seed, len(flatten(res.Matches)), len(res.Imperfect), key.String(), nil)
	return p, nil
}

// Send re-derives the pairing named by key, checks it is unchanged, announces
// it, records it in the transcript and messages every member.
func (s *Service) Send(ctx context.Context, rawKey string) (SendResult, error) {
	key, err := replay.Parse(rawKey)
	if err != nil {
		s.log.LogSend(ctx, rawKey, 0, 0, err)
		return SendResult{}, err
	}

	res, err := s.pair(ctx, key.Seed)
	if err != nil {
		s.log.LogSend(ctx, rawKey, 0, 0, err)
		return SendResult{}, err
	}
	if err := replay.Verify(key, res.Matches); err != nil {
		s.log.LogSend(ctx, rawKey, 0, 0, err)
		return SendResult{}, err
	}

	link, err := s.notifier.Broadcast(ctx, present.Announcement(present.RoleMention(s.settings.RoleName), res.Matches))
	if err != nil {
		s.log.LogSend(ctx, rawKey, 0, 0, err)
		return SendResult{}, fmt.Errorf("matchy: announce: %w", err)
	}
	if _, err := s.transcript.Append(ctx, present.HistoryRecord(link, res.Matches)); err != nil {
		s.log.LogSend(ctx, rawKey, 0, 0, err)
		return SendResult{}, fmt.Errorf("matchy: record history: %w", err)
	}

	envs, err := s.envelopes(ctx, res.Matches)
	if err != nil {
		s.log.LogSend(ctx, rawKey, 0, 0, err)
		return SendResult{}, err
	}
	rep, err := s.dispatch.Deliver(ctx, envs)
	s.log.LogSend(ctx, rawKey, rep.Sent, rep.Failed, err)
	if err != nil {
		return SendResult{}, fmt.Errorf("matchy: deliver: %w", err)
	}

	return SendResult{Link: link, Messaged: rep.Sent, Failed: rep.Failed}, nil
}

// envelopes builds one direct message per member naming their partners.
func (s *Service) envelopes(ctx context.Context, ms []pairing.Match[roster.UserID]) ([]notify.Envelope, error) {
	names := make(map[roster.UserID]string)
	for _, id := range flatten(ms) {
		m, err := s.dir.Member(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("matchy: unable to fetch names for user ids: %w", err)
		}
		names[id] = m.Name
		if names[id] == "" {
			names[id] = id.String()
		}
	}

	var envs []notify.Envelope
	for _, m := range ms {
		for _, user := range m {
			var partners []present.Partner
			for _, other := range m {
				if other != user {
					partners = append(partners, present.Partner{ID: other, Name: names[other]})
				}
			}
			envs = append(envs, notify.Envelope{User: user, Text: present.DirectMessage(partners)})
		}
	}
	return envs, nil
}

func flatten(ms []pairing.Match[roster.UserID]) []roster.UserID {
	var out []roster.UserID
	for _, m := range ms {
		out = append(out, m...)
	}
	return out
}
