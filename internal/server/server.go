// Package server exposes the preview/send flow over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/icssc/matchy-meetups-bot/internal/logging"
	"github.com/icssc/matchy-meetups-bot/internal/matchy"
	"github.com/icssc/matchy-meetups-bot/internal/replay"
	"github.com/icssc/matchy-meetups-bot/internal/roster"
	"github.com/icssc/matchy-meetups-bot/pairing"
)

// Rounds is the part of matchy.Service the handlers need.
type Rounds interface {
	Preview(ctx context.Context, seed string) (matchy.Preview, error)
	Send(ctx context.Context, key string) (matchy.SendResult, error)
}

type Server struct {
	Rounds Rounds
	Log    *logging.Logger
}

func NewServer(r Rounds, log *logging.Logger) *Server {
	return &Server{Rounds: r, Log: log.WithComponent("server")}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.POST("/pairings", s.CreatePairing)
	r.POST("/pairings/send", s.SendPairing)

	return r
}

type CreatePairingRequest struct {
	Seed string `json:"seed" binding:"required"`
}

type CreatePairingResponse struct {
	Matches        [][]string `json:"matches"`
	Imperfect      []string   `json:"imperfect"`
	Key            string     `json:"key"`
	Text           string     `json:"text"`
	NovelPairs     int        `json:"novel_pairs"`
	RemainderScore int        `json:"remainder_score"`
}

type SendPairingRequest struct {
	Key string `json:"key" binding:"required"`
}

type SendPairingResponse struct {
	Link     string `json:"link"`
	Messaged int    `json:"messaged"`
	Failed   int    `json:"failed"`
}

func (s *Server) CreatePairing(c *gin.Context) {
	var req CreatePairingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	p, err := s.Rounds.Preview(c.Request.Context(), req.Seed)
	if err != nil {
		s.fail(c, err)
		return
	}

	resp := CreatePairingResponse{
		Matches:        make([][]string, len(p.Pairing.Matches)),
		Imperfect:      ids(p.Pairing.Imperfect),
		Key:            p.Key.String(),
		Text:           p.Text,
		NovelPairs:     p.NovelPairs,
		RemainderScore: p.RemainderScore,
	}
	for i, m := range p.Pairing.Matches {
		resp.Matches[i] = ids(m)
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) SendPairing(c *gin.Context) {
	var req SendPairingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	res, err := s.Rounds.Send(c.Request.Context(), req.Key)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, SendPairingResponse{Link: res.Link, Messaged: res.Messaged, Failed: res.Failed})
}

// fail maps domain errors onto status codes; the message is surfaced verbatim.
func (s *Server) fail(c *gin.Context, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		s.Log.ErrorContext(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// StatusFor returns the HTTP status for an error from the round service.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, replay.ErrInvalidKey),
		errors.Is(err, pairing.ErrInsufficientParticipants),
		errors.Is(err, pairing.ErrTooManyParticipants):
		return http.StatusBadRequest
	case errors.Is(err, replay.ErrKeyMismatch):
		return http.StatusConflict
	case errors.Is(err, roster.ErrRoleNotFound),
		errors.Is(err, roster.ErrNotEnoughMembers):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// ids renders user ids as strings; snowflakes overflow JSON numbers.
func ids(us []roster.UserID) []string {
	out := make([]string, len(us))
	for i, u := range us {
		out[i] = u.String()
	}
	return out
}
