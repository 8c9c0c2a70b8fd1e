// Package notify carries user-facing outcome messages. The server keeps a
// short in-memory feed the dashboard polls; the terminal client prints them
// directly.
package notify

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

type Notification struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Feed is a bounded in-memory notification log, newest last. It satisfies
// the panel's Notifier interface so both sides of the app share one shape.
type Feed struct {
	mu      sync.Mutex
	entries []Notification
	limit   int
}

const defaultFeedLimit = 50

func NewFeed() *Feed {
	return &Feed{limit: defaultFeedLimit}
}

func (f *Feed) Success(msg string) { f.push(LevelSuccess, msg) }
func (f *Feed) Error(msg string)   { f.push(LevelError, msg) }

func (f *Feed) push(level Level, msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.entries = append(f.entries, Notification{Level: level, Message: msg, At: time.Now().UTC()})
	if len(f.entries) > f.limit {
		f.entries = f.entries[len(f.entries)-f.limit:]
	}

	log.Info().Str("level", string(level)).Str("message", msg).Msg("notification")
}

// Recent returns up to n notifications, newest first.
func (f *Feed) Recent(n int) []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	if n <= 0 || n > len(f.entries) {
		n = len(f.entries)
	}

	out := make([]Notification, 0, n)
	for i := len(f.entries) - 1; i >= len(f.entries)-n; i-- {
		out = append(out, f.entries[i])
	}
	return out
}
