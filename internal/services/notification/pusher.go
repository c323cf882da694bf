package notification

import (
	"context"
	"log"
)

// LogPusher is a stand-in push channel that only logs. It keeps the push
// path wired end to end until a real provider is configured.
type LogPusher struct{}

func NewLogPusher() *LogPusher { return &LogPusher{} }

func (p *LogPusher) Push(ctx context.Context, userID uint, title, body string) error {
	log.Printf("push to user %d: %s - %s", userID, title, body)
	return nil
}
