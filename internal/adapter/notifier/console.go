package notifier

import (
	"context"
	"log"
)

// Console logs notifications instead of delivering them. Default when no
// message queue is configured.
type Console struct{}

func NewConsole() *Console {
	return &Console{}
}

func (c *Console) Notify(_ context.Context, to, subject, body string) error {
	log.Printf("[notify] to=%s %s :: %s", to, subject, body)
	return nil
}
