package cronjob

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Warmer periodically re-renders cached views so the public listing stays hot
// between invalidations.
type Warmer struct {
	spec string
	warm func(ctx context.Context) error
	c    *cron.Cron
}

// NewWarmer builds a warmer running warm on the given cron spec
// (seconds-granularity, e.g. "0 */5 * * * *" for every five minutes).
func NewWarmer(spec string, warm func(ctx context.Context) error) *Warmer {
	return &Warmer{spec: spec, warm: warm}
}

// Start initializes the cron task.
func (w *Warmer) Start() {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc(w.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := w.warm(ctx); err != nil {
			log.Printf("view warm failed: %v", err)
		}
	})
	if err != nil {
		log.Printf("Failed to create cache warm job: %v", err)
		return
	}

	log.Printf("View warmer started (spec %q)", w.spec)
	c.Start()
	w.c = c
}

// Stop halts the cron scheduler.
func (w *Warmer) Stop() {
	if w.c != nil {
		w.c.Stop()
	}
}
