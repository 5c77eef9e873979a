package internal

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

func StartCron(syncer *Syncer, schedule string) (*cron.Cron, error) {

	c := cron.New()

	log.Printf("Starting CRON job to sync events and hospitals (%s)", schedule)

	if _, err := c.AddFunc(schedule, func() {
		if err := syncer.SyncAll(context.Background()); err != nil {
			log.Printf("Error syncing snapshots: %v\n", err)
		}
	}); err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}
