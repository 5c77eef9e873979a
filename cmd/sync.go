package cmd

import (
	"context"
	"log"

	"github.com/rm-hull/medevents-gateway/internal"
)

func Sync(dbPath string) error {
	a, err := bootstrap(dbPath)
	if err != nil {
		return err
	}
	defer a.Close()

	syncer := internal.NewSyncer(a.client, a.repo)
	if err := syncer.SyncAll(context.Background()); err != nil {
		return err
	}
	log.Println("sync complete")
	return nil
}
