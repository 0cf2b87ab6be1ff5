package scheduler

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/sitecheckhq/sitecheck/internal/generator"
)

// Run starts a background cron that invokes a full generation pass on the
// given cron spec (e.g. "0 * * * *" for hourly). Blocks forever; call from a
// goroutine.
func Run(gen *generator.Service, cronSpec string) error {
	c := cron.New()

	_, err := c.AddFunc(cronSpec, func() {
		sum, err := gen.RunAll(context.Background())
		if err != nil {
			log.Printf("scheduler: generation run failed: %v", err)
			return
		}
		log.Printf("scheduler: generated %d tasks across %d schedules (%d failures)",
			sum.TasksCreated, sum.SchedulesProcessed, len(sum.Failures))
	})
	if err != nil {
		return err
	}

	c.Start()
	select {} // cron entries run on their own goroutines
}
