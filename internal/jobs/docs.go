// Package jobs provides scheduled background tasks for the print shop.
//
// Jobs are cron-based and use github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// AutoDeliverJob runs every 15 minutes by default. It looks for orders that are still
// shipped more than a grace period after their estimated delivery date and marks them
// delivered with the description "Delivery confirmed automatically".
//
// # Usage
//
//	job := jobs.NewAutoDeliverJob(autoDeliverHandler, nil, jobs.AutoDeliverSettings{}, logger)
//	jobManager := jobs.NewJobManager(job)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and retried on the next tick. Orders the handler could not
// deliver stay shipped and are picked up again.
package jobs
