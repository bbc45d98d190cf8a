package jobs

import (
	"fmt"
)

// Job is a scheduled task the manager can start and stop.
type Job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	jobs    []namedJob
	started []namedJob
}

type namedJob struct {
	name string
	job  Job
}

// NewJobManager creates a job manager that runs the auto delivery job.
func NewJobManager(autoDeliver *AutoDeliverJob) *JobManager {
	jm := &JobManager{}
	jm.Add("auto delivery", autoDeliver)
	return jm
}

// Add registers a job. Jobs start in the order they were added.
func (jm *JobManager) Add(name string, job Job) {
	jm.jobs = append(jm.jobs, namedJob{name: name, job: job})
}

// StartAll starts all scheduled jobs. If one fails, the jobs already started are
// stopped again.
func (jm *JobManager) StartAll() error {
	for _, j := range jm.jobs {
		if err := j.job.Start(); err != nil {
			jm.StopAll()
			return fmt.Errorf("failed to start %s job: %w", j.name, err)
		}
		jm.started = append(jm.started, j)
	}
	return nil
}

// StopAll stops the started jobs in reverse order.
func (jm *JobManager) StopAll() {
	for i := len(jm.started) - 1; i >= 0; i-- {
		jm.started[i].job.Stop()
	}
	jm.started = nil
}
