package scheduler

import "github.com/go-co-op/gocron/v2"

// Scheduler sends to Tick every time the crontab fires.
// A tick is dropped when nobody is reading.
type Scheduler struct {
	cron gocron.Scheduler
	Tick chan struct{}
	job  gocron.Job
}

func NewScheduler(crontab string) (*Scheduler, error) {
	scheduler := &Scheduler{}

	cron, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	scheduler.cron = cron
	scheduler.Tick = make(chan struct{}, 1)

	j, err := cron.NewJob(
		gocron.CronJob(crontab, false),
		gocron.NewTask(
			func() {
				select {
				case scheduler.Tick <- struct{}{}:
				default:
				}
			},
		),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}
	scheduler.job = j

	return scheduler, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// RunNow fires the job immediately, outside of the crontab.
func (s *Scheduler) RunNow() error {
	return s.job.RunNow()
}

func (s *Scheduler) Shutdown() error {
	return s.cron.Shutdown()
}
