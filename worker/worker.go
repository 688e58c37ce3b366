package worker

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
)

// IJob job的接口
type IJob interface {
	Start() error
	Run()
	Stop() error
}

// OnWork one round of a job
type OnWork func(ctx context.Context) error

// BaseJob cron job that skips a tick while the previous round is running
type BaseJob struct {
	Name      string
	Cron      *cron.Cron
	OnWork    OnWork
	isRunning int32
}

// NewBaseJob job running onWork every interval
func NewBaseJob(name, location string, interval time.Duration, onWork OnWork) (*BaseJob, error) {
	l, err := time.LoadLocation(location)
	if err != nil {
		return nil, fmt.Errorf("load location %q: %w", location, err)
	}

	job := &BaseJob{
		Name:   name,
		Cron:   cron.New(cron.WithLocation(l)),
		OnWork: onWork,
	}

	if _, err := job.Cron.AddFunc(fmt.Sprintf("@every %s", interval), job.Run); err != nil {
		return nil, err
	}

	return job, nil
}

func (job *BaseJob) Start() error {
	job.Cron.Start()
	return nil
}

func (job *BaseJob) Stop() error {
	<-job.Cron.Stop().Done()
	return nil
}

func (job *BaseJob) Run() {
	if !atomic.CompareAndSwapInt32(&job.isRunning, 0, 1) {
		return
	}
	defer atomic.StoreInt32(&job.isRunning, 0)

	ctx := context.Background()
	if err := job.OnWork(ctx); err != nil {
		logger.FromContext(ctx).WithField("worker", job.Name).WithError(err).Errorln("work failed")
	}
}
