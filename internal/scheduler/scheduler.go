package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Job фоновая задача; ошибка только логируется
type Job func(ctx context.Context) error

// Scheduler запускает задачи по cron расписанию
// Запуски одной задачи не пересекаются: если предыдущий еще идет, очередной пропускается
type Scheduler struct {
	cron    *cron.Cron
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
	logger  Logger
}

// New создает планировщик в часовом поясе мастерской. timeout ограничивает один запуск задачи
func New(location *time.Location, timeout time.Duration, logger Logger) *Scheduler {
	if location == nil {
		location = time.Local
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(location),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		ctx:     ctx,
		cancel:  cancel,
		timeout: timeout,
		logger:  logger,
	}
}

// Add регистрирует задачу. Пустой spec отключает задачу
func (s *Scheduler) Add(name, spec string, job Job) error {
	if spec == "" {
		s.logger.Info("Scheduler: job %s is disabled", name)
		return nil
	}

	if _, err := s.cron.AddFunc(spec, func() { s.run(name, job) }); err != nil {
		return fmt.Errorf("%w: %s %q: %v", ErrInvalidSpec, name, spec, err)
	}

	s.logger.Info("Scheduler: job %s scheduled at %q", name, spec)
	return nil
}

// Start запускает планировщик в отдельной горутине
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler: started with %d jobs", len(s.cron.Entries()))
}

// Stop отменяет текущие задачи и ждет их завершения, но не дольше ctx
func (s *Scheduler) Stop(ctx context.Context) error {
	s.cancel()
	done := s.cron.Stop()

	select {
	case <-done.Done():
		s.logger.Info("Scheduler: stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Scheduler: stop timed out: %v", ctx.Err())
		return ctx.Err()
	}
}

func (s *Scheduler) run(name string, job Job) {
	ctx := s.ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	started := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Scheduler: job %s panicked: %v", name, r)
		}
	}()

	if err := job(ctx); err != nil {
		s.logger.Error("Scheduler: job %s failed after %s: %v", name, time.Since(started), err)
		return
	}
	s.logger.Info("Scheduler: job %s finished in %s", name, time.Since(started))
}
