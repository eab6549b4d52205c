package background

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"fulfillment/pkg/logger"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

// Task определяет интерфейс для фоновых задач, которые могут выполняться периодически.
type Task interface {
	// TTL возвращает интервал между выполнениями задачи.
	TTL() time.Duration

	// Do выполняет логику задачи.
	Do(context.Context) error

	// Info возвращает читаемое описание задачи для логгирования и отладки.
	Info() string
}

// ScheduledTask задача с cron-расписанием. Если Schedule() не пуст, TTL() игнорируется.
type ScheduledTask interface {
	Task

	// Schedule возвращает расписание в стандартном cron-формате (или дескриптор вида "@every 1h").
	Schedule() string
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

// Worker управляет выполнением набора фоновых задач.
type Worker struct {
	log   handlerLogger
	tasks []Task
	done  chan struct{}
}

// New создает и запускает Worker для выполнения фоновых задач.
//
// Поведение функции:
//  1. Все задачи сначала выполняются синхронно для инициализации (так называемый "прогрев").
//     Это гарантирует, что при старте приложения все задачи будут выполнены хотя бы один раз,
//     и любые ошибки инициализации будут возвращены немедленно.
//  2. Если любая задача завершается с ошибкой или паникой на этапе инициализации,
//     New возвращает ошибку и Worker не создается.
//  3. Некорректное cron-расписание тоже считается ошибкой инициализации.
//  4. Задачи выполняются в фоне до тех пор, пока не будет отменен переданный контекст.
func New(ctx context.Context, log handlerLogger, tasks []Task) (*Worker, error) {
	worker := &Worker{
		log:   log,
		tasks: tasks,
		done:  make(chan struct{}),
	}

	if len(tasks) == 0 {
		close(worker.done)
		return worker, nil
	}

	schedules := make([]cron.Schedule, len(tasks))
	for i, task := range tasks {
		expr := scheduleOf(task)
		if expr == "" {
			continue
		}
		schedule, err := cron.ParseStandard(expr)
		if err != nil {
			return nil, fmt.Errorf("task %q: parse schedule %q: %w", task.Info(), expr, err)
		}
		schedules[i] = schedule
	}

	initGroup, initCtx := errgroup.WithContext(ctx)
	for i := 0; i < len(tasks); i++ {
		task := tasks[i]
		initGroup.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					stack := debug.Stack()
					err = fmt.Errorf("init panic: %v\n%s", r, stack)
					log.Error("Task panic during init",
						logger.NewField("task", task.Info()),
						logger.NewField("recover", r),
						logger.NewField("stack", stack),
					)
				}
			}()
			log.Info("Initializing",
				logger.NewField("task", task.Info()),
			)
			return task.Do(initCtx)
		})
	}

	if err := initGroup.Wait(); err != nil {
		return nil, fmt.Errorf("failed to initialize tasks: %w", err)
	}

	running, runCtx := errgroup.WithContext(ctx)
	for i := 0; i < len(tasks); i++ {
		task := tasks[i]
		schedule := schedules[i]
		running.Go(func() error {
			if schedule != nil {
				worker.runScheduledTask(runCtx, task, schedule)
				return nil
			}
			worker.runBackgroundTask(runCtx, task)
			return nil
		})
	}

	go func() {
		_ = running.Wait()
		close(worker.done)
	}()

	return worker, nil
}

// Done закрывается, когда все задачи остановлены после отмены контекста.
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

func (w *Worker) runBackgroundTask(ctx context.Context, task Task) {
	ttl := task.TTL()
	if ttl <= 0 {
		w.log.Warn("invalid TTL, skipping periodic execution",
			logger.NewField("task", task.Info()),
			logger.NewField("TTL", ttl),
		)
		return
	}
	w.log.Warn("Starting periodic execution",
		logger.NewField("task", task.Info()),
		logger.NewField("TTL", ttl),
	)

	ticker := time.NewTicker(ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Warn("Stopping task (context cancelled)",
				logger.NewField("task", task.Info()),
			)
			return
		case <-ticker.C:
			w.executeTaskSafely(ctx, task)
		}
	}
}

func (w *Worker) runScheduledTask(ctx context.Context, task Task, schedule cron.Schedule) {
	w.log.Warn("Starting scheduled execution",
		logger.NewField("task", task.Info()),
		logger.NewField("schedule", scheduleOf(task)),
	)

	for {
		next := schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			w.log.Warn("Stopping task (context cancelled)",
				logger.NewField("task", task.Info()),
			)
			return
		case <-timer.C:
			w.executeTaskSafely(ctx, task)
		}
	}
}

func (w *Worker) executeTaskSafely(ctx context.Context, task Task) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()

			w.log.Error("Background task panic",
				logger.NewField("task", task.Info()),
				logger.NewField("recover", r),
				logger.NewField("stack", stack),
			)
		}
	}()

	if err := task.Do(ctx); err != nil {
		w.log.Error("Background task failed",
			logger.NewField("task", task.Info()),
			logger.NewField("error", err),
		)
	}
}

func scheduleOf(task Task) string {
	if scheduled, ok := task.(ScheduledTask); ok {
		return scheduled.Schedule()
	}
	return ""
}
