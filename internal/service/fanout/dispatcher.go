package fanout

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"fulfillment/internal/entities"
	"fulfillment/pkg/logger"
	"fulfillment/pkg/retrier"
	"fulfillment/pkg/retrier/backoff_adapter"

	"golang.org/x/sync/errgroup"
)

type Config struct {
	Workers   int
	QueueSize int
	Retry     retrier.Config
	// RedriveGrace возраст события, после которого его подбирает redrive
	RedriveGrace time.Duration
	RedriveBatch int
	// Retention сколько хранить отметки о доставке
	Retention time.Duration
	// ClaimLease через сколько захват канала другим процессом считается брошенным
	ClaimLease time.Duration
}

const defaultClaimLease = time.Minute

// ErrTargetBusy канал сейчас рассылает другой процесс, событие подберет redrive.
var ErrTargetBusy = errors.New("target is being published by another dispatcher")

// Dispatcher рассылает зафиксированные события по каналам.
// События одной сущности попадают в один шард и рассылаются в порядке фиксации.
type Dispatcher struct {
	log       handlerLogger
	events    EventRepository
	ledger    DeliveryLedger
	publisher Publisher
	locker    Locker
	retrier   retrier.Retrier
	config    Config
	now       func() time.Time

	mu     sync.RWMutex
	shards []chan entities.TransitionEvent
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(
	log handlerLogger,
	events EventRepository,
	ledger DeliveryLedger,
	publisher Publisher,
	locker Locker,
	config Config,
) *Dispatcher {
	if config.Workers <= 0 {
		config.Workers = 1
	}
	if config.ClaimLease <= 0 {
		config.ClaimLease = config.RedriveGrace
	}
	if config.ClaimLease <= 0 {
		config.ClaimLease = defaultClaimLease
	}
	if config.Retry.ShouldRetry == nil {
		config.Retry.ShouldRetry = isRetryable
	}

	return &Dispatcher{
		log:       log,
		events:    events,
		ledger:    ledger,
		publisher: publisher,
		locker:    locker,
		retrier:   backoff_adapter.New(config.Retry),
		config:    config,
		now:       time.Now,
	}
}

// Start запускает шарды. Повторный вызов без Stop ничего не делает.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.shards != nil {
		return
	}

	ctx, d.cancel = context.WithCancel(ctx)
	d.shards = make([]chan entities.TransitionEvent, d.config.Workers)
	for i := range d.shards {
		ch := make(chan entities.TransitionEvent, d.config.QueueSize)
		d.shards[i] = ch

		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			d.run(ctx, ch)
		}()
	}

	d.log.Info("Fanout dispatcher started",
		logger.NewField("workers", d.config.Workers),
		logger.NewField("queue_size", d.config.QueueSize),
	)
}

// Stop останавливает шарды и ждет завершения рассылок в работе.
// Неразосланные события остаются для redrive.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.shards == nil {
		d.mu.Unlock()
		return
	}
	d.cancel()
	d.shards = nil
	d.mu.Unlock()

	d.wg.Wait()
	d.log.Info("Fanout dispatcher stopped")
}

// Enqueue не блокирует вызывающего. Если очередь шарда полна или диспетчер
// не запущен, событие остается неразосланным и его подберет redrive.
func (d *Dispatcher) Enqueue(events ...entities.TransitionEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, event := range events {
		if d.shards == nil {
			EnqueueDroppedTotal.Inc()
			continue
		}
		select {
		case d.shards[shardOf(event, len(d.shards))] <- event:
		default:
			EnqueueDroppedTotal.Inc()
			d.log.Warn("Fanout queue is full, event left for redrive",
				logger.NewField("event_id", event.ID.String()),
				logger.NewField("entity", event.ShardKey()),
			)
		}
	}
}

// Dispatch публикует событие во все каналы параллельно. Событие помечается
// разосланным, только когда все каналы приняли его.
func (d *Dispatcher) Dispatch(ctx context.Context, event entities.TransitionEvent) error {
	announcement := BuildPayload(event)

	var g errgroup.Group
	for _, target := range Targets(event) {
		g.Go(func() error {
			return d.deliver(ctx, event, target, announcement)
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("dispatch event %s: %w", event.ID, err)
	}

	if err := d.events.MarkDispatched(ctx, event.ID, d.now()); err != nil {
		return fmt.Errorf("mark event %s dispatched: %w", event.ID, err)
	}
	EventsDispatchedTotal.Inc()
	return nil
}

// Redrive повторно рассылает события старше RedriveGrace, которые так и не были разосланы.
func (d *Dispatcher) Redrive(ctx context.Context) (int, error) {
	events, err := d.events.ListUndispatched(ctx, d.now().Add(-d.config.RedriveGrace), d.config.RedriveBatch)
	if err != nil {
		return 0, fmt.Errorf("list undispatched events: %w", err)
	}

	var (
		dispatched int
		errList    []error
	)
	for _, event := range events {
		if err := ctx.Err(); err != nil {
			errList = append(errList, err)
			break
		}
		if err := d.Dispatch(ctx, event); err != nil {
			errList = append(errList, err)
			continue
		}
		dispatched++
	}
	return dispatched, errors.Join(errList...)
}

// PurgeDelivered удаляет отметки о доставке старше Retention у разосланных событий.
// Отметки неразосланных событий нужны redrive, чтобы не повторять принятые каналы.
func (d *Dispatcher) PurgeDelivered(ctx context.Context) (int64, error) {
	purged, err := d.ledger.Purge(ctx, d.now().Add(-d.config.Retention))
	if err != nil {
		return 0, fmt.Errorf("purge fanout ledger: %w", err)
	}
	return purged, nil
}

func (d *Dispatcher) run(ctx context.Context, ch <-chan entities.TransitionEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-ch:
			if err := d.Dispatch(ctx, event); err != nil {
				d.log.Error("Failed to dispatch event",
					logger.NewField("event_id", event.ID.String()),
					logger.NewField("entity", event.ShardKey()),
					logger.NewField("error", err),
				)
			}
		}
	}
}

func (d *Dispatcher) deliver(
	ctx context.Context,
	event entities.TransitionEvent,
	target entities.ChannelScope,
	announcement entities.Announcement,
) error {
	name := target.Name()
	key := "fanout:" + event.ID.String() + ":" + name
	if err := d.locker.Lock(ctx, key); err != nil {
		return err
	}
	defer d.locker.Unlock(key)

	now := d.now()
	claim, err := d.ledger.Claim(ctx, event.ID, name, now, now.Add(-d.config.ClaimLease))
	if err != nil {
		return fmt.Errorf("claim %s: %w", name, err)
	}
	switch claim {
	case entities.ClaimDelivered:
		return nil
	case entities.ClaimBusy:
		ClaimsBusyTotal.Inc()
		return fmt.Errorf("%w: %s", ErrTargetBusy, name)
	}

	err = d.publishWithMetrics(ctx, target, announcement)
	if err != nil {
		d.log.Warn("Failed to publish announcement",
			logger.NewField("event_id", event.ID.String()),
			logger.NewField("target", name),
			logger.NewField("error", err),
		)
		// отпускаем захват, чтобы повтор не ждал истечения аренды
		if releaseErr := d.ledger.ReleaseClaim(context.WithoutCancel(ctx), event.ID, name); releaseErr != nil {
			d.log.Error("Failed to release fanout claim",
				logger.NewField("event_id", event.ID.String()),
				logger.NewField("target", name),
				logger.NewField("error", releaseErr),
			)
		}
		return fmt.Errorf("publish to %s: %w", name, err)
	}

	if err := d.ledger.MarkDelivered(ctx, event.ID, name, d.now()); err != nil {
		return fmt.Errorf("mark delivery to %s: %w", name, err)
	}
	return nil
}

func (d *Dispatcher) publishWithMetrics(ctx context.Context, target entities.ChannelScope, announcement entities.Announcement) error {
	var attempt uint64
	start := time.Now()

	err := d.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return d.publisher.Publish(ctx, target, announcement)
	})

	kind := string(target.Kind)
	PublishDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if attempt > 1 {
		PublishRetriesTotal.WithLabelValues(kind).Add(float64(attempt - 1))
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	PublishTotal.WithLabelValues(kind, result).Inc()

	return err
}

func shardOf(event entities.TransitionEvent, shards int) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(event.ShardKey()))
	return int(h.Sum32() % uint32(shards))
}

func isRetryable(err error) bool {
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}
