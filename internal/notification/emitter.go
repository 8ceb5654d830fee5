// Package notification раздаёт доменные события подписчикам: websocket-хабу, входящим уведомлениям,
// пересчёту рейтинга.
package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/gastro-backend/internal/domain/domainevent"
	"github.com/ignatzorin/gastro-backend/internal/goroutine"
	"github.com/ignatzorin/gastro-backend/internal/logger"
	"github.com/ignatzorin/gastro-backend/internal/metrics"
)

const defaultDeliveryTimeout = 10 * time.Second

// Sink - получатель доменных событий.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, record domainevent.Record) error
}

// SinkFunc адаптирует функцию к Sink.
type SinkFunc struct {
	SinkName string
	Fn       func(ctx context.Context, record domainevent.Record) error
}

func (f SinkFunc) Name() string { return f.SinkName }

func (f SinkFunc) Deliver(ctx context.Context, record domainevent.Record) error {
	return f.Fn(ctx, record)
}

type Emitter struct {
	mu      sync.RWMutex
	sinks   []Sink
	async   bool
	timeout time.Duration
	wg      sync.WaitGroup
	log     *logrus.Entry
}

type Option func(*Emitter)

// WithSync включает синхронную доставку в вызывающей горутине.
func WithSync() Option {
	return func(e *Emitter) { e.async = false }
}

func WithTimeout(d time.Duration) Option {
	return func(e *Emitter) {
		if d > 0 {
			e.timeout = d
		}
	}
}

func NewEmitter(opts ...Option) *Emitter {
	e := &Emitter{
		async:   true,
		timeout: defaultDeliveryTimeout,
		log:     logger.WithComponent("notification"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Register добавляет подписчика. Порядок доставки совпадает с порядком регистрации.
func (e *Emitter) Register(sinks ...Sink) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sinks = append(e.sinks, sinks...)
}

// Emit реализует domainevent.Emitter. Отмена контекста запроса не прерывает доставку.
func (e *Emitter) Emit(ctx context.Context, records ...domainevent.Record) {
	if len(records) == 0 {
		return
	}
	e.mu.RLock()
	sinks := append([]Sink(nil), e.sinks...)
	e.mu.RUnlock()

	ctx = context.WithoutCancel(ctx)
	if !e.async {
		e.dispatch(ctx, sinks, records)
		return
	}

	e.wg.Add(1)
	goroutine.SafeGo(func() {
		defer e.wg.Done()
		e.dispatch(ctx, sinks, records)
	})
}

// Wait блокируется до завершения всех асинхронных доставок.
func (e *Emitter) Wait() {
	e.wg.Wait()
}

func (e *Emitter) dispatch(ctx context.Context, sinks []Sink, records []domainevent.Record) {
	for _, record := range records {
		for _, sink := range sinks {
			err := e.deliver(ctx, sink, record)
			metrics.RecordNotification(string(record.Kind), sink.Name(), err)
			if err != nil {
				e.log.WithFields(logrus.Fields{
					"sink":         sink.Name(),
					"kind":         record.Kind,
					"recipient_id": record.RecipientID,
					"event_id":     record.EventID,
				}).WithError(err).Warn("не удалось доставить доменное событие")
			}
		}
	}
}

func (e *Emitter) deliver(ctx context.Context, sink Sink, record domainevent.Record) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic в подписчике %s: %v", sink.Name(), r)
		}
	}()
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	return sink.Deliver(ctx, record)
}

// Recorder - подписчик, запоминающий полученные события. Используется в тестах и для отладки.
type Recorder struct {
	mu      sync.Mutex
	records []domainevent.Record
}

func (r *Recorder) Name() string { return "recorder" }

func (r *Recorder) Deliver(_ context.Context, record domainevent.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
	return nil
}

func (r *Recorder) Records() []domainevent.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domainevent.Record(nil), r.records...)
}

// OfKind возвращает полученные события указанного вида.
func (r *Recorder) OfKind(kind domainevent.Kind) []domainevent.Record {
	var result []domainevent.Record
	for _, rec := range r.Records() {
		if rec.Kind == kind {
			result = append(result, rec)
		}
	}
	return result
}
