package audit

import (
	"context"
	"log/slog"
	"sync"
)

// Sink принимает записи аудита. Запись не должна блокировать и не должна
// проваливать вызов разрешения, который она протоколирует.
type Sink interface {
	Record(rec Record)
}

// Store хранилище записей аудита (только добавление).
type Store interface {
	Append(ctx context.Context, rec Record) error
}

// AsyncSink буферизованный неблокирующий sink: записи ставятся в очередь и
// пишутся в хранилище фоновой горутиной. Медленное или отказавшее хранилище
// не превращается в задержку или ошибку вызова разрешения: при переполнении
// буфера запись отбрасывается с предупреждением в лог, ошибки записи тоже
// только логируются.
type AsyncSink struct {
	store  Store
	queue  chan Record
	logger *slog.Logger

	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
	done      chan struct{}
}

// NewAsyncSink создает sink с буфером указанного размера и запускает
// фоновую горутину записи.
func NewAsyncSink(store Store, bufferSize int) *AsyncSink {
	if bufferSize <= 0 {
		bufferSize = 1024
	}
	s := &AsyncSink{
		store:  store,
		queue:  make(chan Record, bufferSize),
		logger: slog.Default().With("component", "audit_sink"),
		done:   make(chan struct{}),
	}
	go s.drain()
	return s
}

// Record ставит запись в очередь. Никогда не блокирует: при полном буфере
// запись теряется, о потере сообщает лог. Запись после Close тоже
// отбрасывается с предупреждением, а не паникует.
func (s *AsyncSink) Record(rec Record) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		s.logger.Warn("audit sink closed, dropping record",
			"record_id", rec.ID, "subject_ref", rec.SubjectRef)
		return
	}

	select {
	case s.queue <- rec:
	default:
		s.logger.Warn("audit queue full, dropping record",
			"record_id", rec.ID, "subject_ref", rec.SubjectRef)
	}
}

// Close останавливает фоновую запись, дописав накопленную очередь.
func (s *AsyncSink) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.queue)
		s.mu.Unlock()
		<-s.done
	})
}

// drain пишет записи из очереди в хранилище до закрытия очереди.
func (s *AsyncSink) drain() {
	defer close(s.done)
	for rec := range s.queue {
		if err := s.store.Append(context.Background(), rec); err != nil {
			// Корректность разрешения не зависит от успеха аудита
			s.logger.Error("failed to append audit record",
				"record_id", rec.ID, "error", err)
		}
	}
}

// NopSink sink-заглушка, молча принимающая записи. Для тестов и запусков
// без аудита.
type NopSink struct{}

// Record реализует интерфейс Sink.
func (NopSink) Record(Record) {}
