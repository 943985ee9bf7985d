package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	portssvc "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/services"
)

const (
	defaultQueueSize     = 256
	defaultRenderTimeout = 30 * time.Second
)

// RenderStats counts voucher artifacts since start.
type RenderStats struct {
	Stored  int64
	Failed  int64
	Dropped int64
}

// RenderWorker renders committed vouchers and uploads the artifacts. It is
// the application's VoucherPublisher: Publish only enqueues, so a slow or
// failing renderer never holds up a workflow transaction.
type RenderWorker struct {
	renderer portssvc.DocumentRenderer
	store    portssvc.ObjectStore
	workers  int
	timeout  time.Duration
	logger   *slog.Logger

	queue  chan domain.VoucherData
	cancel context.CancelFunc
	wg     sync.WaitGroup

	stored  atomic.Int64
	failed  atomic.Int64
	dropped atomic.Int64
}

// NewRenderWorker creates a RenderWorker with workers goroutines.
func NewRenderWorker(renderer portssvc.DocumentRenderer, store portssvc.ObjectStore, workers int, logger *slog.Logger) *RenderWorker {
	if workers < 1 {
		workers = 1
	}
	return &RenderWorker{
		renderer: renderer,
		store:    store,
		workers:  workers,
		timeout:  defaultRenderTimeout,
		logger:   logger.With(slog.String("worker", "voucher-render")),
		queue:    make(chan domain.VoucherData, defaultQueueSize),
	}
}

var (
	_ portssvc.VoucherPublisher = (*RenderWorker)(nil)
	_ Worker                    = (*RenderWorker)(nil)
)

func (w *RenderWorker) Name() string { return "voucher-render" }

// ObjectName is the store path of a voucher artifact.
func (w *RenderWorker) ObjectName(doc domain.Document) string {
	return "documents/" + string(doc.DocType) + "/" + doc.DocNo + w.renderer.FileExtension()
}

func (w *RenderWorker) ArtifactURI(doc domain.Document) string {
	return w.store.ObjectURI(w.ObjectName(doc))
}

// Publish enqueues data for rendering. When the queue is full the voucher
// is dropped and logged; the artifact can be regenerated from the database.
func (w *RenderWorker) Publish(_ context.Context, data domain.VoucherData) {
	select {
	case w.queue <- data:
	default:
		w.dropped.Add(1)
		w.logger.Warn("Render queue full, voucher dropped", slog.String("doc_no", data.Document.DocNo))
	}
}

// Start launches the render goroutines. They stop when ctx is cancelled or
// Stop is called.
func (w *RenderWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return errors.New("render worker already started")
	}
	ctx, w.cancel = context.WithCancel(ctx)
	for i := 0; i < w.workers; i++ {
		w.wg.Add(1)
		go w.run(ctx)
	}
	return nil
}

// Stop cancels the workers and waits for in-flight renders to finish.
func (w *RenderWorker) Stop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	w.wg.Wait()
	if pending := len(w.queue); pending > 0 {
		w.logger.Warn("Render worker stopped with pending vouchers", slog.Int("pending", pending))
	}
	stats := w.Stats()
	w.logger.Info("Render worker totals",
		slog.Int64("stored", stats.Stored),
		slog.Int64("failed", stats.Failed),
		slog.Int64("dropped", stats.Dropped))
}

// Stats returns the current counters.
func (w *RenderWorker) Stats() RenderStats {
	return RenderStats{Stored: w.stored.Load(), Failed: w.failed.Load(), Dropped: w.dropped.Load()}
}

func (w *RenderWorker) run(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case data := <-w.queue:
			w.process(ctx, data)
		}
	}
}

func (w *RenderWorker) process(ctx context.Context, data domain.VoucherData) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.timeout)
	defer cancel()

	logger := w.logger.With(slog.String("doc_no", data.Document.DocNo), slog.String("document_id", data.Document.DocumentID))
	start := time.Now()

	out, err := w.renderer.Render(ctx, data)
	if err != nil {
		w.failed.Add(1)
		logger.Error("Failed to render voucher", slog.String("error", err.Error()))
		return
	}
	uri, err := w.store.Put(ctx, w.ObjectName(data.Document), w.renderer.ContentType(), out)
	if err != nil {
		w.failed.Add(1)
		logger.Error("Failed to store voucher artifact", slog.String("error", err.Error()))
		return
	}
	w.stored.Add(1)
	logger.Info("Voucher artifact stored",
		slog.String("uri", uri),
		slog.Int("bytes", len(out)),
		slog.Duration("duration", time.Since(start)))
}
