package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lphan/macwatch/app/catalog"
	"github.com/lphan/macwatch/app/cfg"
	"github.com/lphan/macwatch/app/database"
	"github.com/lphan/macwatch/app/monitor"
	"github.com/lphan/macwatch/app/shops"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

type Scheduler struct {
	configCache *shops.ConfigCache
	store       *catalog.Store
	detector    *monitor.Detector
	writer      *monitor.Writer
	runRepo     database.ChangeRunRepository
	interval    time.Duration
	workerCount int
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	taskQueue   chan TaskInterface
}

func NewScheduler(configCache *shops.ConfigCache, store *catalog.Store,
	detector *monitor.Detector, writer *monitor.Writer,
	runRepo database.ChangeRunRepository) TaskSchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := cfg.Get()

	return &Scheduler{
		configCache: configCache,
		store:       store,
		detector:    detector,
		writer:      writer,
		runRepo:     runRepo,
		interval:    time.Duration(cfg.SchedulerInterval) * time.Second,
		workerCount: cfg.WorkerCount,
		ctx:         ctx,
		cancel:      cancel,
		taskQueue:   make(chan TaskInterface, 300),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		if err := s.TriggerCycle(); err != nil {
			slog.Warn("Failed to start initial collection cycle", "error", err)
		}

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				if err := s.TriggerCycle(); err != nil {
					slog.Warn("Failed to start collection cycle", "error", err)
				}
			}
		}
	}()

}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

// TriggerCycle starts one full collection cycle: every enabled shop is
// collected concurrently and, once the last shop reports, a single
// detection task diffs the merged snapshot against the price history.
func (s *Scheduler) TriggerCycle() error {
	shopConfigs := s.configCache.GetEnabledConfigs()
	if len(shopConfigs) == 0 {
		slog.Debug("No enabled shop configurations found")
		return nil
	}

	slog.Debug("Starting collection cycle", "shops", len(shopConfigs))

	assembler := NewSnapshotAssembler(len(shopConfigs), func(listings []catalog.Listing) {
		detectTask := NewDetectChangesTask(listings, s.store, s.detector, s.writer, s.runRepo)
		if err := s.EnqueueTask(detectTask); err != nil {
			slog.Error("Failed to enqueue DetectChangesTask", "error", err)
		}
	})

	for _, shopConfig := range shopConfigs {
		collectTask := NewCollectShopTask(shopConfig, assembler)
		if err := s.EnqueueTask(collectTask); err != nil {
			slog.Warn("Failed to enqueue CollectShopTask", "shop", shopConfig.Name, "error", err)
			assembler.Fail(shopConfig.Name, err)
		}
	}

	return nil
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 5*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)

	if err != nil {
		slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", err)

		// Collect tasks report their own failure to the assembler and
		// must not be retried, a late duplicate delivery would corrupt
		// the cycle count. Only the detection task is retryable.
		if task.GetType() != TaskTypeDetectChanges {
			return
		}

		if task.CanRetry() {
			task.IncrementRetryCount()
			retryDelay := time.Duration(1<<uint(task.GetRetryCount()-1)) * time.Second
			if retryDelay > 30*time.Second {
				retryDelay = 30 * time.Second
			}

			slog.Warn("Task retry scheduled", "type", string(task.GetType()), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "delay", retryDelay.String())

			go func() {
				time.Sleep(retryDelay)
				select {
				case <-s.ctx.Done():
					slog.Debug("Scheduler stopped, skipping task retry", "type", string(task.GetType()), "id", task.GetID())
					return
				default:
					if retryErr := s.EnqueueTask(task); retryErr != nil {
						slog.Error("Failed to re-enqueue task for retry", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", retryErr)
					}
				}
			}()
		} else {
			slog.Error("Task failed after maximum retries", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "last_error", err)
		}
	}
}
