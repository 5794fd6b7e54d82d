package services

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Worker indexes questions into the question bank off the request path.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueQuestions(module ModuleType, questions []string, source string) int
}

type indexJob struct {
	entry QuestionEntry
}

type worker struct {
	embedder    Embedder
	bank        QuestionBankService
	logger      *zap.Logger
	jobQueue    chan indexJob
	concurrency int
	wg          sync.WaitGroup
	stopOnce    sync.Once
	stopChan    chan struct{}
}

func NewWorker(
	embedder Embedder,
	bank QuestionBankService,
	logger *zap.Logger,
	concurrency int,
	queueSize int,
) Worker {
	if concurrency <= 0 {
		concurrency = 1
	}
	if queueSize <= 0 {
		queueSize = 100
	}
	return &worker{
		embedder:    embedder,
		bank:        bank,
		logger:      logger,
		jobQueue:    make(chan indexJob, queueSize),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	w.logger.Info("starting question indexer", zap.Int("workers", w.concurrency))

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}
}

// Stop implements Worker. Jobs already queued are indexed before Stop returns.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		w.logger.Info("stopping question indexer")
		close(w.stopChan)
		w.wg.Wait()
		w.logger.Info("question indexer stopped")
	})
}

// EnqueueQuestions implements Worker. It never blocks: when the queue is full
// or the worker is stopped the remaining questions are dropped. It returns
// the number of questions accepted.
func (w *worker) EnqueueQuestions(module ModuleType, questions []string, source string) int {
	accepted := 0
	for _, q := range questions {
		select {
		case <-w.stopChan:
			w.logger.Warn("indexer stopped, dropping questions", zap.Int("dropped", len(questions)-accepted))
			return accepted
		default:
		}

		select {
		case w.jobQueue <- indexJob{entry: QuestionEntry{Question: q, ModuleType: module, Source: source}}:
			accepted++
		default:
			w.logger.Warn("index queue full, dropping questions", zap.Int("dropped", len(questions)-accepted))
			return accepted
		}
	}
	return accepted
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case job := <-w.jobQueue:
			w.index(ctx, workerID, job)
		case <-w.stopChan:
			// drain what is already queued
			for {
				select {
				case job := <-w.jobQueue:
					w.index(ctx, workerID, job)
				default:
					return
				}
			}
		}
	}
}

func (w *worker) index(ctx context.Context, workerID int, job indexJob) {
	embedding, err := w.embedder.GenerateEmbedding(ctx, job.entry.Question)
	if err != nil {
		w.logger.Warn("failed to embed question", zap.Int("worker", workerID), zap.Error(err))
		return
	}

	if err := w.bank.Upsert(ctx, job.entry, embedding); err != nil {
		w.logger.Warn("failed to index question", zap.Int("worker", workerID), zap.Error(err))
		return
	}

	w.logger.Debug("question indexed",
		zap.Int("worker", workerID),
		zap.String("module", string(job.entry.ModuleType)),
	)
}
