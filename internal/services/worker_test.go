package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeEmbedder struct {
	err error
}

func (f fakeEmbedder) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []float32{float32(len(text))}, nil
}

type memoryBank struct {
	mu      sync.Mutex
	entries []QuestionEntry
}

func (m *memoryBank) InitCollection(context.Context) error { return nil }

func (m *memoryBank) Upsert(_ context.Context, entry QuestionEntry, _ []float32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memoryBank) Search(context.Context, []float32, ModuleType, int) ([]QuestionMatch, error) {
	return nil, nil
}

func (m *memoryBank) questions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.Question)
	}
	return out
}

func TestWorkerIndexesQueuedQuestionsBeforeStop(t *testing.T) {
	bank := &memoryBank{}
	w := NewWorker(fakeEmbedder{}, bank, zap.NewNop(), 3, 10)
	w.Start(context.Background())

	accepted := w.EnqueueQuestions(ModuleHR, []string{"Q1", "Q2", "Q3"}, "generated")
	w.Stop()

	assert.Equal(t, 3, accepted)
	assert.ElementsMatch(t, []string{"Q1", "Q2", "Q3"}, bank.questions())
}

func TestWorkerDropsWhenQueueFull(t *testing.T) {
	bank := &memoryBank{}
	// not started, so nothing drains the queue
	w := NewWorker(fakeEmbedder{}, bank, zap.NewNop(), 1, 2)

	accepted := w.EnqueueQuestions(ModuleTechnical, []string{"Q1", "Q2", "Q3", "Q4"}, "generated")

	assert.Equal(t, 2, accepted)
}

func TestWorkerRejectsAfterStop(t *testing.T) {
	w := NewWorker(fakeEmbedder{}, &memoryBank{}, zap.NewNop(), 1, 5)
	w.Start(context.Background())
	w.Stop()
	w.Stop()

	assert.Equal(t, 0, w.EnqueueQuestions(ModuleHR, []string{"Q1"}, "generated"))
}

func TestWorkerSkipsEmbeddingFailures(t *testing.T) {
	bank := &memoryBank{}
	w := NewWorker(fakeEmbedder{err: errors.New("quota")}, bank, zap.NewNop(), 2, 5)
	w.Start(context.Background())

	w.EnqueueQuestions(ModuleBehavioral, []string{"Q1", "Q2"}, "generated")
	w.Stop()

	assert.Empty(t, bank.questions())
}

func TestQuestionPointIDStable(t *testing.T) {
	a := questionPointID(ModuleHR, "Why here?")
	b := questionPointID(ModuleHR, "Why here?")
	c := questionPointID(ModuleTechnical, "Why here?")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
