package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"interview-coach/internal/auth"
	"interview-coach/internal/cache"
	"interview-coach/internal/models"
	"interview-coach/internal/repositories"
	"interview-coach/internal/services"
)

const testSecret = "handlers-test-secret"

type fakeInterview struct {
	mu           sync.Mutex
	lastGenerate services.GenerationRequest
	lastFeedback services.FeedbackRequest
}

func (f *fakeInterview) GenerateQuestions(_ context.Context, req services.GenerationRequest) services.QuestionSet {
	f.mu.Lock()
	f.lastGenerate = req
	f.mu.Unlock()
	return services.QuestionSet{Questions: services.FallbackQuestions(req.ModuleType, 2)}
}

func (f *fakeInterview) AnalyzeFeedback(_ context.Context, req services.FeedbackRequest) services.FeedbackResult {
	f.mu.Lock()
	f.lastFeedback = req
	f.mu.Unlock()
	return services.FallbackFeedback()
}

func (f *fakeInterview) GenerateFollowUp(context.Context, string, string) services.FollowUpResult {
	return services.FallbackFollowUps()
}

type fakeWorker struct {
	mu       sync.Mutex
	enqueued []string
}

func (w *fakeWorker) Start(context.Context) {}

func (w *fakeWorker) Stop() {}

func (w *fakeWorker) EnqueueQuestions(_ services.ModuleType, questions []string, _ string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.enqueued = append(w.enqueued, questions...)
	return len(questions)
}

type fakeEmbedder struct{ err error }

func (e fakeEmbedder) GenerateEmbedding(context.Context, string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	return []float32{0.1, 0.2}, nil
}

type fakeBank struct {
	lastModule services.ModuleType
	lastLimit  int
}

func (b *fakeBank) InitCollection(context.Context) error { return nil }
func (b *fakeBank) Upsert(context.Context, services.QuestionEntry, []float32) error {
	return nil
}
func (b *fakeBank) Search(_ context.Context, _ []float32, module services.ModuleType, limit int) ([]services.QuestionMatch, error) {
	b.lastModule = module
	b.lastLimit = limit
	return []services.QuestionMatch{{Question: "Why Go?", ModuleType: services.ModuleTechnical, Score: 0.9}}, nil
}

type fakeSessionRepo struct {
	sessions []models.Session
	err      error
}

func (r *fakeSessionRepo) Create(s *models.Session) error {
	if r.err != nil {
		return r.err
	}
	r.sessions = append(r.sessions, *s)
	return nil
}

func (r *fakeSessionRepo) ListByUser(userID string, limit int) ([]models.Session, error) {
	out := make([]models.Session, 0)
	for i := len(r.sessions) - 1; i >= 0 && len(out) < limit; i-- {
		if r.sessions[i].UserID == userID {
			out = append(out, r.sessions[i])
		}
	}
	return out, nil
}

type fakeProfileRepo struct {
	profiles map[string]models.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]models.Profile{}}
}

func (r *fakeProfileRepo) Upsert(p *models.Profile) error {
	existing := r.profiles[p.UserID]
	existing.UserID = p.UserID
	existing.Name = p.Name
	existing.JobRole = p.JobRole
	existing.ExperienceLevel = p.ExperienceLevel
	if p.ResumeText != "" {
		existing.ResumeText = p.ResumeText
	}
	r.profiles[p.UserID] = existing
	return nil
}

func (r *fakeProfileRepo) FindByUserID(userID string) (*models.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, repositories.ErrProfileNotFound
	}
	return &p, nil
}

func (r *fakeProfileRepo) UpdateResume(userID, text, file string) error {
	p := r.profiles[userID]
	p.UserID = userID
	p.ResumeText = text
	p.ResumeFile = file
	r.profiles[userID] = p
	return nil
}

type fakePDF struct {
	text string
	err  error
}

func (f fakePDF) ExtractText(string) (string, error) { return f.text, f.err }
func (f fakePDF) ExtractTextWithMetaData(string) (*services.PDFContent, error) {
	return nil, errors.New("not used")
}

type testEnv struct {
	app       *fiber.App
	tokens    *auth.TokenService
	interview *fakeInterview
	worker    *fakeWorker
	bank      *fakeBank
	sessions  *fakeSessionRepo
	profiles  *fakeProfileRepo
	uploadDir string
}

type envOption func(*envConfig)

type envConfig struct {
	withBank bool
	pdf      fakePDF
}

func withBank() envOption { return func(c *envConfig) { c.withBank = true } }

func withPDF(text string, err error) envOption {
	return func(c *envConfig) { c.pdf = fakePDF{text: text, err: err} }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	cfg := envConfig{pdf: fakePDF{text: "Resume text"}}
	for _, opt := range opts {
		opt(&cfg)
	}

	log := zap.NewNop()
	env := &testEnv{
		tokens:    auth.NewTokenService(testSecret, ""),
		interview: &fakeInterview{},
		worker:    &fakeWorker{},
		sessions:  &fakeSessionRepo{},
		profiles:  newFakeProfileRepo(),
		uploadDir: t.TempDir(),
	}

	store := NewProfileStore(
		env.profiles,
		cache.NewProfileCache(cache.NewRedis(context.Background(), "", "", 0, log), time.Minute),
		log,
	)

	var bank services.QuestionBankService
	if cfg.withBank {
		env.bank = &fakeBank{}
		bank = env.bank
	}

	env.app = fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	RegisterRoutes(env.app, Handlers{
		Health:    NewHealthHandler(&services.OutcomeStats{}),
		Interview: NewInterviewHandler(env.interview, store, env.worker, fakeEmbedder{}, bank, log),
		Session:   NewSessionHandler(env.sessions, log),
		Profile:   NewProfileHandler(store, services.NewStorageService(env.uploadDir), cfg.pdf, 1024, log),
	}, auth.NewMiddleware(env.tokens))

	return env
}

func (e *testEnv) token(t *testing.T, uid string) string {
	t.Helper()
	tok, err := e.tokens.GenerateToken(uid, uid+"@example.com", "Test User", time.Hour)
	require.NoError(t, err)
	return tok
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return e.send(t, req)
}

func (e *testEnv) upload(t *testing.T, path, field, filename string, content []byte, token string) (int, map[string]any) {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	return e.send(t, req)
}

func (e *testEnv) send(t *testing.T, req *http.Request) (int, map[string]any) {
	t.Helper()

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}
