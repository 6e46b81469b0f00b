package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/aptiscore/config"
	"github.com/lshigami/aptiscore/internal/auth"
	"github.com/lshigami/aptiscore/internal/controller"
	adminctrl "github.com/lshigami/aptiscore/internal/controller/admin"
	userctrl "github.com/lshigami/aptiscore/internal/controller/user"
	"github.com/lshigami/aptiscore/internal/model"
	"github.com/lshigami/aptiscore/internal/repository"
	"github.com/lshigami/aptiscore/internal/scoring"
	"github.com/lshigami/aptiscore/internal/service"
	"github.com/lshigami/aptiscore/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testServer struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
	tokens *auth.TokenService
}

func newTestServer(t *testing.T, mode string) *testServer {
	t.Helper()
	cfg := &config.Config{
		Server: config.Server{Mode: mode, AllowOrigins: []string{"*"}},
		Auth:   config.Auth{JWTSecret: "s3cret", CookieName: "session", TokenTTL: time.Hour},
	}
	db := testutil.NewDB(t)

	setRepo := repository.NewTestSetRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	resultRepo := repository.NewTestResultRepository(db)
	aggregator := service.NewResultAggregator(setRepo, answerRepo)
	converter := service.NewScoreConverterService()
	llm, err := service.NewGeminiLLMService(cfg)
	require.NoError(t, err)

	submissions := service.NewSubmissionService(db, setRepo, questionRepo, submissionRepo, answerRepo,
		repository.NewUserProgressRepository(db), resultRepo, aggregator, converter)
	grading := service.NewGradingService(db, setRepo, questionRepo, submissionRepo, answerRepo,
		repository.NewManualGradingRepository(db), resultRepo, aggregator, converter, llm)

	tokens := auth.NewTokenService(cfg)
	mw := auth.NewMiddleware(cfg, tokens)

	router, err := NewGinEngine(cfg)
	require.NoError(t, err)
	RegisterRoutes(router, cfg, mw, Controllers{
		Auth:       controller.NewAuthController(tokens, mw),
		TestSets:   userctrl.NewTestSetController(service.NewTestSetService(setRepo)),
		Submission: userctrl.NewSubmissionController(submissions),
		Grading:    adminctrl.NewGradingController(grading),
	})
	return &testServer{t: t, db: db, router: router, tokens: tokens}
}

func (s *testServer) token(userID uint, role string) string {
	s.t.Helper()
	raw, _, err := s.tokens.Issue(userID, role)
	require.NoError(s.t, err)
	return raw
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestSubmissionFlowOverHTTP(t *testing.T) {
	s := newTestServer(t, gin.TestMode)
	mcq := testutil.CreateQuestion(t, s.db, scoring.TypeMCQSingle, []string{"B"})
	writing := testutil.CreateQuestion(t, s.db, scoring.TypeWritingPrompt, nil)
	set := testutil.CreateSet(t, s.db, 0,
		testutil.Item{Question: mcq},
		testutil.Item{Question: writing, Weight: testutil.Weight(5)},
	)
	learner := s.token(7, auth.RoleLearner)
	admin := s.token(1, auth.RoleAdmin)

	w := s.do(http.MethodPost, "/api/v1/submissions/start", learner, gin.H{"setId": set.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	started := decode[map[string]any](t, w)
	assert.Equal(t, float64(1), started["attempt"])
	id := uint(started["id"].(float64))
	base := "/api/v1/submissions/" + itoa(id)

	w = s.do(http.MethodPost, base+"/answers", learner, gin.H{"questionId": mcq.ID, "answer": "B", "timeSpentSec": 30})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, decode[map[string]any](t, w)["isCorrect"])

	w = s.do(http.MethodPost, base+"/answers", learner, gin.H{"questionId": writing.ID, "answer": "My essay"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Nil(t, decode[map[string]any](t, w)["isCorrect"])

	w = s.do(http.MethodPost, base+"/submit", learner, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := decode[map[string]any](t, w)
	assert.Equal(t, float64(1), result["score"])
	assert.Equal(t, float64(6), result["maxScore"])

	w = s.do(http.MethodPost, base+"/answers", learner, gin.H{"questionId": mcq.ID, "answer": "A"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "answers are frozen after submit")

	w = s.do(http.MethodGet, "/api/v1/admin/submissions?skill=writing", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, decode[[]map[string]any](t, w), 1)

	w = s.do(http.MethodPost, "/api/v1/admin/grade", admin, gin.H{"submissionId": id, "questionId": writing.ID, "manualScore": 4})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/v1/admin/submissions/"+itoa(id)+"/complete", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	completed := decode[map[string]any](t, w)
	assert.Equal(t, float64(5), completed["score"])
	total, ok := completed["totalScore"]
	require.True(t, ok, "complete response carries totalScore")
	assert.Equal(t, float64(5), total)
	assert.Equal(t, "grading completed", completed["message"])

	w = s.do(http.MethodGet, base, learner, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var stored model.Submission
	require.NoError(t, s.db.First(&stored, id).Error)
	assert.Equal(t, model.StatusGraded, stored.Status)
}

func TestHTTPErrors(t *testing.T) {
	s := newTestServer(t, gin.TestMode)
	q := testutil.CreateQuestion(t, s.db, scoring.TypeMCQSingle, []string{"B"})
	set := testutil.CreateSet(t, s.db, 0, testutil.Item{Question: q})
	learner := s.token(7, auth.RoleLearner)
	other := s.token(8, auth.RoleLearner)
	admin := s.token(1, auth.RoleAdmin)

	w := s.do(http.MethodPost, "/api/v1/submissions/start", learner, gin.H{"setId": set.ID})
	require.Equal(t, http.StatusCreated, w.Code)
	id := itoa(uint(decode[map[string]any](t, w)["id"].(float64)))

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   any
		want   int
	}{
		{"no token", http.MethodGet, "/api/v1/submissions", "", nil, http.StatusUnauthorized},
		{"learner on admin route", http.MethodGet, "/api/v1/admin/submissions", learner, nil, http.StatusForbidden},
		{"unknown set", http.MethodPost, "/api/v1/submissions/start", learner, gin.H{"setId": 999}, http.StatusNotFound},
		{"missing set id", http.MethodPost, "/api/v1/submissions/start", learner, gin.H{}, http.StatusBadRequest},
		{"bad path id", http.MethodGet, "/api/v1/submissions/abc", learner, nil, http.StatusBadRequest},
		{"someone else's submission", http.MethodGet, "/api/v1/submissions/" + id, other, nil, http.StatusForbidden},
		{"question outside set", http.MethodPost, "/api/v1/submissions/" + id + "/answers", learner, gin.H{"questionId": 999, "answer": "B"}, http.StatusNotFound},
		{"malformed answer", http.MethodPost, "/api/v1/submissions/" + id + "/answers", learner, gin.H{"questionId": q.ID, "answer": []any{[]any{1}}}, http.StatusBadRequest},
		{"negative time", http.MethodPost, "/api/v1/submissions/" + id + "/answers", learner, gin.H{"questionId": q.ID, "answer": "B", "timeSpentSec": -1}, http.StatusBadRequest},
		{"unknown skill filter", http.MethodGet, "/api/v1/admin/submissions?skill=cooking", admin, nil, http.StatusBadRequest},
		{"complete in progress", http.MethodPost, "/api/v1/admin/submissions/" + id + "/complete", admin, nil, http.StatusBadRequest},
		{"suggestion without llm", http.MethodGet, "/api/v1/admin/submissions/" + id + "/answers/" + itoa(q.ID) + "/suggestion", admin, nil, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
			assert.NotEmpty(t, decode[map[string]any](t, w)["error"])
		})
	}
}

func TestSetsHideAnswerKeys(t *testing.T) {
	s := newTestServer(t, gin.TestMode)
	q := testutil.CreateQuestion(t, s.db, scoring.TypeMCQSingle, []string{"SECRET"})
	set := testutil.CreateSet(t, s.db, 600, testutil.Item{Question: q})
	learner := s.token(7, auth.RoleLearner)

	w := s.do(http.MethodGet, "/api/v1/sets", learner, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, decode[[]map[string]any](t, w), 1)

	w = s.do(http.MethodGet, "/api/v1/sets/"+itoa(set.ID), learner, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "SECRET")

	w = s.do(http.MethodGet, "/api/v1/sets/999", learner, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(t, gin.TestMode)

	w := s.do(http.MethodGet, "/api/v1/submissions", "", nil)
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)

	const id = "5f0c7f32-6b1c-4d39-9b86-3f3f3a7f7f0e"
	req := httptest.NewRequest(http.MethodGet, "/api/v1/submissions", nil)
	req.Header.Set(RequestIDHeader, id)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/submissions", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.NotEqual(t, "not-a-uuid", rec.Header().Get(RequestIDHeader))
}

func TestDevTokenRoute(t *testing.T) {
	s := newTestServer(t, gin.TestMode)
	w := s.do(http.MethodPost, "/api/v1/auth/token", "", gin.H{"userId": 7, "role": "learner"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := decode[map[string]any](t, w)["token"].(string)

	cookie := w.Result().Cookies()
	require.Len(t, cookie, 1)
	assert.Equal(t, "session", cookie[0].Name)
	assert.True(t, cookie[0].HttpOnly)

	w = s.do(http.MethodGet, "/api/v1/submissions", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/api/v1/auth/token", "", gin.H{"userId": 7, "role": "root"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	release := newTestServer(t, gin.ReleaseMode)
	gin.SetMode(gin.TestMode)
	w = release.do(http.MethodPost, "/api/v1/auth/token", "", gin.H{"userId": 7, "role": "admin"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
