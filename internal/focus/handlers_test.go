package focus

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reup-focus-backend/internal/ai"
	"reup-focus-backend/internal/analytics"
	"reup-focus-backend/internal/auth"
)

var testSecret = []byte("focus-test-secret")

type apiFixture struct {
	svc *Service
	srv *httptest.Server
}

func newAPIFixture(t *testing.T, model Model) *apiFixture {
	t.Helper()
	svc := newTestService(NewMemoryStore(), model)
	mux := http.NewServeMux()
	Register(mux, auth.New(testSecret), svc, analytics.NewRecorder(nil))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return &apiFixture{svc: svc, srv: srv}
}

func (f *apiFixture) do(t *testing.T, userID int, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, f.srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if userID > 0 {
		token, err := auth.GenerateToken(testSecret, userID)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func TestFocusAPI_Auth(t *testing.T) {
	f := newAPIFixture(t, replying(""))

	resp, _ := f.do(t, 0, http.MethodGet, "/focus/task", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = f.do(t, 0, http.MethodPost, "/focus/first-step", `{"description":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestFocusAPI_Task(t *testing.T) {
	f := newAPIFixture(t, replying(""))

	resp, _ := f.do(t, 1, http.MethodGet, "/focus/task", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = f.do(t, 1, http.MethodPut, "/focus/task", `{"description":"   "}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = f.do(t, 1, http.MethodPut, "/focus/task", `not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := f.do(t, 1, http.MethodPut, "/focus/task", `{"description":"Get organized for the week"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Get organized for the week", body["description"])
	assert.NotEmpty(t, body["id"])

	resp, body = f.do(t, 1, http.MethodGet, "/focus/task", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Get organized for the week", body["description"])

	resp, _ = f.do(t, 1, http.MethodDelete, "/focus/task", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = f.do(t, 1, http.MethodGet, "/focus/task", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = f.do(t, 1, http.MethodPatch, "/focus/task", "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestFocusAPI_FirstStep(t *testing.T) {
	ctx := context.Background()

	t.Run("Should generate and then serve the first step", func(t *testing.T) {
		f := newAPIFixture(t, replying(`Sure! {"suggestion": "List three main tasks you need to accomplish this week."}`))
		task, err := f.svc.SetCurrentTask(ctx, 1, "Get organized for the week")
		require.NoError(t, err)

		resp, _ := f.do(t, 1, http.MethodGet, "/focus/first-step", "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp, body := f.do(t, 1, http.MethodPost, "/focus/first-step", `{"task_id":"`+task.ID+`"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "List three main tasks you need to accomplish this week.", body["text"])

		resp, body = f.do(t, 1, http.MethodGet, "/focus/first-step", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "List three main tasks you need to accomplish this week.", body["text"])
	})

	t.Run("Should require a task reference", func(t *testing.T) {
		f := newAPIFixture(t, replying(""))
		resp, _ := f.do(t, 1, http.MethodPost, "/focus/first-step", `{}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Should report a missing current task", func(t *testing.T) {
		f := newAPIFixture(t, replying(""))
		resp, body := f.do(t, 1, http.MethodPost, "/focus/first-step", `{"description":"Write the report"}`)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, KindPrecondition, body["kind"])
		assert.Equal(t, ErrNoCurrentTask.Error(), body["reason"])
	})

	t.Run("Should report the failing validator", func(t *testing.T) {
		f := newAPIFixture(t, replying(`{"suggestion": "Think about what you want to accomplish."}`))
		_, err := f.svc.SetCurrentTask(ctx, 1, "Get organized for the week")
		require.NoError(t, err)

		resp, body := f.do(t, 1, http.MethodPost, "/focus/first-step", `{"description":"Get organized for the week"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, KindValidation, body["kind"])
		assert.Equal(t, "actionable", body["validator"])
		assert.Equal(t, "Think about what you want to accomplish.", body["text"])

		resp, _ = f.do(t, 1, http.MethodGet, "/focus/first-step", "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Should report unparseable model output", func(t *testing.T) {
		f := newAPIFixture(t, replying("no json here"))
		_, err := f.svc.SetCurrentTask(ctx, 1, "Get organized for the week")
		require.NoError(t, err)

		resp, body := f.do(t, 1, http.MethodPost, "/focus/first-step", `{"description":"Get organized for the week"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, KindExtraction, body["kind"])
		assert.Equal(t, "no json here", body["raw"])
	})
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{"precondition", &PreconditionError{UserID: 1, Err: ErrTaskMismatch}, http.StatusConflict, KindPrecondition},
		{"timeout", &TimeoutError{Err: ai.ErrTimeout}, http.StatusGatewayTimeout, KindTimeout},
		{"model", &ModelInvocationError{Err: ai.ErrRateLimited}, http.StatusBadGateway, KindModelInvocation},
		{"stale", ErrStaleTask, http.StatusConflict, KindStaleTask},
		{"other", errors.New("boom"), http.StatusInternalServerError, KindInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := classify(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.kind, body.Kind)
		})
	}

	_, body := classify(errors.New("secret detail"))
	assert.Equal(t, "internal error", body.Message)
}

func TestFocusAPI_ModelTimeout(t *testing.T) {
	f := newAPIFixture(t, modelFunc(func(context.Context, string) (string, error) {
		return "", ai.ErrTimeout
	}))
	_, err := f.svc.SetCurrentTask(context.Background(), 1, "Clean the kitchen")
	require.NoError(t, err)

	resp, body := f.do(t, 1, http.MethodPost, "/focus/first-step", `{"description":"Clean the kitchen"}`)
	assert.Equal(t, http.StatusGatewayTimeout, resp.StatusCode)
	assert.Equal(t, KindTimeout, body["kind"])
}
