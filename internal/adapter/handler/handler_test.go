package handler_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"files-manager/internal/adapter/handler"
	infra "files-manager/internal/infrastructure/repository"
	"files-manager/internal/usecase"
	"files-manager/internal/usecase/mocks"
)

type testEnv struct {
	router *gin.Engine
	redis  *miniredis.Miniredis
	queue  *mocks.MockTaskQueue
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := infra.OpenDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	blobs, err := infra.NewLocalBlobs(t.TempDir())
	require.NoError(t, err)

	queue := new(mocks.MockTaskQueue)
	queue.On("EnqueueThumbnail", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	queue.On("EnqueueWelcome", mock.Anything, mock.Anything).Return(nil).Maybe()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := infra.NewRedisSessions(client)
	records := infra.NewSQLiteRecords(db)

	authUseCase := usecase.NewAuthUseCase(sessions, records, queue, logger)
	filesUseCase := usecase.NewFilesUseCase(records, blobs, queue, logger)
	appUseCase := usecase.NewAppUseCase(sessions, records)

	router := gin.New()
	handler.NewAppHandler(appUseCase, logger).RegisterRoutes(router)
	handler.NewAuthHandler(authUseCase, logger).RegisterRoutes(router)
	handler.NewFilesHandler(authUseCase, filesUseCase, logger).RegisterRoutes(router)

	return &testEnv{router: router, redis: mr, queue: queue}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (e *testEnv) register(t *testing.T, email, password string) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/users", gin.H{"email": email, "password": password}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeJSON(t, w)["id"].(string)
}

func (e *testEnv) connect(t *testing.T, email, password string) string {
	t.Helper()
	creds := base64.StdEncoding.EncodeToString([]byte(email + ":" + password))
	w := e.do(t, http.MethodGet, "/connect", nil, map[string]string{"Authorization": "Basic " + creds})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decodeJSON(t, w)["token"].(string)
}

func TestUsersEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/users", gin.H{"email": "a@b.com", "password": "pw"}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, "a@b.com", body["email"])
	assert.NotEmpty(t, body["id"])
	_, hasPassword := body["password"]
	assert.False(t, hasPassword)

	t.Run("duplicate email", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/users", gin.H{"email": "a@b.com", "password": "pw"}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Already exist", decodeJSON(t, w)["error"])
	})

	t.Run("missing email", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/users", gin.H{"password": "pw"}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Missing email", decodeJSON(t, w)["error"])
	})

	t.Run("missing password", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/users", gin.H{"email": "x@y.com"}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Missing password", decodeJSON(t, w)["error"])
	})
}

func TestConnectDisconnectMe(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "a@b.com", "pw")

	token := env.connect(t, "a@b.com", "pw")
	require.NotEmpty(t, token)

	t.Run("me returns id and email", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/users/me", nil, map[string]string{"x-token": token})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "a@b.com", decodeJSON(t, w)["email"])
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		creds := base64.StdEncoding.EncodeToString([]byte("a@b.com:wrong"))
		w := env.do(t, http.MethodGet, "/connect", nil, map[string]string{"Authorization": "Basic " + creds})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Unauthorized", decodeJSON(t, w)["error"])
	})

	t.Run("missing auth header is the same unauthorized", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/connect", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Unauthorized", decodeJSON(t, w)["error"])
	})

	t.Run("disconnect invalidates the token", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/disconnect", nil, map[string]string{"x-token": token})
		require.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())

		w = env.do(t, http.MethodGet, "/users/me", nil, map[string]string{"x-token": token})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token is unauthorized", func(t *testing.T) {
		token := env.connect(t, "a@b.com", "pw")
		env.redis.FastForward(25 * time.Hour)

		w := env.do(t, http.MethodGet, "/users/me", nil, map[string]string{"x-token": token})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestFilesUploadAndDownload(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "a@b.com", "pw")
	token := env.connect(t, "a@b.com", "pw")
	auth := map[string]string{"x-token": token}

	t.Run("upload requires a token", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/files", gin.H{"name": "a.txt", "type": "file", "data": "aGk="}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	content := []byte("round trip payload")
	w := env.do(t, http.MethodPost, "/files", gin.H{
		"name": "a.txt",
		"type": "file",
		"data": base64.StdEncoding.EncodeToString(content),
	}, auth)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeJSON(t, w)
	fileID := created["id"].(string)
	assert.Equal(t, "a.txt", created["name"])
	assert.Equal(t, "0", created["parentId"])
	assert.Equal(t, false, created["isPublic"])
	_, exposesHandle := created["localPath"]
	assert.False(t, exposesHandle, "projection must not leak the blob handle")

	t.Run("owner download round-trips the bytes", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/files/"+fileID+"/data", nil, auth)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, content, w.Body.Bytes())
		assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	})

	t.Run("anonymous download of a private file is 404", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/files/"+fileID+"/data", nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("publish opens it up, unpublish closes it again", func(t *testing.T) {
		w := env.do(t, http.MethodPut, "/files/"+fileID+"/publish", nil, auth)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, decodeJSON(t, w)["isPublic"])

		w = env.do(t, http.MethodGet, "/files/"+fileID+"/data", nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = env.do(t, http.MethodPut, "/files/"+fileID+"/unpublish", nil, auth)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, false, decodeJSON(t, w)["isPublic"])

		w = env.do(t, http.MethodGet, "/files/"+fileID+"/data", nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("another user cannot toggle visibility", func(t *testing.T) {
		env.register(t, "other@b.com", "pw")
		otherToken := env.connect(t, "other@b.com", "pw")

		w := env.do(t, http.MethodPut, "/files/"+fileID+"/publish", nil, map[string]string{"x-token": otherToken})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid size parameter", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/files/"+fileID+"/data?size=123", nil, auth)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid size", decodeJSON(t, w)["error"])
	})

	t.Run("folder has no data", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/files", gin.H{"name": "docs", "type": "folder"}, auth)
		require.Equal(t, http.StatusCreated, w.Code)
		folderID := decodeJSON(t, w)["id"].(string)

		w = env.do(t, http.MethodGet, "/files/"+folderID+"/data", nil, auth)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestFilesValidationAndParents(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "a@b.com", "pw")
	token := env.connect(t, "a@b.com", "pw")
	auth := map[string]string{"x-token": token}

	tests := []struct {
		name        string
		body        gin.H
		expectedErr string
	}{
		{"missing name", gin.H{"type": "file", "data": "aGk="}, "Missing name"},
		{"missing type", gin.H{"name": "a.txt", "data": "aGk="}, "Missing type"},
		{"invalid type", gin.H{"name": "a.txt", "type": "video", "data": "aGk="}, "Missing type"},
		{"missing data", gin.H{"name": "a.txt", "type": "file"}, "Missing data"},
		{"parent not found", gin.H{"name": "a.txt", "type": "file", "data": "aGk=", "parentId": "nope"}, "Parent not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/files", tt.body, auth)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.expectedErr, decodeJSON(t, w)["error"])
		})
	}

	t.Run("parent is not a folder", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/files", gin.H{"name": "a.txt", "type": "file", "data": "aGk="}, auth)
		require.Equal(t, http.StatusCreated, w.Code)
		plainID := decodeJSON(t, w)["id"].(string)

		w = env.do(t, http.MethodPost, "/files", gin.H{
			"name": "b.txt", "type": "file", "data": "aGk=", "parentId": plainID,
		}, auth)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Parent is not a folder", decodeJSON(t, w)["error"])
	})

	t.Run("upload into a folder", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/files", gin.H{"name": "docs", "type": "folder"}, auth)
		require.Equal(t, http.StatusCreated, w.Code)
		folderID := decodeJSON(t, w)["id"].(string)

		w = env.do(t, http.MethodPost, "/files", gin.H{
			"name": "inside.txt", "type": "file", "data": "aGk=", "parentId": folderID,
		}, auth)
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, folderID, decodeJSON(t, w)["parentId"])
	})
}

func TestFilesListingPagination(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "a@b.com", "pw")
	token := env.connect(t, "a@b.com", "pw")
	auth := map[string]string{"x-token": token}

	w := env.do(t, http.MethodPost, "/files", gin.H{"name": "bulk", "type": "folder"}, auth)
	require.Equal(t, http.StatusCreated, w.Code)
	folderID := decodeJSON(t, w)["id"].(string)

	for i := 0; i < 45; i++ {
		w := env.do(t, http.MethodPost, "/files", gin.H{
			"name": fmt.Sprintf("f%02d.txt", i), "type": "file", "data": "aGk=", "parentId": folderID,
		}, auth)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	pageLen := func(page int) int {
		w := env.do(t, http.MethodGet, fmt.Sprintf("/files?parentId=%s&page=%d", folderID, page), nil, auth)
		require.Equal(t, http.StatusOK, w.Code)
		var list []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		return len(list)
	}

	assert.Equal(t, 20, pageLen(0))
	assert.Equal(t, 20, pageLen(1))
	assert.Equal(t, 5, pageLen(2))
	assert.Equal(t, 0, pageLen(3))
}

func TestFileMetadataAccess(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "owner@b.com", "pw")
	ownerToken := env.connect(t, "owner@b.com", "pw")
	env.register(t, "other@b.com", "pw")
	otherToken := env.connect(t, "other@b.com", "pw")

	w := env.do(t, http.MethodPost, "/files", gin.H{"name": "secret.txt", "type": "file", "data": "aGk="},
		map[string]string{"x-token": ownerToken})
	require.Equal(t, http.StatusCreated, w.Code)
	fileID := decodeJSON(t, w)["id"].(string)

	t.Run("owner reads metadata", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/files/"+fileID, nil, map[string]string{"x-token": ownerToken})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("stranger gets 404 while private", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/files/"+fileID, nil, map[string]string{"x-token": otherToken})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("stranger sees it once published", func(t *testing.T) {
		w := env.do(t, http.MethodPut, "/files/"+fileID+"/publish", nil, map[string]string{"x-token": ownerToken})
		require.Equal(t, http.StatusOK, w.Code)

		w = env.do(t, http.MethodGet, "/files/"+fileID, nil, map[string]string{"x-token": otherToken})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("no token is unauthorized", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/files/"+fileID, nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestImageUploadEnqueuesThumbnailTask(t *testing.T) {
	env := newTestEnv(t)
	userID := env.register(t, "a@b.com", "pw")
	token := env.connect(t, "a@b.com", "pw")

	w := env.do(t, http.MethodPost, "/files", gin.H{
		"name": "pic.png", "type": "image", "data": base64.StdEncoding.EncodeToString([]byte("fake png")),
	}, map[string]string{"x-token": token})
	require.Equal(t, http.StatusCreated, w.Code)
	fileID := decodeJSON(t, w)["id"].(string)

	env.queue.AssertCalled(t, "EnqueueThumbnail", mock.Anything, fileID, userID)
}

func TestStatusAndStats(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/status", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	status := decodeJSON(t, w)
	assert.Equal(t, true, status["redis"])
	assert.Equal(t, true, status["db"])

	env.register(t, "a@b.com", "pw")
	w = env.do(t, http.MethodGet, "/stats", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decodeJSON(t, w)
	assert.Equal(t, float64(1), stats["users"])
	assert.Equal(t, float64(0), stats["files"])
}
