package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tasktracker/task-tracker-api/internal/database/dbtest"
	"github.com/tasktracker/task-tracker-api/internal/repository"
	"github.com/tasktracker/task-tracker-api/internal/services"
	"github.com/tasktracker/task-tracker-api/internal/storage"
)

const testUploadLimit = 1024

type testEnv struct {
	db        *gorm.DB
	router    *gin.Engine
	uploadDir string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := dbtest.New(t)
	uploadDir := filepath.Join(t.TempDir(), "uploads")
	store, err := storage.NewLocalStore(uploadDir)
	require.NoError(t, err)

	log := zap.NewNop()
	taskRepo := repository.NewTaskRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)
	userRepo := repository.NewUserRepository(db)

	router := gin.New()
	RegisterRoutes(router, Handlers{
		Users:       NewUserHandler(services.NewUserService(userRepo)),
		Tasks:       NewTaskHandler(services.NewTaskService(taskRepo, userRepo, store, log)),
		Notes:       NewNoteHandler(services.NewNoteService(noteRepo, taskRepo, store, log)),
		Attachments: NewAttachmentHandler(services.NewAttachmentService(attachmentRepo, noteRepo, store, log, testUploadLimit)),
	})

	return testEnv{db: db, router: router, uploadDir: uploadDir}
}

// do performs a request with an optional JSON body
func (e testEnv) do(method, url string, payload interface{}) *httptest.ResponseRecorder {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			panic(err)
		}
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, url, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// upload posts a multipart "file" part with an explicit content type
func (e testEnv) upload(url, filename, contentType string, data []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		panic(err)
	}
	if _, err := part.Write(data); err != nil {
		panic(err)
	}
	if err := mw.Close(); err != nil {
		panic(err)
	}

	req := httptest.NewRequest(http.MethodPost, url, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
