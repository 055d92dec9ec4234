package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/tasktracker/task-tracker-api/internal/database/dbtest"
	"github.com/tasktracker/task-tracker-api/internal/dto"
	apierrors "github.com/tasktracker/task-tracker-api/internal/errors"
	"github.com/tasktracker/task-tracker-api/internal/models"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	env   testEnv
	alice *models.User
	bob   *models.User
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	suite.env = newTestEnv(suite.T())
	suite.alice = dbtest.CreateUser(suite.T(), suite.env.db, "user_a")
	suite.bob = dbtest.CreateUser(suite.T(), suite.env.db, "user_b")
}

func (suite *TaskHandlerTestSuite) createTaskAt(title string, userID uint64, status models.TaskStatus, createdAt time.Time) *models.Task {
	task := &models.Task{
		Title:      title,
		Status:     status,
		AssignedTo: userID,
		CreatedAt:  createdAt,
	}
	if status == models.TaskStatusCompleted {
		task.CompletedAt = &createdAt
	}
	suite.Require().NoError(suite.env.db.Omit("AssignedUser", "Notes").Create(task).Error)
	return task
}

func (suite *TaskHandlerTestSuite) countTasks() int64 {
	var n int64
	suite.Require().NoError(suite.env.db.Model(&models.Task{}).Count(&n).Error)
	return n
}

// TestCreateTask_Success tests the create, complete and reopen lifecycle
func (suite *TaskHandlerTestSuite) TestCreateTask_Lifecycle() {
	w := suite.env.do(http.MethodPost, "/tasks", map[string]interface{}{
		"title":       "T",
		"description": "D",
		"assigned_to": suite.alice.ID,
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var created dto.TaskDTO
	decode(suite.T(), w, &created)
	suite.Equal("T", created.Title)
	suite.Equal("D", created.Description)
	suite.Equal(models.TaskStatusPending, created.Status)
	suite.Nil(created.CompletedAt)
	suite.Require().NotNil(created.AssignedUser)
	suite.Equal("user_a", created.AssignedUser.Username)
	suite.NotNil(created.Notes)

	w = suite.env.do(http.MethodPost, fmt.Sprintf("/tasks/%d/complete", created.ID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var completed dto.TaskDTO
	decode(suite.T(), w, &completed)
	suite.Equal(models.TaskStatusCompleted, completed.Status)
	suite.NotNil(completed.CompletedAt)

	w = suite.env.do(http.MethodPost, fmt.Sprintf("/tasks/%d/reopen", created.ID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var reopened dto.TaskDTO
	decode(suite.T(), w, &reopened)
	suite.Equal(models.TaskStatusPending, reopened.Status)
	suite.Nil(reopened.CompletedAt)
	suite.True(created.CreatedAt.Equal(reopened.CreatedAt))
}

// TestCreateTask_UnknownAssignee ensures no row is written for a missing user
func (suite *TaskHandlerTestSuite) TestCreateTask_UnknownAssignee() {
	for _, assignee := range []uint64{999, 0} {
		w := suite.env.do(http.MethodPost, "/tasks", map[string]interface{}{
			"title":       "T",
			"description": "D",
			"assigned_to": assignee,
		})

		suite.Equal(http.StatusNotFound, w.Code, "assigned_to=%d", assignee)
		var body apierrors.APIError
		decode(suite.T(), w, &body)
		suite.Equal(apierrors.ErrCodeNotFound, body.Code)
		suite.Equal("User not found", body.Message)
	}
	suite.Zero(suite.countTasks())
}

func (suite *TaskHandlerTestSuite) TestCreateTask_InvalidBody() {
	tests := []interface{}{
		map[string]interface{}{"description": "no title", "assigned_to": 1},
		map[string]interface{}{"title": "no assignee"},
		map[string]interface{}{"title": "null assignee", "assigned_to": nil},
		map[string]interface{}{"title": "T", "assigned_to": "one"},
	}
	for _, payload := range tests {
		w := suite.env.do(http.MethodPost, "/tasks", payload)
		suite.Equal(http.StatusBadRequest, w.Code, payload)
	}
	suite.Zero(suite.countTasks())
}

func (suite *TaskHandlerTestSuite) TestListTasks_FiltersAndOrdering() {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	older := suite.createTaskAt("older", suite.alice.ID, models.TaskStatusCompleted, base)
	suite.createTaskAt("pending", suite.alice.ID, models.TaskStatusPending, base.Add(time.Hour))
	suite.createTaskAt("bob", suite.bob.ID, models.TaskStatusCompleted, base.Add(2*time.Hour))
	newer := suite.createTaskAt("newer", suite.alice.ID, models.TaskStatusCompleted, base.Add(3*time.Hour))

	w := suite.env.do(http.MethodGet, fmt.Sprintf("/tasks?status=Completed&assigned_to=%d", suite.alice.ID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var tasks []dto.TaskDTO
	decode(suite.T(), w, &tasks)
	suite.Require().Len(tasks, 2)
	suite.Equal(newer.ID, tasks[0].ID)
	suite.Equal(older.ID, tasks[1].ID)
	for _, task := range tasks {
		suite.Equal(models.TaskStatusCompleted, task.Status)
		suite.Equal(suite.alice.ID, task.AssignedTo)
	}

	w = suite.env.do(http.MethodGet, "/tasks", nil)
	decode(suite.T(), w, &tasks)
	suite.Len(tasks, 4)
	suite.Equal(newer.ID, tasks[0].ID)
}

func (suite *TaskHandlerTestSuite) TestListTasks_Empty() {
	w := suite.env.do(http.MethodGet, "/tasks", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[]`, w.Body.String())
}

func (suite *TaskHandlerTestSuite) TestListTasks_BadFilters() {
	suite.Equal(http.StatusBadRequest, suite.env.do(http.MethodGet, "/tasks?assigned_to=abc", nil).Code)
	suite.Equal(http.StatusBadRequest, suite.env.do(http.MethodGet, "/tasks?status=Done", nil).Code)
}

func (suite *TaskHandlerTestSuite) TestGetTask() {
	task := dbtest.CreateTask(suite.T(), suite.env.db, "T", suite.alice.ID)
	dbtest.CreateNote(suite.T(), suite.env.db, task.ID, "first")

	w := suite.env.do(http.MethodGet, fmt.Sprintf("/tasks/%d", task.ID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var got dto.TaskDTO
	decode(suite.T(), w, &got)
	suite.Equal(task.ID, got.ID)
	suite.Require().Len(got.Notes, 1)
	suite.Equal("first", got.Notes[0].Content)
	suite.NotNil(got.Notes[0].Attachments)

	suite.Equal(http.StatusNotFound, suite.env.do(http.MethodGet, "/tasks/999", nil).Code)
	suite.Equal(http.StatusBadRequest, suite.env.do(http.MethodGet, "/tasks/abc", nil).Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_Partial() {
	task := dbtest.CreateTask(suite.T(), suite.env.db, "T", suite.alice.ID)

	w := suite.env.do(http.MethodPut, fmt.Sprintf("/tasks/%d", task.ID), map[string]interface{}{
		"assigned_to": suite.bob.ID,
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var got dto.TaskDTO
	decode(suite.T(), w, &got)
	suite.Equal("T", got.Title)
	suite.Equal("Test Description", got.Description)
	suite.Equal(suite.bob.ID, got.AssignedTo)
	suite.Equal("user_b", got.AssignedUser.Username)

	w = suite.env.do(http.MethodPut, fmt.Sprintf("/tasks/%d", task.ID), map[string]interface{}{
		"status": "Completed",
	})
	suite.Require().Equal(http.StatusOK, w.Code)
	decode(suite.T(), w, &got)
	suite.Equal(models.TaskStatusCompleted, got.Status)
	suite.NotNil(got.CompletedAt)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_Errors() {
	task := dbtest.CreateTask(suite.T(), suite.env.db, "T", suite.alice.ID)
	url := fmt.Sprintf("/tasks/%d", task.ID)

	suite.Equal(http.StatusNotFound, suite.env.do(http.MethodPut, url, map[string]interface{}{"assigned_to": 999}).Code)
	suite.Equal(http.StatusBadRequest, suite.env.do(http.MethodPut, url, map[string]interface{}{"status": "Archived"}).Code)
	suite.Equal(http.StatusBadRequest, suite.env.do(http.MethodPut, url, map[string]interface{}{"title": ""}).Code)
	suite.Equal(http.StatusNotFound, suite.env.do(http.MethodPut, "/tasks/999", map[string]interface{}{"title": "x"}).Code)

	var reloaded models.Task
	suite.Require().NoError(suite.env.db.First(&reloaded, task.ID).Error)
	suite.Equal(suite.alice.ID, reloaded.AssignedTo)
	suite.Equal(models.TaskStatusPending, reloaded.Status)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask() {
	task := dbtest.CreateTask(suite.T(), suite.env.db, "T", suite.alice.ID)
	url := fmt.Sprintf("/tasks/%d", task.ID)

	w := suite.env.do(http.MethodDelete, url, nil)
	suite.Equal(http.StatusNoContent, w.Code)
	suite.Empty(w.Body.String())

	suite.Equal(http.StatusNotFound, suite.env.do(http.MethodGet, url, nil).Code)
	suite.Equal(http.StatusNotFound, suite.env.do(http.MethodDelete, url, nil).Code)
}

func (suite *TaskHandlerTestSuite) TestCompleteAndReopen_NotFound() {
	suite.Equal(http.StatusNotFound, suite.env.do(http.MethodPost, "/tasks/999/complete", nil).Code)
	suite.Equal(http.StatusNotFound, suite.env.do(http.MethodPost, "/tasks/999/reopen", nil).Code)
}

// TestTaskHandlerTestSuite runs the test suite
func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}

func TestHealthAndRoot(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"task-tracker-api","version":"1.0.0"}`, w.Body.String())

	w = env.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Task Tracker API is running","version":"1.0.0"}`, w.Body.String())
}

func TestListUsers(t *testing.T) {
	env := newTestEnv(t)
	dbtest.CreateUser(t, env.db, "user_a")
	dbtest.CreateUser(t, env.db, "user_b")

	w := env.do(http.MethodGet, "/users", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var users []dto.UserDTO
	decode(t, w, &users)
	if assert.Len(t, users, 2) {
		assert.Equal(t, "user_a", users[0].Username)
		assert.Equal(t, "Display user_a", users[0].DisplayName)
		assert.Less(t, users[0].ID, users[1].ID)
	}
}
