package handlers

import (
	"fmt"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/tasktracker/task-tracker-api/internal/database/dbtest"
	"github.com/tasktracker/task-tracker-api/internal/dto"
	"github.com/tasktracker/task-tracker-api/internal/models"
)

type NoteHandlerTestSuite struct {
	suite.Suite
	env  testEnv
	task *models.Task
}

func (suite *NoteHandlerTestSuite) SetupTest() {
	suite.env = newTestEnv(suite.T())
	user := dbtest.CreateUser(suite.T(), suite.env.db, "user_a")
	suite.task = dbtest.CreateTask(suite.T(), suite.env.db, "T", user.ID)
}

func (suite *NoteHandlerTestSuite) addNote(content string) dto.NoteDTO {
	w := suite.env.do(http.MethodPost, fmt.Sprintf("/tasks/%d/notes", suite.task.ID), map[string]string{"content": content})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var task dto.TaskDTO
	decode(suite.T(), w, &task)
	suite.Require().NotEmpty(task.Notes)
	return task.Notes[len(task.Notes)-1]
}

func (suite *NoteHandlerTestSuite) TestAddNote_ReturnsTask() {
	suite.addNote("first")

	w := suite.env.do(http.MethodPost, fmt.Sprintf("/tasks/%d/notes", suite.task.ID), map[string]string{"content": "second"})
	suite.Require().Equal(http.StatusOK, w.Code)

	var task dto.TaskDTO
	decode(suite.T(), w, &task)
	suite.Equal(suite.task.ID, task.ID)
	suite.Require().Len(task.Notes, 2)
	suite.Equal("first", task.Notes[0].Content)
	suite.Equal("second", task.Notes[1].Content)
}

func (suite *NoteHandlerTestSuite) TestAddNote_Errors() {
	suite.Equal(http.StatusNotFound, suite.env.do(http.MethodPost, "/tasks/999/notes", map[string]string{"content": "x"}).Code)
	suite.Equal(http.StatusBadRequest, suite.env.do(http.MethodPost, fmt.Sprintf("/tasks/%d/notes", suite.task.ID), map[string]string{}).Code)
	suite.Equal(http.StatusBadRequest, suite.env.do(http.MethodPost, "/tasks/x/notes", map[string]string{"content": "x"}).Code)
}

func (suite *NoteHandlerTestSuite) TestUpdateNote() {
	note := suite.addNote("draft")

	w := suite.env.do(http.MethodPut, fmt.Sprintf("/notes/%d", note.ID), map[string]string{"content": "final"})
	suite.Require().Equal(http.StatusOK, w.Code)

	var got dto.NoteDTO
	decode(suite.T(), w, &got)
	suite.Equal(note.ID, got.ID)
	suite.Equal("final", got.Content)
	suite.Equal(suite.task.ID, got.TaskID)
	suite.NotNil(got.Attachments)

	suite.Equal(http.StatusNotFound, suite.env.do(http.MethodPut, "/notes/999", map[string]string{"content": "x"}).Code)
}

func (suite *NoteHandlerTestSuite) TestDeleteNote_RemovesAttachments() {
	note := suite.addNote("with files")
	url := fmt.Sprintf("/notes/%d/attachments", note.ID)

	var paths []string
	for _, name := range []string{"a.pdf", "b.png"} {
		w := suite.env.upload(url, name, "application/pdf", []byte("data"))
		suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
		var att dto.AttachmentDTO
		decode(suite.T(), w, &att)

		var row models.Attachment
		suite.Require().NoError(suite.env.db.First(&row, att.ID).Error)
		paths = append(paths, row.FilePath)
	}

	w := suite.env.do(http.MethodDelete, fmt.Sprintf("/notes/%d", note.ID), nil)
	suite.Equal(http.StatusNoContent, w.Code)

	for _, path := range paths {
		_, err := os.Stat(path)
		suite.True(os.IsNotExist(err), path)
	}

	var count int64
	suite.Require().NoError(suite.env.db.Model(&models.Attachment{}).Count(&count).Error)
	suite.Zero(count)

	suite.Equal(http.StatusNotFound, suite.env.do(http.MethodDelete, fmt.Sprintf("/notes/%d", note.ID), nil).Code)
}

func TestNoteHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(NoteHandlerTestSuite))
}
