package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasktracker/task-tracker-api/internal/models"
)

func TestToTaskDTO_EmptyCollectionsAreArrays(t *testing.T) {
	task := models.Task{
		ID:         3,
		Title:      "t",
		Status:     models.TaskStatusPending,
		AssignedTo: 1,
		Notes:      []models.Note{{ID: 9, TaskID: 3, Content: "n"}},
	}

	raw, err := json.Marshal(ToTaskDTO(task))
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))

	assert.Nil(t, body["completed_at"])
	assert.Nil(t, body["assigned_user"])
	notes := body["notes"].([]interface{})
	require.Len(t, notes, 1)
	assert.Equal(t, []interface{}{}, notes[0].(map[string]interface{})["attachments"])
}

func TestToAttachmentDTO_HidesPath(t *testing.T) {
	att := models.Attachment{
		ID:        5,
		NoteID:    2,
		Filename:  "scan.pdf",
		FilePath:  "/srv/uploads/2_1_abc_scan.pdf",
		FileType:  models.FileTypePDF,
		FileSize:  1024,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	raw, err := json.Marshal(ToAttachmentDTO(att))
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "/srv/uploads")
	assert.Contains(t, string(raw), `"download_url":"/attachments/5/download"`)
}
