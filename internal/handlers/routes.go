package handlers

import "github.com/gin-gonic/gin"

// Handlers groups the HTTP handlers served by the API
type Handlers struct {
	Users       *UserHandler
	Tasks       *TaskHandler
	Notes       *NoteHandler
	Attachments *AttachmentHandler
}

// RegisterRoutes mounts every API route on r
func RegisterRoutes(r gin.IRouter, h Handlers) {
	r.GET("/", Root)
	r.GET("/health", Health)

	r.GET("/users", h.Users.ListUsers)

	tasks := r.Group("/tasks")
	{
		tasks.GET("", h.Tasks.ListTasks)
		tasks.POST("", h.Tasks.CreateTask)
		tasks.GET("/:id", h.Tasks.GetTask)
		tasks.PUT("/:id", h.Tasks.UpdateTask)
		tasks.DELETE("/:id", h.Tasks.DeleteTask)
		tasks.POST("/:id/complete", h.Tasks.CompleteTask)
		tasks.POST("/:id/reopen", h.Tasks.ReopenTask)
		tasks.POST("/:id/notes", h.Notes.AddNote)
	}

	notes := r.Group("/notes")
	{
		notes.PUT("/:id", h.Notes.UpdateNote)
		notes.DELETE("/:id", h.Notes.DeleteNote)
		notes.POST("/:id/attachments", h.Attachments.UploadAttachment)
	}

	attachments := r.Group("/attachments")
	{
		attachments.GET("/:id/download", h.Attachments.DownloadAttachment)
		attachments.DELETE("/:id", h.Attachments.DeleteAttachment)
	}
}
