package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"tareasapi/auth"
	"tareasapi/auth/authctx"
	apperrors "tareasapi/errors"
	"tareasapi/server"
	"tareasapi/task"
	"tareasapi/user"
	"tareasapi/validation"
)

// createTaskRequest is the body of POST /tareas.
type createTaskRequest struct {
	Title string `json:"title" validate:"required"`
}

// updateTaskRequest is the body of PUT /tareas/:id. Both fields are
// optional, but at least one must be present.
type updateTaskRequest struct {
	Title *string `json:"title"`
	Done  *bool   `json:"done"`
}

// listTasks handles GET /tareas/json.
func (a *API) listTasks(c *gin.Context) {
	u, ok := a.currentUser(c)
	if !ok {
		return
	}

	tasks, err := a.tasks.ListByUser(c.Request.Context(), u.ID)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, tasks)
}

// createTask handles POST /tareas.
func (a *API) createTask(c *gin.Context) {
	u, ok := a.currentUser(c)
	if !ok {
		return
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation("Request body must be JSON with a title."))
		return
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	t := &task.Task{UserID: u.ID, Title: req.Title}
	if err := a.tasks.Create(c.Request.Context(), t); err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, t)
}

// updateTask handles PUT /tareas/:id.
func (a *API) updateTask(c *gin.Context) {
	u, ok := a.currentUser(c)
	if !ok {
		return
	}
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation("Request body must be JSON with title and/or done."))
		return
	}

	updated, err := a.tasks.Update(c.Request.Context(), u.ID, taskID, task.Update{
		Title: req.Title,
		Done:  req.Done,
	})
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, updated)
}

// deleteTask handles DELETE /tareas/:id.
func (a *API) deleteTask(c *gin.Context) {
	u, ok := a.currentUser(c)
	if !ok {
		return
	}
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	if err := a.tasks.Delete(c.Request.Context(), u.ID, taskID); err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondNoContent(c)
}

// currentUser resolves the gate's identity to the stored account. A
// verified token for an account that no longer exists is reported as an
// invalid credential, not a lookup failure. On false the response has
// already been written.
func (a *API) currentUser(c *gin.Context) (*user.User, bool) {
	identity, err := authctx.GetOrError[auth.Identity](c.Request.Context())
	if err != nil {
		server.RespondWithError(c, apperrors.Unauthorized(""))
		return nil, false
	}

	u, err := a.users.ByUsername(c.Request.Context(), identity.Username)
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok && appErr.Code == apperrors.ErrCodeNotFound {
			server.RespondWithError(c, apperrors.InvalidToken())
			return nil, false
		}
		server.RespondWithError(c, err)
		return nil, false
	}
	return u, true
}

// taskIDParam parses the :id route parameter. Anything that is not a
// positive integer behaves like a task that does not exist. On false the
// response has already been written.
func taskIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		server.RespondWithError(c, apperrors.NotFound("task"))
		return 0, false
	}
	return uint(id), true
}
