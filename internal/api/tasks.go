package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/balkashynov/tally/internal/db"
)

func (h *handler) createTask(c *gin.Context) {
	var in taskCreateIn
	if err := c.ShouldBindJSON(&in); err != nil {
		h.abortWithError(c, bindingError(err))
		return
	}

	task, err := h.store.CreateTask(c.Request.Context(), db.CreateTaskRequest{
		Title:       in.Title,
		Description: in.Description,
	})
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newTaskOut(*task))
}

func (h *handler) getAllTasks(c *gin.Context) {
	tasks, err := h.store.GetTasks(c.Request.Context())
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	out := make([]taskOut, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, newTaskOut(t))
	}
	c.JSON(http.StatusOK, out)
}
