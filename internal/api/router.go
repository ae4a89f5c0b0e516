package api

import (
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/balkashynov/tally/internal/db"
)

const basePath = "/assessment_task"

var registerTagNames sync.Once

type handler struct {
	store *db.Store
	log   *slog.Logger
}

// NewRouter builds the HTTP API on top of store
func NewRouter(store *db.Store, log *slog.Logger) *gin.Engine {
	if log == nil {
		log = slog.Default()
	}
	useJSONFieldNames()

	h := &handler{store: store, log: log}

	r := gin.New()
	r.Use(requestLogger(log), gin.Recovery())
	r.HandleMethodNotAllowed = true
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorOut{Detail: "Not Found"})
	})

	r.GET("/healthz", h.health)

	g := r.Group(basePath, h.authRequired())
	{
		g.POST("/create-task", h.createTask)
		g.GET("/get-all-tasks", h.getAllTasks)

		g.POST("/create-wroklog", h.createWorkLog)
		g.GET("/list-all-worklogs", h.listAllWorkLogs)
		g.GET("/get-all-user-time-segments", h.getAllUserTimeSegments)
		g.DELETE("/remove-time-segment", h.removeTimeSegment)
		g.PATCH("/update-time-segment", h.updateTimeSegment)

		g.POST("/generate-remittances-for-all-users", h.superuserRequired(), h.generateRemittances)
		g.GET("/get-all-remittances", h.getAllRemittances)
		g.POST("/mark-remittance-paid", h.superuserRequired(), h.markRemittancePaid)
	}

	return r
}

// useJSONFieldNames makes validation errors name fields the way clients send them
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

func (h *handler) health(c *gin.Context) {
	sqlDB, err := h.store.DB().DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		h.log.ErrorContext(c.Request.Context(), "health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
