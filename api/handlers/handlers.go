package handlers

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"

	"judol-guard/dto"
	"judol-guard/services"
)

// ListBlocklistHandler serves one keyset window of the given blocklist kind.
// Query params: id (boundary row id, default 0) and direction (after|before).
func ListBlocklistHandler(svc *services.BlocklistService, kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		boundaryID, err := strconv.ParseInt(c.DefaultQuery("id", "0"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
			return
		}
		direction := c.DefaultQuery("direction", services.DirectionAfter)

		page, err := svc.Page(c.Request.Context(), kind, boundaryID, direction)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, dto.NewBlocklistPageDTO(page))
	}
}

// JobTriggers exposes the two pipeline entry points as idempotent HTTP
// triggers. Each entry point is serialized by its own mutex; an overlapping
// invocation is refused instead of queued.
type JobTriggers struct {
	svc *services.ModerationService

	collectMu sync.Mutex
	checkMu   sync.Mutex
}

func NewJobTriggers(svc *services.ModerationService) *JobTriggers {
	return &JobTriggers{svc: svc}
}

func (j *JobTriggers) CollectHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !j.collectMu.TryLock() {
			c.JSON(http.StatusConflict, gin.H{"error": "collect is already running"})
			return
		}
		defer j.collectMu.Unlock()

		if err := j.svc.Collect(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	}
}

func (j *JobTriggers) CheckHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !j.checkMu.TryLock() {
			c.JSON(http.StatusConflict, gin.H{"error": "check is already running"})
			return
		}
		defer j.checkMu.Unlock()

		if err := j.svc.Check(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	}
}
