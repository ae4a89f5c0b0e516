package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/balkashynov/tally/internal/db"
)

func (h *handler) createWorkLog(c *gin.Context) {
	var in workLogCreateIn
	if err := c.ShouldBindJSON(&in); err != nil {
		h.abortWithError(c, bindingError(err))
		return
	}

	req := db.CreateWorkLogRequest{
		TaskID:   in.TaskID,
		Segments: make([]db.SegmentInput, 0, len(in.TimeSegments)),
	}
	for _, ts := range in.TimeSegments {
		req.Segments = append(req.Segments, db.SegmentInput{
			StartTime:   ts.StartTime,
			EndTime:     ts.EndTime,
			Description: ts.Description,
			Notes:       ts.Notes,
		})
	}

	wl, err := h.store.CreateWorkLog(c.Request.Context(), callerFrom(c), req)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newWorkLogOut(*wl))
}

func (h *handler) listAllWorkLogs(c *gin.Context) {
	summaries, err := h.store.ListWorkLogs(c.Request.Context(), db.WorkLogFilter{
		RemittanceStatus: c.Query("remittance_status"),
	})
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	out := make([]workLogOut, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, newWorkLogOut(s.WorkLog))
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) getAllUserTimeSegments(c *gin.Context) {
	segments, err := h.store.GetUserTimeSegments(c.Request.Context(), callerFrom(c))
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTimeSegmentsOut(segments))
}

func (h *handler) removeTimeSegment(c *gin.Context) {
	id, err := queryUUID(c, "time_segment_id")
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	if err := h.store.DeleteTimeSegment(c.Request.Context(), callerFrom(c), id); err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, deleteTimeSegmentOut{Success: "Time segment deleted successfully"})
}

func (h *handler) updateTimeSegment(c *gin.Context) {
	id, err := queryUUID(c, "time_segment_id")
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	var in timeSegmentUpdateIn
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		h.abortWithError(c, invalid("invalid request body: %v", err))
		return
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		h.abortWithError(c, invalid("invalid request body: unexpected data after the JSON object"))
		return
	}
	if in.StartTime.Set && in.StartTime.Value.IsZero() {
		h.abortWithError(c, invalid("start_time must not be null"))
		return
	}
	if in.EndTime.Set && in.EndTime.Value.IsZero() {
		h.abortWithError(c, invalid("end_time must not be null"))
		return
	}

	_, err = h.store.UpdateTimeSegment(c.Request.Context(), callerFrom(c), id, db.UpdateTimeSegmentRequest{
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Description: in.Description,
		Notes:       in.Notes,
	})
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, updateTimeSegmentOut{Description: "Your data has been updated."})
}

func queryUUID(c *gin.Context, name string) (uuid.UUID, error) {
	raw := c.Query(name)
	if raw == "" {
		return uuid.Nil, invalid("%s is required", name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, invalid("%s must be a valid UUID", name)
	}
	return id, nil
}
