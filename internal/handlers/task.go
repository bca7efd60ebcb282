package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aokitrading/fulfillment-api/internal/dto"
	apierrors "github.com/aokitrading/fulfillment-api/internal/errors"
	"github.com/aokitrading/fulfillment-api/internal/middleware"
	"github.com/aokitrading/fulfillment-api/internal/models"
	"github.com/aokitrading/fulfillment-api/internal/services"
	"github.com/aokitrading/fulfillment-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// dateLayout is the wire format for expected dates; the engine never cares
// about time of day.
const dateLayout = "2006-01-02"

// TaskHandler coordinates fulfillment task HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns one page of the merged task stream for a task type.
// Supports status filtering (including the synthetic "overdue" value) and
// an expected-date window.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	if _, exists := middleware.GetUserID(c); !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskType := models.TaskType(c.Query("type"))
	if !taskType.Valid() {
		apierrors.BadRequest(c, "Query parameter 'type' must be 'inbound' or 'outbound'")
		return
	}

	dateFrom, err := parseDateQuery(c, "date_from")
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}
	dateTo, err := parseDateQuery(c, "date_to")
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	params := utils.GetPaginationParams(c)

	tasks, total, err := h.taskService.ListTasks(services.ListTasksInput{
		Type:     taskType,
		Status:   c.Query("status"),
		DateFrom: dateFrom,
		DateTo:   dateTo,
		Page:     params.Page,
		PageSize: params.Limit,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, time.Now(), params.Page, params.Limit, total))
}

// GetTask returns a single task with full items and untruncated content.
func (h *TaskHandler) GetTask(c *gin.Context) {
	ref, exists := middleware.GetTaskRef(c)
	if !exists {
		apierrors.InternalError(c, "Task reference not found in context")
		return
	}

	task, err := h.taskService.GetTask(ref)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task, time.Now()))
}

// AssignTask delegates a task to an assignee.
func (h *TaskHandler) AssignTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	ref, exists := middleware.GetTaskRef(c)
	if !exists {
		apierrors.InternalError(c, "Task reference not found in context")
		return
	}

	type AssignRequest struct {
		AssigneeID uint64 `json:"assignee_id" binding:"required"`
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.taskService.Assign(ref, req.AssigneeID, userID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task assigned successfully",
	})
}

// SetTaskStatus applies a status transition.
func (h *TaskHandler) SetTaskStatus(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	ref, exists := middleware.GetTaskRef(c)
	if !exists {
		apierrors.InternalError(c, "Task reference not found in context")
		return
	}

	type StatusRequest struct {
		Status string `json:"status" binding:"required"`
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.taskService.SetStatus(ref, models.TaskStatus(req.Status), userID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Status updated successfully",
	})
}

// RescheduleTask moves or clears the expected date. A null or absent date
// clears it.
func (h *TaskHandler) RescheduleTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	ref, exists := middleware.GetTaskRef(c)
	if !exists {
		apierrors.InternalError(c, "Task reference not found in context")
		return
	}

	type RescheduleRequest struct {
		ExpectedDate *string `json:"expected_date"`
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	expectedDate, err := parseDateField(req.ExpectedDate)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	if err := h.taskService.Reschedule(ref, expectedDate, userID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task rescheduled successfully",
	})
}

// BulkUpdate applies one mutation across a set of task identifiers and
// reports per-item success/failure counts.
func (h *TaskHandler) BulkUpdate(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type BulkRequest struct {
		IDs       []string `json:"ids" binding:"required"`
		Operation struct {
			Kind         string  `json:"kind" binding:"required"`
			AssigneeID   uint64  `json:"assignee_id"`
			Status       string  `json:"status"`
			ExpectedDate *string `json:"expected_date"`
		} `json:"operation" binding:"required"`
	}

	var req BulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	expectedDate, err := parseDateField(req.Operation.ExpectedDate)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	result, err := h.taskService.Bulk(req.IDs, services.BulkOperation{
		Kind:         services.BulkOperationKind(req.Operation.Kind),
		AssigneeID:   req.Operation.AssigneeID,
		Status:       models.TaskStatus(req.Operation.Status),
		ExpectedDate: expectedDate,
	}, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBulkResultDTO(result))
}

// GetStats returns per-status counts for a task type over an optional
// expected-date window.
func (h *TaskHandler) GetStats(c *gin.Context) {
	if _, exists := middleware.GetUserID(c); !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskType := models.TaskType(c.Query("type"))
	if !taskType.Valid() {
		apierrors.BadRequest(c, "Query parameter 'type' must be 'inbound' or 'outbound'")
		return
	}

	dateFrom, err := parseDateQuery(c, "date_from")
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}
	dateTo, err := parseDateQuery(c, "date_to")
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	stats, err := h.taskService.Stats(taskType, dateFrom, dateTo)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func parseDateQuery(c *gin.Context, name string) (*time.Time, error) {
	value := c.Query(name)
	if value == "" {
		return nil, nil
	}

	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("query parameter '%s' must be formatted as %s", name, dateLayout)
	}

	return &parsed, nil
}

func parseDateField(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}

	parsed, err := time.Parse(dateLayout, *value)
	if err != nil {
		return nil, fmt.Errorf("expected_date must be formatted as %s", dateLayout)
	}

	return &parsed, nil
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidTransition):
		apierrors.InvalidTransition(c, err.Error())
	case errors.Is(err, services.ErrInvalidState):
		apierrors.InvalidState(c, err.Error())
	case errors.Is(err, services.ErrInvalidTaskType),
		errors.Is(err, services.ErrInvalidTaskStatus),
		errors.Is(err, services.ErrInvalidBulkKind),
		errors.Is(err, services.ErrAssigneeRequired),
		errors.Is(err, services.ErrActingUserRequired),
		errors.Is(err, services.ErrNoTaskIDsProvided),
		errors.Is(err, models.ErrInvalidTaskRef):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Record store failure")
	}
}
