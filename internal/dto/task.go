package dto

import (
	"time"

	"github.com/aokitrading/fulfillment-api/internal/constants"
	"github.com/aokitrading/fulfillment-api/internal/models"
	"github.com/aokitrading/fulfillment-api/internal/services"
)

// TaskItemDTO represents one line of goods in API responses.
type TaskItemDTO struct {
	Name     string `json:"name"`
	Spec     string `json:"spec,omitempty"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit,omitempty"`
}

// TaskDTO represents a task in API responses.
type TaskDTO struct {
	ID           string            `json:"id"`
	Type         models.TaskType   `json:"type"`
	Source       models.TaskSource `json:"source"`
	Status       models.TaskStatus `json:"status"`
	Overdue      bool              `json:"overdue"`
	ExpectedDate *string           `json:"expected_date"`
	AssigneeID   *uint64           `json:"assignee_id"`
	AssignerID   *uint64           `json:"assigner_id"`
	CompletedAt  *time.Time        `json:"completed_at"`
	CompleterID  *uint64           `json:"completer_id"`
	DocumentNo   string            `json:"document_no,omitempty"`
	Company      string            `json:"company"`
	Content      string            `json:"content,omitempty"`
	Items        []TaskItemDTO     `json:"items,omitempty"`
}

// TaskListItemDTO represents a task in list responses: no line items, and
// consultation text cut down to a summary.
type TaskListItemDTO struct {
	ID           string            `json:"id"`
	Type         models.TaskType   `json:"type"`
	Source       models.TaskSource `json:"source"`
	Status       models.TaskStatus `json:"status"`
	Overdue      bool              `json:"overdue"`
	ExpectedDate *string           `json:"expected_date"`
	AssigneeID   *uint64           `json:"assignee_id"`
	DocumentNo   string            `json:"document_no,omitempty"`
	Company      string            `json:"company"`
	Summary      string            `json:"summary,omitempty"`
	ItemCount    int               `json:"item_count"`
}

// TaskListResponse represents a paginated list of tasks.
type TaskListResponse struct {
	Tasks      []TaskListItemDTO `json:"tasks"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalCount int64             `json:"total_count"`
	TotalPages int               `json:"total_pages"`
}

// BulkResultDTO reports partial-success accounting of a bulk operation.
type BulkResultDTO struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Total     int `json:"total"`
}

// Conversion functions

// ToTaskDTO converts an InventoryTask to TaskDTO. The overdue flag is
// recomputed against now on every conversion.
func ToTaskDTO(task models.InventoryTask, now time.Time) TaskDTO {
	dto := TaskDTO{
		ID:           task.Ref.String(),
		Type:         task.Type,
		Source:       task.Ref.Source,
		Status:       task.Status,
		Overdue:      task.Overdue(now),
		ExpectedDate: formatDate(task.ExpectedDate),
		AssigneeID:   task.AssigneeID,
		AssignerID:   task.AssignerID,
		CompletedAt:  task.CompletedAt,
		CompleterID:  task.CompleterID,
		DocumentNo:   task.DocumentNo,
		Company:      task.CompanyName,
		Content:      task.Content,
	}

	if len(task.Items) > 0 {
		dto.Items = make([]TaskItemDTO, len(task.Items))
		for i, item := range task.Items {
			dto.Items[i] = TaskItemDTO{
				Name:     item.Name,
				Spec:     item.Spec,
				Quantity: item.Quantity.String(),
				Unit:     item.Unit,
			}
		}
	}

	return dto
}

// ToTaskListItemDTO converts an InventoryTask to its list row form.
func ToTaskListItemDTO(task models.InventoryTask, now time.Time) TaskListItemDTO {
	return TaskListItemDTO{
		ID:           task.Ref.String(),
		Type:         task.Type,
		Source:       task.Ref.Source,
		Status:       task.Status,
		Overdue:      task.Overdue(now),
		ExpectedDate: formatDate(task.ExpectedDate),
		AssigneeID:   task.AssigneeID,
		DocumentNo:   task.DocumentNo,
		Company:      task.CompanyName,
		Summary:      truncateRunes(task.Content, constants.SummaryContentRunes),
		ItemCount:    len(task.Items),
	}
}

// ToTaskListResponse converts a page of tasks to TaskListResponse.
func ToTaskListResponse(tasks []models.InventoryTask, now time.Time, page, pageSize int, totalCount int64) TaskListResponse {
	items := make([]TaskListItemDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskListItemDTO(task, now)
	}

	totalPages := int(totalCount) / pageSize
	if int(totalCount)%pageSize > 0 {
		totalPages++
	}

	return TaskListResponse{
		Tasks:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}

// ToBulkResultDTO converts a BulkResult for the response body.
func ToBulkResultDTO(result services.BulkResult) BulkResultDTO {
	return BulkResultDTO{
		Succeeded: result.Succeeded,
		Failed:    result.Failed,
		Total:     result.Total(),
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
