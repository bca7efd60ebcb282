package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aokitrading/fulfillment-api/internal/models"
	"github.com/aokitrading/fulfillment-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrInvalidTransition  = errors.New("status transition not permitted")
	ErrInvalidState       = errors.New("operation not permitted in the task's current status")
	ErrActingUserRequired = errors.New("acting user is required")
	ErrAssigneeRequired   = errors.New("assignee is required")
	ErrNoTaskIDsProvided  = errors.New("at least one task identifier is required")
	ErrInvalidTaskType    = errors.New("invalid task type")
	ErrInvalidTaskStatus  = errors.New("invalid task status")
	ErrInvalidBulkKind    = errors.New("invalid bulk operation kind")
)

// StatusFilterOverdue is the synthetic status value callers may pass when
// listing: non-terminal tasks whose expected date has passed.
const StatusFilterOverdue = "overdue"

// TaskService drives the fulfillment task lifecycle over the record store.
// It holds no state of its own; every mutation is a single-row write and
// callers re-list afterwards.
type TaskService struct {
	store repository.TaskStore
	now   func() time.Time
}

// NewTaskService creates a new TaskService.
func NewTaskService(store repository.TaskStore) *TaskService {
	return &TaskService{
		store: store,
		now:   time.Now,
	}
}

// ListTasksInput represents filters for listing tasks.
type ListTasksInput struct {
	Type     models.TaskType
	Status   string // a TaskStatus value or StatusFilterOverdue
	DateFrom *time.Time
	DateTo   *time.Time
	Page     int
	PageSize int
}

// ListTasks returns one page of the merged document/overseas task stream,
// sorted by expected date with undated tasks last, plus the unpaged total.
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.InventoryTask, int64, error) {
	filter, err := s.buildFilter(input.Type, input.Status, input.DateFrom, input.DateTo)
	if err != nil {
		return nil, 0, err
	}

	tasks, err := s.listResolved(filter)
	if err != nil {
		return nil, 0, err
	}

	sortTasks(tasks)

	total := int64(len(tasks))
	page, pageSize := input.Page, input.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		return tasks, total, nil
	}

	start := (page - 1) * pageSize
	if start >= len(tasks) {
		return []models.InventoryTask{}, total, nil
	}
	end := start + pageSize
	if end > len(tasks) {
		end = len(tasks)
	}

	return tasks[start:end], total, nil
}

// GetTask resolves a single task by its composite reference.
func (s *TaskService) GetTask(ref models.TaskRef) (*models.InventoryTask, error) {
	task, err := s.fetchTask(ref)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Assign delegates the task to an assignee, stamping the acting user as
// assigner. Assignment is orthogonal to status, except that the first
// assignment promotes a pending task to assigned. Terminal tasks reject
// assignment.
func (s *TaskService) Assign(ref models.TaskRef, assigneeID, actorID uint64) error {
	if actorID == 0 {
		return ErrActingUserRequired
	}
	if assigneeID == 0 {
		return ErrAssigneeRequired
	}

	task, err := s.fetchTask(ref)
	if err != nil {
		return err
	}

	if task.Status.Terminal() {
		return ErrInvalidState
	}

	fields := map[string]interface{}{
		"assignee_id": assigneeID,
		"assigner_id": actorID,
	}
	if task.Status == models.TaskStatusPending {
		fields["fulfill_status"] = models.TaskStatusAssigned
	}

	return s.updateFulfillment(ref, fields)
}

// Reschedule moves or clears the expected date. A nil date leaves the task
// undetermined rather than overdue. Terminal tasks reject rescheduling.
func (s *TaskService) Reschedule(ref models.TaskRef, expectedDate *time.Time, actorID uint64) error {
	if actorID == 0 {
		return ErrActingUserRequired
	}

	task, err := s.fetchTask(ref)
	if err != nil {
		return err
	}

	if task.Status.Terminal() {
		return ErrInvalidState
	}

	var value interface{}
	if expectedDate != nil {
		value = *expectedDate
	}

	return s.updateFulfillment(ref, map[string]interface{}{"expected_date": value})
}

// SetStatus applies a guarded status transition. The engine derives the
// side effects from the target status: completion stamps completed_at and
// completer_id together, cancellation touches nothing but the status.
// Setting a non-terminal task to its current status is a no-op success,
// which is what makes repeated bulk status changes converge.
func (s *TaskService) SetStatus(ref models.TaskRef, target models.TaskStatus, actorID uint64) error {
	if actorID == 0 {
		return ErrActingUserRequired
	}
	if !target.Valid() {
		return ErrInvalidTaskStatus
	}

	task, err := s.fetchTask(ref)
	if err != nil {
		return err
	}

	if task.Status.Terminal() {
		return ErrInvalidTransition
	}
	if target == task.Status {
		return nil
	}
	if !task.Status.CanTransition(target) {
		return ErrInvalidTransition
	}

	fields := map[string]interface{}{"fulfill_status": target}
	if target == models.TaskStatusCompleted {
		fields["completed_at"] = s.now()
		fields["completer_id"] = actorID
	}

	return s.updateFulfillment(ref, fields)
}

// BulkOperationKind selects which single mutation a bulk call applies.
type BulkOperationKind string

const (
	BulkAssign    BulkOperationKind = "assign"
	BulkSetStatus BulkOperationKind = "set_status"
	BulkSetDate   BulkOperationKind = "set_expected_date"
)

// BulkOperation is one mutation to apply across a set of task identifiers.
// Exactly the field matching Kind is consulted.
type BulkOperation struct {
	Kind         BulkOperationKind
	AssigneeID   uint64
	Status       models.TaskStatus
	ExpectedDate *time.Time
}

// BulkResult is the per-item outcome accounting of a bulk call.
type BulkResult struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Total returns the number of identifiers attempted.
func (r BulkResult) Total() int {
	return r.Succeeded + r.Failed
}

// AnySucceeded reports whether at least one item went through.
func (r BulkResult) AnySucceeded() bool {
	return r.Succeeded > 0
}

// Bulk applies one mutation independently across each identifier in ids,
// best-effort: individual failures (bad identifiers, terminal tasks, store
// errors) are counted and skipped, never propagated, and every identifier
// is attempted. Only an empty set or a malformed operation is a caller
// error.
func (s *TaskService) Bulk(ids []string, op BulkOperation, actorID uint64) (BulkResult, error) {
	if actorID == 0 {
		return BulkResult{}, ErrActingUserRequired
	}
	if len(ids) == 0 {
		return BulkResult{}, ErrNoTaskIDsProvided
	}

	switch op.Kind {
	case BulkAssign:
		if op.AssigneeID == 0 {
			return BulkResult{}, ErrAssigneeRequired
		}
	case BulkSetStatus:
		if !op.Status.Valid() {
			return BulkResult{}, ErrInvalidTaskStatus
		}
	case BulkSetDate:
		// nil clears the expected date
	default:
		return BulkResult{}, ErrInvalidBulkKind
	}

	result := BulkResult{}
	for _, id := range ids {
		if err := s.applyBulkItem(id, op, actorID); err != nil {
			result.Failed++
			continue
		}
		result.Succeeded++
	}

	return result, nil
}

func (s *TaskService) applyBulkItem(id string, op BulkOperation, actorID uint64) error {
	ref, err := models.ParseTaskRef(id)
	if err != nil {
		return err
	}

	switch op.Kind {
	case BulkAssign:
		return s.Assign(ref, op.AssigneeID, actorID)
	case BulkSetStatus:
		return s.SetStatus(ref, op.Status, actorID)
	default:
		return s.Reschedule(ref, op.ExpectedDate, actorID)
	}
}

// TaskStats holds per-status counts over a task window. Overdue overlaps
// pending/assigned rather than excluding them; total counts every task in
// the window regardless of status.
type TaskStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Assigned  int64 `json:"assigned"`
	Completed int64 `json:"completed"`
	Canceled  int64 `json:"canceled"`
	Overdue   int64 `json:"overdue"`
}

// Stats aggregates per-status counts for one task type over an optional
// expected-date window.
func (s *TaskService) Stats(taskType models.TaskType, dateFrom, dateTo *time.Time) (TaskStats, error) {
	filter, err := s.buildFilter(taskType, "", dateFrom, dateTo)
	if err != nil {
		return TaskStats{}, err
	}

	tasks, err := s.listResolved(filter)
	if err != nil {
		return TaskStats{}, err
	}

	now := s.now()
	stats := TaskStats{Total: int64(len(tasks))}
	for i := range tasks {
		switch tasks[i].Status {
		case models.TaskStatusPending:
			stats.Pending++
		case models.TaskStatusAssigned:
			stats.Assigned++
		case models.TaskStatusCompleted:
			stats.Completed++
		case models.TaskStatusCanceled:
			stats.Canceled++
		}
		if tasks[i].Overdue(now) {
			stats.Overdue++
		}
	}

	return stats, nil
}

// buildFilter validates the caller-facing filter values and translates the
// synthetic overdue status into its store-side predicate.
func (s *TaskService) buildFilter(taskType models.TaskType, status string, dateFrom, dateTo *time.Time) (repository.TaskFilter, error) {
	if !taskType.Valid() {
		return repository.TaskFilter{}, ErrInvalidTaskType
	}

	filter := repository.TaskFilter{
		Type:     taskType,
		DateFrom: dateFrom,
		DateTo:   dateTo,
	}

	switch status {
	case "":
	case StatusFilterOverdue:
		filter.Overdue = true
		filter.Today = startOfDay(s.now())
	default:
		st := models.TaskStatus(status)
		if !st.Valid() {
			return repository.TaskFilter{}, ErrInvalidTaskStatus
		}
		filter.Status = &st
	}

	return filter, nil
}

// listResolved fetches both source tables and normalizes every row into
// the unified task shape.
func (s *TaskService) listResolved(filter repository.TaskFilter) ([]models.InventoryTask, error) {
	docs, err := s.store.ListDocuments(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	consultations, err := s.store.ListConsultations(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list consultations: %w", err)
	}

	tasks := make([]models.InventoryTask, 0, len(docs)+len(consultations))
	for i := range docs {
		tasks = append(tasks, ResolveDocumentTask(&docs[i]))
	}
	for i := range consultations {
		tasks = append(tasks, ResolveOverseasTask(&consultations[i]))
	}

	return tasks, nil
}

func (s *TaskService) fetchTask(ref models.TaskRef) (models.InventoryTask, error) {
	switch ref.Source {
	case models.TaskSourceOverseas:
		consultation, err := s.store.FindConsultation(ref.NativeID)
		if err != nil {
			return models.InventoryTask{}, translateStoreError(err)
		}
		return ResolveOverseasTask(consultation), nil
	default:
		doc, err := s.store.FindDocument(ref.NativeID)
		if err != nil {
			return models.InventoryTask{}, translateStoreError(err)
		}
		return ResolveDocumentTask(doc), nil
	}
}

func (s *TaskService) updateFulfillment(ref models.TaskRef, fields map[string]interface{}) error {
	var err error
	if ref.Source == models.TaskSourceOverseas {
		err = s.store.UpdateConsultationFulfillment(ref.NativeID, fields)
	} else {
		err = s.store.UpdateDocumentFulfillment(ref.NativeID, fields)
	}
	if err != nil {
		return translateStoreError(err)
	}
	return nil
}

func translateStoreError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrTaskNotFound
	}
	return fmt.Errorf("record store failure: %w", err)
}

// sortTasks orders by expected date ascending with undated tasks last,
// tie-broken by identifier for a stable merged stream.
func sortTasks(tasks []models.InventoryTask) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i].ExpectedDate, tasks[j].ExpectedDate
		switch {
		case a == nil && b == nil:
			return tasks[i].Ref.String() < tasks[j].Ref.String()
		case a == nil:
			return false
		case b == nil:
			return true
		case a.Equal(*b):
			return tasks[i].Ref.String() < tasks[j].Ref.String()
		default:
			return a.Before(*b)
		}
	})
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
