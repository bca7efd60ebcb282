package repository

import (
	"time"

	"github.com/aokitrading/fulfillment-api/internal/models"
)

// TaskFilter holds the store-side filtering options for task listings.
// Readiness (completed documents, concluded consultations) is always
// applied; everything else is optional.
type TaskFilter struct {
	Type   models.TaskType
	Status *models.TaskStatus

	// Overdue selects the synthetic pseudo-status: non-terminal rows whose
	// expected date falls before Today. Mutually exclusive with Status.
	Overdue bool
	Today   time.Time

	// Expected-date window, inclusive from / exclusive to.
	DateFrom *time.Time
	DateTo   *time.Time
}

// TaskStore is the record store boundary for the fulfillment engine. Rows
// for the two task sources live in different tables; the engine merges
// them after resolution.
type TaskStore interface {
	// ListDocuments returns task-ready documents matching the filter,
	// with counterparty and line items preloaded.
	ListDocuments(filter TaskFilter) ([]models.Document, error)

	// ListConsultations returns task-ready consultations matching the filter.
	ListConsultations(filter TaskFilter) ([]models.OverseasConsultation, error)

	// FindDocument returns a single task-ready document by row id.
	FindDocument(id uint64) (*models.Document, error)

	// FindConsultation returns a single task-ready consultation by row id.
	FindConsultation(id uint64) (*models.OverseasConsultation, error)

	// UpdateDocumentFulfillment writes fulfillment columns on one document row.
	UpdateDocumentFulfillment(id uint64, fields map[string]interface{}) error

	// UpdateConsultationFulfillment writes fulfillment columns on one consultation row.
	UpdateConsultationFulfillment(id uint64, fields map[string]interface{}) error
}

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// List returns all users, ordered by username
	List() ([]models.User, error)
}
