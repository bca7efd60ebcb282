package repository

import (
	"github.com/aokitrading/fulfillment-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskStore is a GORM implementation of TaskStore.
type GormTaskStore struct {
	db *gorm.DB
}

// NewTaskStore creates a new TaskStore.
func NewTaskStore(db *gorm.DB) TaskStore {
	return &GormTaskStore{db: db}
}

// ListDocuments returns task-ready documents matching the filter.
func (s *GormTaskStore) ListDocuments(filter TaskFilter) ([]models.Document, error) {
	docType := models.DocumentTypeSales
	if filter.Type == models.TaskTypeInbound {
		docType = models.DocumentTypePurchase
	}

	query := s.db.Model(&models.Document{}).
		Where("documents.status = ?", models.DocumentStatusCompleted).
		Where("documents.doc_type = ?", docType)
	query = applyFulfillmentFilter(query, filter, "documents")

	var docs []models.Document
	err := query.
		Preload("Company").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("document_items.sort_order ASC, document_items.id ASC")
		}).
		Find(&docs).Error
	if err != nil {
		return nil, err
	}

	return docs, nil
}

// ListConsultations returns task-ready consultations matching the filter.
func (s *GormTaskStore) ListConsultations(filter TaskFilter) ([]models.OverseasConsultation, error) {
	query := s.db.Model(&models.OverseasConsultation{}).
		Where("overseas_consultations.status = ?", models.ConsultationStatusConcluded).
		Where("overseas_consultations.task_type = ?", filter.Type)
	query = applyFulfillmentFilter(query, filter, "overseas_consultations")

	var consultations []models.OverseasConsultation
	err := query.
		Preload("Company").
		Preload("OverseasCompany").
		Find(&consultations).Error
	if err != nil {
		return nil, err
	}

	return consultations, nil
}

// FindDocument returns a single task-ready document by row id.
func (s *GormTaskStore) FindDocument(id uint64) (*models.Document, error) {
	var doc models.Document
	err := s.db.
		Preload("Company").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("document_items.sort_order ASC, document_items.id ASC")
		}).
		Where("status = ?", models.DocumentStatusCompleted).
		First(&doc, id).Error
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

// FindConsultation returns a single task-ready consultation by row id.
func (s *GormTaskStore) FindConsultation(id uint64) (*models.OverseasConsultation, error) {
	var consultation models.OverseasConsultation
	err := s.db.
		Preload("Company").
		Preload("OverseasCompany").
		Where("status = ?", models.ConsultationStatusConcluded).
		First(&consultation, id).Error
	if err != nil {
		return nil, err
	}

	return &consultation, nil
}

// UpdateDocumentFulfillment writes fulfillment columns on one document row.
func (s *GormTaskStore) UpdateDocumentFulfillment(id uint64, fields map[string]interface{}) error {
	result := s.db.Model(&models.Document{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateConsultationFulfillment writes fulfillment columns on one consultation row.
func (s *GormTaskStore) UpdateConsultationFulfillment(id uint64, fields map[string]interface{}) error {
	result := s.db.Model(&models.OverseasConsultation{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// applyFulfillmentFilter adds the shared status/overdue/date-window
// conditions. Both source tables carry identically named fulfillment
// columns, so only the table prefix differs.
func applyFulfillmentFilter(query *gorm.DB, filter TaskFilter, table string) *gorm.DB {
	if filter.Overdue {
		query = query.
			Where(table+".fulfill_status IN ?", []models.TaskStatus{models.TaskStatusPending, models.TaskStatusAssigned}).
			Where(table+".expected_date IS NOT NULL").
			Where(table+".expected_date < ?", filter.Today)
	} else if filter.Status != nil {
		query = query.Where(table+".fulfill_status = ?", *filter.Status)
	}

	if filter.DateFrom != nil {
		query = query.Where(table+".expected_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where(table+".expected_date < ?", *filter.DateTo)
	}

	return query
}
