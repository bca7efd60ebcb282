package models

import (
	"time"

	"gorm.io/gorm"
)

type ConsultationStatus string

const (
	ConsultationStatusOpen      ConsultationStatus = "open"
	ConsultationStatusConcluded ConsultationStatus = "concluded"
)

// OverseasConsultation is an international trade consultation. A concluded
// consultation becomes the source of one inventory task. Overseas tasks
// never carry line items; the free-text content stands in for them.
type OverseasConsultation struct {
	ID      uint64             `gorm:"primarykey" json:"id"`
	Content string             `gorm:"type:text" json:"content"`
	Status  ConsultationStatus `gorm:"type:varchar(20);not null;default:'open'" json:"status"`

	// TaskType is stored explicitly; a consultation has no document kind
	// to derive the direction from.
	TaskType TaskType `gorm:"type:varchar(20);not null" json:"task_type"`

	// CompanyID is the consultation's counterparty. OverseasCompanyID is
	// set on the fulfillment record itself and takes precedence when
	// resolving the display name.
	CompanyID         *uint64 `json:"company_id"`
	OverseasCompanyID *uint64 `json:"overseas_company_id"`

	// Fulfillment tracking
	FulfillStatus TaskStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"fulfill_status"`
	ExpectedDate  *time.Time `json:"expected_date"`
	AssigneeID    *uint64    `json:"assignee_id"`
	AssignerID    *uint64    `json:"assigner_id"`
	CompletedAt   *time.Time `json:"completed_at"`
	CompleterID   *uint64    `json:"completer_id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Company         OverseasCompany `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	OverseasCompany OverseasCompany `gorm:"foreignKey:OverseasCompanyID" json:"overseas_company,omitempty"`
}
