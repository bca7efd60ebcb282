package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DocumentType string

const (
	DocumentTypeSales    DocumentType = "sales"
	DocumentTypePurchase DocumentType = "purchase"
)

type DocumentStatus string

const (
	DocumentStatusDraft     DocumentStatus = "draft"
	DocumentStatusCompleted DocumentStatus = "completed"
)

// Document is a sales or purchase record. Once its status reaches
// completed it becomes the source of one inventory task; the fulfillment
// columns track that task's lifecycle.
type Document struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	DocNo     string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"doc_no"`
	DocType   DocumentType   `gorm:"type:varchar(20);not null" json:"doc_type"`
	Status    DocumentStatus `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	CompanyID *uint64        `json:"company_id"`

	// Content is the legacy payload older documents carried before line
	// items moved into their own table. Its embedded items array is read
	// only when no DocumentItem rows exist; it is never written back.
	Content datatypes.JSON `json:"content"`

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
	Company Company        `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Items   []DocumentItem `gorm:"foreignKey:DocumentID" json:"items,omitempty"`
}

// TaskType maps the document kind onto the movement direction: purchases
// come in, sales go out.
func (d *Document) TaskType() TaskType {
	if d.DocType == DocumentTypePurchase {
		return TaskTypeInbound
	}
	return TaskTypeOutbound
}

// DocumentItem is one structured line on a document.
type DocumentItem struct {
	ID         uint64          `gorm:"primarykey" json:"id"`
	DocumentID uint64          `gorm:"not null;index" json:"document_id"`
	Name       string          `gorm:"type:varchar(255);not null" json:"name"`
	Spec       string          `gorm:"type:varchar(255)" json:"spec"`
	Quantity   decimal.Decimal `gorm:"type:decimal(15,4);not null" json:"quantity"`
	Unit       string          `gorm:"type:varchar(20)" json:"unit"`
	SortOrder  int             `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
