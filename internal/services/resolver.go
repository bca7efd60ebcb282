package services

import (
	"encoding/json"

	"github.com/aokitrading/fulfillment-api/internal/constants"
	"github.com/aokitrading/fulfillment-api/internal/models"
	"github.com/shopspring/decimal"
)

// legacyContent is the shape of the embedded items array older documents
// carry in their content payload. Read as a fallback only, never written.
type legacyContent struct {
	Items []legacyItem `json:"items"`
}

type legacyItem struct {
	Name     string          `json:"name"`
	Spec     string          `json:"spec"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
}

// ResolveDocumentTask normalizes a completed sales/purchase document into
// the unified task shape. Line items come from the structured table when
// any rows exist; only then does the legacy payload get consulted. The two
// representations are never merged.
func ResolveDocumentTask(doc *models.Document) models.InventoryTask {
	task := models.InventoryTask{
		Ref:          models.TaskRef{Source: models.TaskSourceDocument, NativeID: doc.ID},
		Type:         doc.TaskType(),
		Status:       doc.FulfillStatus,
		ExpectedDate: doc.ExpectedDate,
		AssigneeID:   doc.AssigneeID,
		AssignerID:   doc.AssignerID,
		CompletedAt:  doc.CompletedAt,
		CompleterID:  doc.CompleterID,
		DocumentNo:   doc.DocNo,
		CompanyName:  constants.UnknownCompanyLabel,
	}

	if doc.Company.ID != 0 {
		task.CompanyName = doc.Company.Name
	}

	if len(doc.Items) > 0 {
		task.Items = make([]models.TaskItem, len(doc.Items))
		for i, item := range doc.Items {
			task.Items[i] = models.TaskItem{
				Name:     item.Name,
				Spec:     item.Spec,
				Quantity: item.Quantity,
				Unit:     item.Unit,
			}
		}
		return task
	}

	task.Items = legacyItems(doc)
	return task
}

// legacyItems decodes the embedded items array. Malformed payloads degrade
// to an empty list rather than failing resolution.
func legacyItems(doc *models.Document) []models.TaskItem {
	if len(doc.Content) == 0 {
		return nil
	}

	var content legacyContent
	if err := json.Unmarshal(doc.Content, &content); err != nil {
		return nil
	}

	items := make([]models.TaskItem, 0, len(content.Items))
	for _, item := range content.Items {
		items = append(items, models.TaskItem{
			Name:     item.Name,
			Spec:     item.Spec,
			Quantity: item.Quantity,
			Unit:     item.Unit,
		})
	}

	return items
}

// ResolveOverseasTask normalizes a concluded trade consultation into the
// unified task shape. Overseas tasks never carry line items; the free-text
// consultation body stands in for them. Counterparty naming prefers the
// company linked directly to the task, then the consultation's company,
// then a fixed placeholder.
func ResolveOverseasTask(consultation *models.OverseasConsultation) models.InventoryTask {
	task := models.InventoryTask{
		Ref:          models.TaskRef{Source: models.TaskSourceOverseas, NativeID: consultation.ID},
		Type:         consultation.TaskType,
		Status:       consultation.FulfillStatus,
		ExpectedDate: consultation.ExpectedDate,
		AssigneeID:   consultation.AssigneeID,
		AssignerID:   consultation.AssignerID,
		CompletedAt:  consultation.CompletedAt,
		CompleterID:  consultation.CompleterID,
		Content:      consultation.Content,
		CompanyName:  constants.UnknownCompanyLabel,
	}

	switch {
	case consultation.OverseasCompany.ID != 0:
		task.CompanyName = consultation.OverseasCompany.Name
	case consultation.Company.ID != 0:
		task.CompanyName = consultation.Company.Name
	}

	return task
}
