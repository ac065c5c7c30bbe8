package models

import "time"

// ContactType is the kind of contact an enrichment job targets.
type ContactType string

const (
	ContactTypeCompany ContactType = "COMPANY"
	ContactTypePerson  ContactType = "PERSON"
)

// ContactTypes lists every ContactType in a stable order.
var ContactTypes = []ContactType{ContactTypeCompany, ContactTypePerson}

// EnrichmentStatus is the lifecycle state reported by the upstream feed.
type EnrichmentStatus string

const (
	StatusCompleted  EnrichmentStatus = "COMPLETED"
	StatusProcessing EnrichmentStatus = "PROCESSING"
	StatusFailed     EnrichmentStatus = "FAILED"
	StatusCanceled   EnrichmentStatus = "CANCELED"
)

// EnrichmentStatuses lists every EnrichmentStatus in a stable order.
var EnrichmentStatuses = []EnrichmentStatus{StatusCompleted, StatusProcessing, StatusFailed, StatusCanceled}

// EnrichmentRecord is one unit of simulated third-party enrichment output.
// UpdatedAt is never before CreatedAt.
type EnrichmentRecord struct {
	ID            string           `json:"id"`
	WorkspaceID   string           `json:"id_workspace"`
	WorkspaceName string           `json:"workspace_name"`
	TotalContacts int              `json:"total_contacts"`
	ContactType   ContactType      `json:"contact_type"`
	Status        EnrichmentStatus `json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// PageMeta describes where a page sits within the upstream feed.
type PageMeta struct {
	CurrentPage  int `json:"current_page"`
	ItemsPerPage int `json:"items_per_page"`
	TotalItems   int `json:"total_items"`
	TotalPages   int `json:"total_pages"`
}

// PageResult is the GET /v1/enrichments response body.
type PageResult struct {
	Meta PageMeta           `json:"meta"`
	Data []EnrichmentRecord `json:"data"`
}
