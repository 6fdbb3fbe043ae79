package domain

import "time"

// AuditAction enumerates recorded actions (table tracabilite).
type AuditAction string

const (
	AuditActionCreation      AuditAction = "Creation"
	AuditActionModification  AuditAction = "Modification"
	AuditActionSuppression   AuditAction = "Suppression"
	AuditActionConsultation  AuditAction = "Consultation"
	AuditActionAffectation   AuditAction = "Affectation"
	AuditActionReassignation AuditAction = "Reassignation"
)

// AuditTrace is one row of the audit trail. Writes are best-effort
// side channel: a failed trace never fails the parent operation.
type AuditTrace struct {
	ID          int64
	TableCible  string
	RecordID    int64
	Action      AuditAction
	UserID      int64
	Date        time.Time
	IPAddress   string
	UserAgent   string
	Description string
}
