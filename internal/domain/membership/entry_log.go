package membership

import (
	"time"

	"github.com/google/uuid"
	"github.com/gympos/backend/internal/domain/shared"
)

// Entry log constants for access events recorded at the register.
const (
	AccessTypeMember = "member"
	AreaReception    = "reception"
	SourcePOS        = "POS"
)

// EntryLogRecord is one append-only access event for a member. The
// confirmation workflow writes one per confirmed payment, recording
// the access granted at the reception desk.
type EntryLogRecord struct {
	shared.BaseEntity
	MemberID   uuid.UUID
	AccessType string
	OccurredAt time.Time
	Area       string
	Source     string
	Notes      string
}

// NewEntryLogRecord creates an access event
func NewEntryLogRecord(memberID uuid.UUID, accessType, area, source, notes string, at time.Time) (*EntryLogRecord, error) {
	if memberID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MEMBER", "Member ID cannot be empty")
	}
	if accessType == "" {
		return nil, shared.NewDomainError("INVALID_ACCESS_TYPE", "Access type cannot be empty")
	}

	rec := &EntryLogRecord{
		BaseEntity: shared.NewBaseEntity(),
		MemberID:   memberID,
		AccessType: accessType,
		OccurredAt: at,
		Area:       area,
		Source:     source,
		Notes:      notes,
	}
	rec.CreatedAt = at
	rec.UpdatedAt = at

	return rec, nil
}
