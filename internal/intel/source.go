package intel

import (
	"context"
	"errors"

	"github.com/privascan/privascan/internal/model"
)

// Source is one IP intelligence provider consulted during a merge.
type Source interface {
	// Lookup returns the data this source reports for the IP, or an
	// error if the lookup failed. Implementations must respect context
	// cancellation. A failed lookup never fails the merge; the merger
	// records the gap in the confidence value instead.
	Lookup(ctx context.Context, ip string) (*model.SourceData, error)

	// Name returns the source identifier recorded in the merged
	// record's sources list.
	Name() string

	// Role returns the source role ("primary", "backup", or "asn"),
	// which fixes the merge priority and the confidence increment.
	Role() string
}

// DocumentSource serves a pre-fetched intelligence response from a scan
// payload. A document marked failed reproduces the original lookup
// failure, so a payload carries the complete settlement picture including
// the gaps.
type DocumentSource struct {
	doc model.SourceDocument
}

// NewDocumentSource wraps a payload source document as a Source.
func NewDocumentSource(doc model.SourceDocument) *DocumentSource {
	return &DocumentSource{doc: doc}
}

// Lookup returns the stored response, or the stored failure.
func (s *DocumentSource) Lookup(ctx context.Context, _ string) (*model.SourceData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.doc.Failed {
		msg := s.doc.Error
		if msg == "" {
			msg = "source lookup failed"
		}
		return nil, errors.New(msg)
	}
	data := s.doc.Data
	return &data, nil
}

// Name returns the document's source identifier.
func (s *DocumentSource) Name() string { return s.doc.Name }

// Role returns the document's source role.
func (s *DocumentSource) Role() string { return s.doc.Role }

// rolePriority orders roles for the merge: primary fills first, then
// backup, then everything else.
func rolePriority(role string) int {
	switch role {
	case model.SourceRolePrimary:
		return 0
	case model.SourceRoleBackup:
		return 1
	default:
		return 2
	}
}
