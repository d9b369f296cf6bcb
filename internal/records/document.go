package records

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/gophrecords/internal/common"
)

// Document is the wire and remote-storage shape of a record. The header
// fields duplicate values from Body so stores can filter without decoding it.
type Document struct {
	ID        string          `json:"id"`
	Scope     Scope           `json:"scope"`
	UpdatedAt int64           `json:"updatedAt"`
	Deleted   bool            `json:"deleted"`
	Body      json.RawMessage `json:"body"`
}

// ParseCollectionError reports an unknown collection.
func ParseCollectionError(c Collection) error {
	return fmt.Errorf("%w: %q", common.ErrInvalidCollection, c)
}

// Encode projects rec into a Document. The dirty flag is not part of it.
func Encode(rec Record) (Document, error) {
	m := rec.Metadata()
	if m.ID == "" {
		return Document{}, fmt.Errorf("%w: empty id", common.ErrInvalidDocument)
	}
	body, err := json.Marshal(rec)
	if err != nil {
		return Document{}, fmt.Errorf("encode %s %s: %w", rec.Collection(), m.ID, err)
	}
	return Document{
		ID:        m.ID,
		Scope:     m.Scope,
		UpdatedAt: m.UpdatedAt,
		Deleted:   m.Deleted,
		Body:      body,
	}, nil
}

// Decode rebuilds a record of collection c from doc. The result is clean.
func Decode(c Collection, doc Document) (Record, error) {
	rec, err := New(c)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(doc.Body, rec); err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", common.ErrInvalidDocument, c, doc.ID, err)
	}
	m := rec.Metadata()
	if m.ID == "" {
		m.ID = doc.ID
	}
	if m.ID != doc.ID {
		return nil, fmt.Errorf("%w: body id %q does not match %q", common.ErrInvalidDocument, m.ID, doc.ID)
	}
	if m.Scope == "" {
		m.Scope = doc.Scope
	}
	if doc.Scope != "" && m.Scope != doc.Scope {
		return nil, fmt.Errorf("%w: %s: body scope %q does not match %q", common.ErrInvalidDocument, doc.ID, m.Scope, doc.Scope)
	}
	// stores filter and order on the header, so it must agree with the body
	if m.UpdatedAt != doc.UpdatedAt || m.Deleted != doc.Deleted {
		return nil, fmt.Errorf("%w: %s: body version %d/%t does not match header %d/%t",
			common.ErrInvalidDocument, doc.ID, m.UpdatedAt, m.Deleted, doc.UpdatedAt, doc.Deleted)
	}
	m.Dirty = false
	return rec, nil
}

// Header fills the header fields of a document whose Body is already set.
// Stores that persist only the body use it when reading back.
func Header(body json.RawMessage) (Document, error) {
	var m Meta
	if err := json.Unmarshal(body, &m); err != nil {
		return Document{}, fmt.Errorf("%w: %v", common.ErrInvalidDocument, err)
	}
	if m.ID == "" {
		return Document{}, fmt.Errorf("%w: empty id", common.ErrInvalidDocument)
	}
	return Document{ID: m.ID, Scope: m.Scope, UpdatedAt: m.UpdatedAt, Deleted: m.Deleted, Body: body}, nil
}
