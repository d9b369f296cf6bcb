package records

// Meta is the replication metadata shared by every record.
type Meta struct {
	ID        string `json:"id"`
	Scope     Scope  `json:"scope"`
	OwnerID   string `json:"ownerId"`
	UpdatedAt int64  `json:"updatedAt"`
	Deleted   bool   `json:"deleted"`

	// Dirty is owned by the local store and never leaves it.
	Dirty bool `json:"-"`
}

// IsNewerThan reports whether m was mutated after other.
func (m Meta) IsNewerThan(other Meta) bool {
	return m.UpdatedAt > other.UpdatedAt
}

// Record is implemented by Subject and Event.
type Record interface {
	Metadata() *Meta
	Collection() Collection
}

// Subject is a tracked thing: a pet, a vehicle, a family member.
type Subject struct {
	Meta
	Name        string   `json:"name"`
	BirthDate   *int64   `json:"birthDate,omitempty"`
	Measurement *float64 `json:"measurement,omitempty"`
	Notes       string   `json:"notes"`
	IconKey     string   `json:"iconKey"`
	Color       string   `json:"color"`
}

func (s *Subject) Metadata() *Meta        { return &s.Meta }
func (s *Subject) Collection() Collection { return CollectionSubjects }

// Event is a scheduled or recurring occurrence attached to a Subject.
// SubjectID is not checked against the subjects collection.
type Event struct {
	Meta
	SubjectID  string   `json:"subjectId"`
	Title      string   `json:"title"`
	Note       string   `json:"note"`
	DueAt      int64    `json:"dueAt"`
	Realized   bool     `json:"realized"`
	RealizedAt *int64   `json:"realizedAt,omitempty"`
	Cost       *float64 `json:"cost,omitempty"`
}

func (e *Event) Metadata() *Meta        { return &e.Meta }
func (e *Event) Collection() Collection { return CollectionEvents }

// New returns an empty record of the given collection.
func New(c Collection) (Record, error) {
	switch c {
	case CollectionSubjects:
		return &Subject{}, nil
	case CollectionEvents:
		return &Event{}, nil
	default:
		return nil, ParseCollectionError(c)
	}
}

// IDs returns the ids of recs in order.
func IDs[R Record](recs []R) []string {
	ids := make([]string, len(recs))
	for i, r := range recs {
		ids[i] = r.Metadata().ID
	}
	return ids
}

// Version identifies one state of a record: its address (scope, id) plus
// the UpdatedAt it carried. The local store uses it to clear the dirty flag
// only for the exact state that was uploaded.
type Version struct {
	Scope     Scope
	ID        string
	UpdatedAt int64
}

func (m Meta) Version() Version {
	return Version{Scope: m.Scope, ID: m.ID, UpdatedAt: m.UpdatedAt}
}
