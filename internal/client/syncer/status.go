package syncer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/gophrecords/internal/records"
)

// Recorder persists sync bookkeeping. The client's metadata repository
// implements it.
type Recorder interface {
	Set(ctx context.Context, key string, value []byte) error
}

// Status is the value stored under LastSuccessKey and LastErrorKey.
type Status struct {
	At     time.Time `json:"at"`
	Phase  Phase     `json:"phase,omitempty"`
	Error  string    `json:"error,omitempty"`
	Pushed int       `json:"pushed"`
	Pulled int       `json:"pulled"`
}

// StatusPrefix is shared by every bookkeeping key of scope.
func StatusPrefix(scope records.Scope) string {
	return "sync." + string(scope) + "."
}

func LastSuccessKey(scope records.Scope) string {
	return StatusPrefix(scope) + "last_success"
}

func LastErrorKey(scope records.Scope) string {
	return StatusPrefix(scope) + "last_error"
}

// ParseStatus decodes a stored Status. A nil value yields nil.
func ParseStatus(b []byte) (*Status, error) {
	if b == nil {
		return nil, nil
	}
	var st Status
	if err := json.Unmarshal(b, &st); err != nil {
		return nil, err
	}
	return &st, nil
}
