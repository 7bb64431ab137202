package draft

import (
	"context"
	"time"
)

// Key names the stored draft. The file store uses it as the file name and
// the DynamoDB store as the sort key.
const Key = "infotech2026_draft"

const SaveInterval = 30 * time.Second

// Draft is the subset of the form that survives a restart. Event
// selections, the paper topic, the transaction id, the receipt and the
// terms checkbox are never saved.
type Draft struct {
	FullName   string `json:"fullName" yaml:"fullName,omitempty"`
	College    string `json:"college" yaml:"college,omitempty"`
	Department string `json:"department" yaml:"department,omitempty"`
	Email      string `json:"email" yaml:"email,omitempty"`
	Phone      string `json:"phone" yaml:"phone,omitempty"`
	Member2    string `json:"member2" yaml:"member2,omitempty"`
	Member3    string `json:"member3" yaml:"member3,omitempty"`
	Member4    string `json:"member4" yaml:"member4,omitempty"`
	Notes      string `json:"notes" yaml:"notes,omitempty"`
}

func (d Draft) IsEmpty() bool {
	return d == Draft{}
}

type Store interface {
	Save(ctx context.Context, d Draft) error
	// Load returns false when nothing has been saved yet.
	Load(ctx context.Context) (Draft, bool, error)
	Clear(ctx context.Context) error
}
