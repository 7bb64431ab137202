package registration

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"slices"
)

// Registration is a participant's complete set of answers. Values are
// copied by Clone, so a snapshot taken before submission is not affected by
// later edits to the form.
type Registration struct {
	FullName      string
	College       string
	Department    string
	Email         string
	Phone         string
	Events        []string
	PaperTopic    string
	TeamMembers   [3]string
	TransactionID string
	Receipt       *Receipt
	Notes         string
}

func (r Registration) Clone() Registration {
	c := r
	c.Events = slices.Clone(r.Events)
	if r.Receipt != nil {
		receipt := *r.Receipt
		c.Receipt = &receipt
	}
	return c
}

func (r Registration) HasEvent(name string) bool {
	return slices.Contains(r.Events, name)
}

// Receipt is an opaque reference to the uploaded payment receipt.
type Receipt struct {
	Name string
	open func() (io.ReadCloser, error)
}

func NewReceipt(name string, content []byte) Receipt {
	return Receipt{
		Name: name,
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(content)), nil
		},
	}
}

func NewReceiptFromFile(path string) Receipt {
	return Receipt{
		Name: filepath.Base(path),
		open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}

func (r Receipt) Open() (io.ReadCloser, error) {
	if r.open == nil {
		return io.NopCloser(bytes.NewReader(nil)), nil
	}
	return r.open()
}
