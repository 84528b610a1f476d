// Package storage loads and saves the documents the properties panel edits.
package storage

import (
	"github.com/ja-he/proppanel/internal/model"
)

// DocumentProvider is the abstracted document provider, which can be
// implemented over various storage systems.
//
// The provider's responsibilities are as follows:
//   - load a document together with the diagram elements projecting it
//   - persist the current state of both on request
type DocumentProvider interface {
	Load() (*model.Document, *model.ElementRegistry, error)
	Save(doc *model.Document, registry *model.ElementRegistry) error
}
