package providers

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/proppanel/internal/model"
	"github.com/ja-he/proppanel/internal/storage"
)

// FilesDocumentProvider stores a document as a YAML file.
type FilesDocumentProvider struct {
	handler *fileHandler
}

var _ storage.DocumentProvider = &FilesDocumentProvider{}

// NewFilesDocumentProvider returns a provider for the file at filename.
// A missing file loads as an empty document.
func NewFilesDocumentProvider(filename string) *FilesDocumentProvider {
	return &FilesDocumentProvider{handler: &fileHandler{filename: filename}}
}

// Filename returns the file the provider reads and writes.
func (p *FilesDocumentProvider) Filename() string { return p.handler.filename }

// Load reads the document from disk.
func (p *FilesDocumentProvider) Load() (*model.Document, *model.ElementRegistry, error) {
	data, err := p.handler.read()
	if err != nil {
		return nil, nil, err
	}
	if data == nil {
		log.Info().Str("file", p.handler.filename).Msg("document file does not exist, loading empty document")
		doc := model.NewDocument()
		return doc, model.NewElementRegistry(doc), nil
	}
	doc, registry, err := storage.Decode(data)
	if err != nil {
		return nil, nil, fmt.Errorf("could not load '%s' (%w)", p.handler.filename, err)
	}
	log.Debug().Str("file", p.handler.filename).Int("objects", len(doc.Objects())).Msg("loaded document")
	return doc, registry, nil
}

// Save writes the document to disk.
func (p *FilesDocumentProvider) Save(doc *model.Document, registry *model.ElementRegistry) error {
	data, err := storage.Encode(doc, registry)
	if err != nil {
		return err
	}
	if err := p.handler.write(data); err != nil {
		return err
	}
	log.Debug().Str("file", p.handler.filename).Msg("saved document")
	return nil
}
