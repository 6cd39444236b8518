package ls

import (
	"sync"

	"go.lsp.dev/protocol"
)

// Documents holds the text of open documents. Changes replace the whole
// text.
type Documents struct {
	mu    sync.RWMutex
	texts map[protocol.DocumentURI]string
}

// NewDocuments creates an empty store.
func NewDocuments() *Documents {
	return &Documents{texts: make(map[protocol.DocumentURI]string)}
}

// Set stores the current text of a document.
func (d *Documents) Set(uri protocol.DocumentURI, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.texts[uri] = text
}

// Get returns the text of an open document.
func (d *Documents) Get(uri protocol.DocumentURI) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	text, ok := d.texts[uri]
	return text, ok
}

// Close forgets a document.
func (d *Documents) Close(uri protocol.DocumentURI) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.texts, uri)
}

// Len returns the number of open documents.
func (d *Documents) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.texts)
}
