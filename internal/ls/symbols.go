// Package ls implements the zuul-ls language server.
package ls

import (
	"unicode/utf8"

	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"

	"github.com/zuul-tools/zuul-ls/internal/parser"
	"github.com/zuul-tools/zuul-ls/internal/repo"
	"github.com/zuul-tools/zuul-ls/internal/search"
	"github.com/zuul-tools/zuul-ls/internal/variable"
)

// SymbolIndex is built once from a workspace scan and then only read.
type SymbolIndex struct {
	Roles            map[string]repo.Role
	Jobs             map[string][]parser.StringLoc
	Vars             *variable.Group
	ProjectTemplates map[string]parser.StringLoc

	roleNames     []string
	jobNames      []string
	templateNames []string
}

// NewSymbolIndex creates an empty index.
func NewSymbolIndex() *SymbolIndex {
	return &SymbolIndex{
		Roles:            make(map[string]repo.Role),
		Jobs:             make(map[string][]parser.StringLoc),
		Vars:             variable.NewGroup(),
		ProjectTemplates: make(map[string]parser.StringLoc),
	}
}

// BuildIndex indexes the roles, jobs, work dir variables and project
// templates of ws. The first role or template of a name wins.
func BuildIndex(ws *search.Workspace) *SymbolIndex {
	idx := NewSymbolIndex()

	for _, r := range ws.Roles {
		if _, ok := idx.Roles[r.Name]; !ok {
			idx.Roles[r.Name] = r
			idx.roleNames = append(idx.roleNames, r.Name)
		}
	}

	for _, name := range ws.Jobs.Names() {
		idx.Jobs[name] = ws.Jobs.Locations(name)
		idx.jobNames = append(idx.jobNames, name)
	}

	idx.Vars = search.WorkDirVars(ws.Jobs, ws.WorkDir)

	for _, pt := range ws.Elements.ProjectTemplates {
		if _, ok := idx.ProjectTemplates[pt.Name.Value]; !ok {
			idx.ProjectTemplates[pt.Name.Value] = pt.Name
			idx.templateNames = append(idx.templateNames, pt.Name.Value)
		}
	}
	return idx
}

// Role returns the role named name. It makes the index usable as a
// search.RoleFinder.
func (idx *SymbolIndex) Role(name string) (repo.Role, bool) {
	r, ok := idx.Roles[name]
	return r, ok
}

func fileURI(path string) protocol.DocumentURI {
	return protocol.DocumentURI(uri.File(path))
}

func fileLocation(path string) protocol.Location {
	return protocol.Location{URI: fileURI(path)}
}

func stringLocLocation(s parser.StringLoc) protocol.Location {
	start := protocol.Position{Line: uint32(s.Line), Character: uint32(s.Col)}
	end := start
	end.Character += uint32(utf8.RuneCountInString(s.Value))
	return protocol.Location{
		URI:   fileURI(s.Path.String()),
		Range: protocol.Range{Start: start, End: end},
	}
}
