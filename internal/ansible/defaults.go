package ansible

import (
	"fmt"

	"github.com/zuul-tools/zuul-ls/internal/intern"
	"github.com/zuul-tools/zuul-ls/internal/variable"
	"github.com/zuul-tools/zuul-ls/internal/yamlloc"
)

// ParseDefaults parses a role's defaults/main file. It must hold exactly
// one document, a mapping of variables.
func ParseDefaults(text, path, role, roleDir string) (*variable.Table, error) {
	docs, err := yamlloc.Load(text)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	if len(docs) > 1 {
		return nil, fmt.Errorf("%s: expected one document, got %d", path, len(docs))
	}
	if len(docs) == 0 || docs[0].Kind == yamlloc.KindBadValue {
		return variable.NewTable(), nil
	}
	source := variable.RoleSource(role, intern.Intern(roleDir))
	return variable.Parse(docs[0], intern.Intern(path), role, source)
}

// ParseTemplateVars collects the variables of every mapping document in a
// YAML template file.
func ParseTemplateVars(text, path string) (*variable.Table, error) {
	docs, err := yamlloc.Load(text)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	p := intern.Intern(path)
	table := variable.NewTable()
	for _, doc := range docs {
		if doc.Kind != yamlloc.KindMap {
			continue
		}
		t, err := variable.Parse(doc, p, path, variable.Source{})
		if err != nil {
			return nil, err
		}
		table.Extend(t)
	}
	return table, nil
}
