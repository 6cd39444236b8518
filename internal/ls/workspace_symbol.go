package ls

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"go.lsp.dev/protocol"
	"golang.org/x/text/cases"
)

// WorkspaceSymbols lists the jobs, variables, roles and project
// templates matching query. Prefix matches sort first.
func WorkspaceSymbols(idx *SymbolIndex, query string) []protocol.SymbolInformation {
	var all []protocol.SymbolInformation

	for _, name := range idx.jobNames {
		for _, loc := range idx.Jobs[name] {
			all = append(all, symbol(name, protocol.SymbolKindClass, stringLocLocation(loc)))
		}
	}
	for _, info := range idx.Vars.Flatten() {
		all = append(all, symbol(info.Name.Value, protocol.SymbolKindVariable, stringLocLocation(info.Name)))
	}
	for _, name := range idx.roleNames {
		r := idx.Roles[name]
		loc := fileLocation(r.Dir)
		if main, ok := r.TasksMain(); ok {
			loc = fileLocation(main)
		}
		all = append(all, symbol(name, protocol.SymbolKindFunction, loc))
	}
	for _, name := range idx.templateNames {
		all = append(all, symbol(name, protocol.SymbolKindModule, stringLocLocation(idx.ProjectTemplates[name])))
	}

	if query == "" {
		return all
	}

	fold := cases.Fold()
	q := fold.String(query)
	var matched []protocol.SymbolInformation
	for _, s := range all {
		if fuzzy.MatchFold(query, s.Name) {
			matched = append(matched, s)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		pi := strings.HasPrefix(fold.String(matched[i].Name), q)
		pj := strings.HasPrefix(fold.String(matched[j].Name), q)
		return pi && !pj
	})
	return matched
}

func symbol(name string, kind protocol.SymbolKind, loc protocol.Location) protocol.SymbolInformation {
	return protocol.SymbolInformation{Name: name, Kind: kind, Location: loc}
}
