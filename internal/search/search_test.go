package search

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zuul-tools/zuul-ls/internal/config"
	"github.com/zuul-tools/zuul-ls/internal/variable"
	"github.com/zuul-tools/zuul-ls/internal/zuul"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func parseJobs(t *testing.T, text string) *Jobs {
	t.Helper()
	elems, err := zuul.ParseText(text, "/repo/zuul.d/jobs.yaml", slog.Default())
	require.NoError(t, err)
	return NewJobs(elems.Jobs)
}

func jobNames(jobs []*zuul.Job) []string {
	var xs []string
	for _, j := range jobs {
		xs = append(xs, j.Name.Value)
	}
	return xs
}

type row struct {
	Name, Job, Value string
}

func rows(infos []variable.Info) []row {
	var xs []row
	for _, info := range infos {
		xs = append(xs, row{Name: info.Name.Value, Job: info.Source.Label(), Value: info.Value})
	}
	return xs
}

const treeYAML = `- job:
    name: a
- job:
    name: b
    parent: a
- job:
    name: c
    parent: a
- job:
    name: d
    parent: b
- job:
    name: b
    parent: c
`

func TestHierarchyFirstDefinitionWins(t *testing.T) {
	jobs := parseJobs(t, treeYAML)
	assert.Equal(t, []string{"d", "b", "a"}, jobNames(jobs.Hierarchy("d")))
	assert.Len(t, jobs.Locations("b"), 2)
	assert.Equal(t, []string{"a", "b", "c", "d"}, jobs.Names())
	assert.Empty(t, jobs.Hierarchy("missing"))
}

func TestHierarchyCycle(t *testing.T) {
	jobs := parseJobs(t, "- job:\n    name: x\n    parent: y\n- job:\n    name: y\n    parent: x\n")
	assert.Equal(t, []string{"x", "y"}, jobNames(jobs.Hierarchy("x")))
	assert.ElementsMatch(t, []string{"x", "y"}, jobNames(jobs.TopoOrder([]string{"x"})))
}

func TestTopoOrder(t *testing.T) {
	jobs := parseJobs(t, treeYAML)
	got := jobNames(jobs.TopoOrder([]string{"d", "c"}))
	if diff := cmp.Diff([]string{"a", "b", "c", "d"}, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"a"}, jobNames(jobs.TopoOrder([]string{"a", "a"})))
}

func TestJobPlaybooksOrder(t *testing.T) {
	jobs := parseJobs(t, `- job:
    name: base
    pre-run: playbooks/base-pre.yaml
    run: playbooks/base-run.yaml
    post-run: playbooks/base-post.yaml
- job:
    name: child
    parent: base
    pre-run: playbooks/child-pre.yaml
    post-run: playbooks/child-post.yaml
`)

	var got []string
	for _, r := range JobPlaybooks(jobs, "child") {
		got = append(got, string(r.Phase)+" "+r.Playbook.Ref.Value+" "+r.Job)
	}
	want := []string{
		"pre-run playbooks/base-pre.yaml base",
		"pre-run playbooks/child-pre.yaml child",
		"run playbooks/base-run.yaml base",
		"post-run playbooks/child-post.yaml child",
		"post-run playbooks/base-post.yaml base",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("playbooks mismatch (-want +got):\n%s", diff)
	}
}

func TestJobGraph(t *testing.T) {
	jobs := parseJobs(t, treeYAML)
	g := JobGraph(jobs.All())
	assert.Equal(t, []string{"a", "b", "c", "d"}, g.Nodes)
	assert.Equal(t, []Edge{{"b", "a"}, {"b", "c"}, {"c", "a"}, {"d", "b"}}, g.Edges)
}

func setupWorkspace(t *testing.T) (string, *Workspace) {
	t.Helper()
	root := t.TempDir()
	workDir := filepath.Join(root, "project")

	writeFile(t, filepath.Join(root, "shared", "zuul.d", "base.yaml"), `- job:
    name: base
    vars:
      x: 1
`)
	writeFile(t, filepath.Join(workDir, "zuul.d", "jobs.yaml"), `- job:
    name: child
    parent: base
    vars:
      y: 2

- job:
    name: pb-child
    parent: child
    run: playbooks/run.yaml

- project-template:
    name: local-template
    check:
      jobs:
        - child
`)
	writeFile(t, filepath.Join(workDir, "playbooks", "run.yaml"), `- hosts: all
  roles:
    - myrole
  tasks:
    - set_fact:
        y: from-playbook
        from_play: 1
      register: out
`)
	writeFile(t, filepath.Join(workDir, "roles", "myrole", "tasks", "main.yaml"), "- debug: {}\n")
	writeFile(t, filepath.Join(workDir, "roles", "myrole", "defaults", "main.yaml"), "role_default: 3\nfrom_play: 9\n")

	ws, err := Scan(context.Background(), workDir, &config.Config{})
	require.NoError(t, err)
	return workDir, ws
}

func TestScan(t *testing.T) {
	workDir, ws := setupWorkspace(t)
	assert.Equal(t, []string{"child", "pb-child", "base"}, ws.Jobs.Names())
	require.Len(t, ws.Roles, 1)
	assert.Equal(t, "myrole", ws.Roles[0].Name)
	assert.Len(t, ws.LocalRoles(), 1)
	assert.Len(t, ws.ProjectTemplates(true), 1)

	_, ok := ws.Role("myrole")
	assert.True(t, ok)
	assert.Equal(t, []string{"base", "child", "pb-child"}, jobNames(ws.Jobs.WorkDirJobs(workDir)))
	assert.Equal(t, []string{"child", "pb-child"}, jobNames(ws.Jobs.Under(workDir)))
}

func TestJobVarsEndToEnd(t *testing.T) {
	_, ws := setupWorkspace(t)

	got := rows(JobVars(ws.Jobs, "child", ws).Flatten())
	want := []row{
		{Name: "y", Job: "child", Value: "2"},
		{Name: "x", Job: "base", Value: "1"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("job vars mismatch (-want +got):\n%s", diff)
	}
}

func TestJobVarsPrecedence(t *testing.T) {
	workDir, ws := setupWorkspace(t)

	got := rows(JobVars(ws.Jobs, "pb-child", ws).Flatten())
	playbook := "playbook:" + filepath.Join(workDir, "playbooks", "run.yaml")
	want := []row{
		{Name: "y", Job: "child", Value: "2"},
		{Name: "x", Job: "base", Value: "1"},
		{Name: "from_play", Job: playbook, Value: "1"},
		{Name: "role_default", Job: "role:myrole", Value: "3"},
		{Name: "out", Job: playbook, Value: ""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("job vars mismatch (-want +got):\n%s", diff)
	}
}

func TestWorkDirVars(t *testing.T) {
	workDir, ws := setupWorkspace(t)

	group := WorkDirVars(ws.Jobs, workDir)
	assert.Equal(t, []string{"y", "x"}, group.Names())

	got := rows(WorkDirVarRows(ws.Jobs, workDir))
	want := []row{
		{Name: "x", Job: "base", Value: "1"},
		{Name: "y", Job: "child", Value: "2"},
	}
	assert.Equal(t, want, got)
}
