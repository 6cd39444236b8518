package search

import "github.com/zuul-tools/zuul-ls/internal/zuul"

// PlaybookRow is one playbook run by a job, attributed to the job of the
// hierarchy that declares it.
type PlaybookRow struct {
	Playbook zuul.Playbook
	Phase    zuul.Phase
	Job      string
}

// JobPlaybooks lists the playbooks a job runs grouped by phase. Pre-run
// and run playbooks of ancestors come first; post-run playbooks of the
// job itself come first.
func JobPlaybooks(jobs *Jobs, name string) []PlaybookRow {
	hierarchy := jobs.Hierarchy(name)

	var rows []PlaybookRow
	for _, phase := range []zuul.Phase{zuul.PhasePreRun, zuul.PhaseRun} {
		for i := len(hierarchy) - 1; i >= 0; i-- {
			rows = appendPlaybooks(rows, hierarchy[i], phase)
		}
	}
	for _, job := range hierarchy {
		rows = appendPlaybooks(rows, job, zuul.PhasePostRun)
	}
	return rows
}

func appendPlaybooks(rows []PlaybookRow, job *zuul.Job, phase zuul.Phase) []PlaybookRow {
	for _, pb := range job.Playbooks(phase) {
		rows = append(rows, PlaybookRow{Playbook: pb, Phase: phase, Job: job.Name.Value})
	}
	return rows
}
