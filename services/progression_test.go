package services

import (
	"testing"

	"github.com/sahilchouksey/uniadvisor-api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func degreePtr(d model.IntendedDegree) *model.IntendedDegree { return &d }

func sel(id string, status model.SelectionStatus) model.Selection {
	return model.Selection{UniversityID: id, Status: status}
}

func TestComputeProfileStrength(t *testing.T) {
	tests := []struct {
		name    string
		profile *model.Onboarding
		want    ProfileStrength
	}{
		{"nil profile is weak", nil, StrengthWeak},
		{
			"no scoring signal is weak",
			&model.Onboarding{
				IeltsToeflStatus: model.ExamNotTaken,
				GreGmatStatus:    model.ExamNotTaken,
				SOPStatus:        model.SOPNotStarted,
			},
			StrengthWeak,
		},
		{
			"empty gpa string does not score",
			&model.Onboarding{
				GPAOrPercentage:  strPtr(""),
				IeltsToeflStatus: model.ExamNotTaken,
				GreGmatStatus:    model.ExamNotTaken,
				SOPStatus:        model.SOPNotStarted,
			},
			StrengthWeak,
		},
		{
			"single signal is average",
			&model.Onboarding{
				GPAOrPercentage:  strPtr("3.2"),
				IeltsToeflStatus: model.ExamNotTaken,
				GreGmatStatus:    model.ExamNotTaken,
				SOPStatus:        model.SOPNotStarted,
			},
			StrengthAverage,
		},
		{
			"two signals is average",
			&model.Onboarding{
				GPAOrPercentage:  strPtr("3.2"),
				IeltsToeflStatus: model.ExamTaken,
				GreGmatStatus:    model.ExamNotTaken,
				SOPStatus:        model.SOPDraft,
			},
			StrengthAverage,
		},
		{
			"scheduled exam does not score",
			&model.Onboarding{
				IeltsToeflStatus: model.ExamScheduled,
				GreGmatStatus:    model.ExamScheduled,
				SOPStatus:        model.SOPDraft,
			},
			StrengthWeak,
		},
		{
			// Scenario C: all four signals
			"all signals is strong",
			&model.Onboarding{
				GPAOrPercentage:  strPtr("3.8"),
				IeltsToeflStatus: model.ExamTaken,
				GreGmatStatus:    model.ExamTaken,
				SOPStatus:        model.SOPReady,
			},
			StrengthStrong,
		},
		{
			"three signals is strong",
			&model.Onboarding{
				GPAOrPercentage:  strPtr("3.8"),
				IeltsToeflStatus: model.ExamTaken,
				GreGmatStatus:    model.ExamTaken,
				SOPStatus:        model.SOPDraft,
			},
			StrengthStrong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeProfileStrength(tt.profile))
		})
	}
}

func TestComputeStage(t *testing.T) {
	tests := []struct {
		name       string
		selections []model.Selection
		want       int
	}{
		{"empty list is discovery", nil, StageDiscovery},
		{"shortlisted only is shortlisting", []model.Selection{sel("usa-1", model.StatusShortlisted)}, StageShortlisting},
		{"locked only is applications", []model.Selection{sel("usa-1", model.StatusLocked)}, StageApplications},
		{
			"locked wins over any shortlisted count",
			[]model.Selection{
				sel("usa-1", model.StatusShortlisted),
				sel("usa-2", model.StatusShortlisted),
				sel("usa-3", model.StatusShortlisted),
				sel("uk-1", model.StatusLocked),
			},
			StageApplications,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeStage(tt.selections))
		})
	}
}

func taskTexts(tasks []model.TaskItem) []string {
	texts := make([]string, len(tasks))
	for i, task := range tasks {
		texts[i] = task.Text
	}
	return texts
}

func TestGenerateTasksScenarioA(t *testing.T) {
	profile := &model.Onboarding{
		IeltsToeflStatus: model.ExamNotTaken,
		GreGmatStatus:    model.ExamNotTaken,
		IntendedDegree:   degreePtr(model.DegreeMasters),
		SOPStatus:        model.SOPNotStarted,
	}

	tasks := GenerateTasks(nil, profile, nil, TaskEngineOptions{})

	assert.Equal(t, []string{
		model.StandingTaskText,
		"Register for IELTS/TOEFL",
		"Check GRE/GMAT requirements",
		"Draft your Statement of Purpose",
		"Shortlist at least 3 universities",
	}, taskTexts(tasks))
	assert.Equal(t, model.StandingTaskID, tasks[0].ID)
	assert.False(t, tasks[0].Completed)
	assert.Equal(t, StageDiscovery, ComputeStage(nil))
}

func TestGenerateTasksScenarioB(t *testing.T) {
	profile := &model.Onboarding{
		IeltsToeflStatus: model.ExamTaken,
		GreGmatStatus:    model.ExamTaken,
		SOPStatus:        model.SOPReady,
	}
	selections := []model.Selection{
		sel("usa-1", model.StatusLocked),
		sel("usa-2", model.StatusShortlisted),
		sel("usa-3", model.StatusShortlisted),
		sel("usa-4", model.StatusShortlisted),
	}

	tasks := GenerateTasks(nil, profile, selections, TaskEngineOptions{})

	// The locked university wins regardless of shortlisted count, and the
	// selection-priority task appears exactly once.
	assert.Equal(t, []string{
		model.StandingTaskText,
		"Start application for your locked university",
	}, taskTexts(tasks))
	assert.Equal(t, StageApplications, ComputeStage(selections))
}

func TestGenerateTasksSOPVariants(t *testing.T) {
	base := func(status model.SOPStatus) *model.Onboarding {
		return &model.Onboarding{
			IeltsToeflStatus: model.ExamTaken,
			GreGmatStatus:    model.ExamTaken,
			SOPStatus:        status,
		}
	}

	tasks := GenerateTasks(nil, base(model.SOPNotStarted), nil, TaskEngineOptions{})
	assert.Contains(t, taskTexts(tasks), "Draft your Statement of Purpose")
	assert.NotContains(t, taskTexts(tasks), "Finalize SOP")

	tasks = GenerateTasks(nil, base(model.SOPDraft), nil, TaskEngineOptions{})
	assert.Contains(t, taskTexts(tasks), "Finalize SOP")
	assert.NotContains(t, taskTexts(tasks), "Draft your Statement of Purpose")

	tasks = GenerateTasks(nil, base(model.SOPReady), nil, TaskEngineOptions{})
	assert.NotContains(t, taskTexts(tasks), "Finalize SOP")
	assert.NotContains(t, taskTexts(tasks), "Draft your Statement of Purpose")
}

func TestGenerateTasksBachelorsSkipsGreGmat(t *testing.T) {
	profile := &model.Onboarding{
		IeltsToeflStatus: model.ExamTaken,
		GreGmatStatus:    model.ExamNotTaken,
		IntendedDegree:   degreePtr(model.DegreeBachelors),
		SOPStatus:        model.SOPReady,
	}

	tasks := GenerateTasks(nil, profile, nil, TaskEngineOptions{})
	assert.NotContains(t, taskTexts(tasks), "Check GRE/GMAT requirements")

	// A missing intended degree does not suppress the task
	profile.IntendedDegree = nil
	tasks = GenerateTasks(nil, profile, nil, TaskEngineOptions{})
	assert.Contains(t, taskTexts(tasks), "Check GRE/GMAT requirements")
}

func TestGenerateTasksSelectionPriority(t *testing.T) {
	profile := &model.Onboarding{
		IeltsToeflStatus: model.ExamTaken,
		GreGmatStatus:    model.ExamTaken,
		SOPStatus:        model.SOPReady,
	}

	tasks := GenerateTasks(nil, profile, []model.Selection{
		sel("usa-1", model.StatusShortlisted),
		sel("usa-2", model.StatusShortlisted),
		sel("usa-3", model.StatusShortlisted),
	}, TaskEngineOptions{})
	assert.Equal(t, []string{
		model.StandingTaskText,
		"Lock your target university to start applying",
	}, taskTexts(tasks))

	tasks = GenerateTasks(nil, profile, []model.Selection{
		sel("usa-1", model.StatusShortlisted),
	}, TaskEngineOptions{})
	assert.Equal(t, []string{
		model.StandingTaskText,
		"Shortlist at least 3 universities",
	}, taskTexts(tasks))
}

func TestGenerateTasksStandingSlot(t *testing.T) {
	profile := &model.Onboarding{
		IeltsToeflStatus: model.ExamNotTaken,
		GreGmatStatus:    model.ExamNotTaken,
		SOPStatus:        model.SOPNotStarted,
	}

	// First run: standing slot defaults to incomplete
	first := GenerateTasks(nil, profile, nil, TaskEngineOptions{})
	require.Equal(t, model.StandingTaskID, first[0].ID)
	assert.False(t, first[0].Completed)

	// Completion of the standing slot survives recomputation; everything
	// else is regenerated fresh.
	first[0].Completed = true
	first[1].Completed = true // ephemeral slot, discarded

	second := GenerateTasks(first, profile, nil, TaskEngineOptions{})
	require.Equal(t, model.StandingTaskID, second[0].ID)
	assert.True(t, second[0].Completed)
	for _, task := range second[1:] {
		assert.False(t, task.Completed, "slot %d should be regenerated fresh", task.ID)
	}

	// Exactly one standing entry, always
	count := 0
	for _, task := range second {
		if task.ID == model.StandingTaskID {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestGenerateTasksNilProfile(t *testing.T) {
	tasks := GenerateTasks(nil, nil, []model.Selection{sel("usa-1", model.StatusLocked)}, TaskEngineOptions{})
	require.Len(t, tasks, 1)
	assert.Equal(t, model.StandingTaskID, tasks[0].ID)
}

func TestGenerateTasksPersistAllCompletions(t *testing.T) {
	profile := &model.Onboarding{
		IeltsToeflStatus: model.ExamNotTaken,
		GreGmatStatus:    model.ExamNotTaken,
		SOPStatus:        model.SOPDraft,
	}
	opts := TaskEngineOptions{PersistAllCompletions: true}

	first := GenerateTasks(nil, profile, nil, opts)
	first[1].Completed = true // "Register for IELTS/TOEFL"

	second := GenerateTasks(first, profile, nil, opts)
	assert.True(t, second[1].Completed)

	// A slot whose text changed starts fresh even in carry mode
	profile.SOPStatus = model.SOPNotStarted
	for i := range second {
		second[i].Completed = true
	}
	third := GenerateTasks(second, profile, nil, opts)
	for _, task := range third {
		if task.Text == "Draft your Statement of Purpose" {
			assert.False(t, task.Completed)
		}
	}
}
