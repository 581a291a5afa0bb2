package services

import (
	"github.com/sahilchouksey/uniadvisor-api/model"
)

// ProfileStrength is a coarse three-level rating of application readiness
type ProfileStrength string

const (
	StrengthWeak    ProfileStrength = "Weak"
	StrengthAverage ProfileStrength = "Average"
	StrengthStrong  ProfileStrength = "Strong"
)

// Advising funnel stages. Stage 1 (Profile Setup) is reached outside the
// engine, once a profile row exists; ComputeStage only returns 2-4.
const (
	StageProfileSetup = 1
	StageDiscovery    = 2
	StageShortlisting = 3
	StageApplications = 4
)

// StageLabels maps stage numbers (1-based) to display labels
var StageLabels = []string{"Profile Setup", "University Discovery", "Shortlisting", "Applications"}

// Task slot ids. Slot 1 is the standing slot; the rest are regenerated on
// every recomputation and are not identity-stable across runs.
const (
	taskIeltsToefl    = 2
	taskGreGmat       = 3
	taskSOP           = 4
	taskStartApplying = 5
	taskLockTarget    = 6
	taskShortlistMore = 7
)

// ComputeProfileStrength rates the profile. A missing profile is Weak
// unconditionally; otherwise one point each for a recorded GPA, a taken
// IELTS/TOEFL, a taken GRE/GMAT, and a ready SOP.
func ComputeProfileStrength(profile *model.Onboarding) ProfileStrength {
	if profile == nil {
		return StrengthWeak
	}

	score := 0
	if profile.GPAOrPercentage != nil && *profile.GPAOrPercentage != "" {
		score++
	}
	if profile.IeltsToeflStatus == model.ExamTaken {
		score++
	}
	if profile.GreGmatStatus == model.ExamTaken {
		score++
	}
	if profile.SOPStatus == model.SOPReady {
		score++
	}

	switch {
	case score >= 3:
		return StrengthStrong
	case score >= 1:
		return StrengthAverage
	default:
		return StrengthWeak
	}
}

// ComputeStage derives the advising stage from selection counts alone.
// Any locked university wins over any number of shortlisted ones.
func ComputeStage(selections []model.Selection) int {
	shortlisted, locked := countByStatus(selections)

	if locked > 0 {
		return StageApplications
	}
	if shortlisted > 0 {
		return StageShortlisting
	}
	return StageDiscovery
}

// TaskEngineOptions configures completion carry-forward. The default
// (zero value) matches the original product behaviour: only the standing
// slot's completion flag survives recomputation. With
// PersistAllCompletions set, completion is carried for any slot whose id
// and text are unchanged since the previous run.
type TaskEngineOptions struct {
	PersistAllCompletions bool
}

// GenerateTasks builds the recommended task list from the previous list
// and the current profile/selection snapshot. The standing slot is always
// present and keeps its completion flag; every other slot is regenerated
// with completed=false. A nil profile yields only the standing slot.
func GenerateTasks(prev []model.TaskItem, profile *model.Onboarding, selections []model.Selection, opts TaskEngineOptions) []model.TaskItem {
	standing := model.TaskItem{ID: model.StandingTaskID, Text: model.StandingTaskText}
	for _, t := range prev {
		if t.ID == model.StandingTaskID {
			standing.Completed = t.Completed
			break
		}
	}

	tasks := []model.TaskItem{standing}
	if profile == nil {
		return tasks
	}

	// 1. Exam tasks
	if profile.IeltsToeflStatus == model.ExamNotTaken {
		tasks = append(tasks, model.TaskItem{ID: taskIeltsToefl, Text: "Register for IELTS/TOEFL"})
	}
	if profile.GreGmatStatus == model.ExamNotTaken &&
		(profile.IntendedDegree == nil || *profile.IntendedDegree != model.DegreeBachelors) {
		tasks = append(tasks, model.TaskItem{ID: taskGreGmat, Text: "Check GRE/GMAT requirements"})
	}

	// 2. SOP tasks (mutually exclusive; Ready yields neither)
	switch profile.SOPStatus {
	case model.SOPNotStarted:
		tasks = append(tasks, model.TaskItem{ID: taskSOP, Text: "Draft your Statement of Purpose"})
	case model.SOPDraft:
		tasks = append(tasks, model.TaskItem{ID: taskSOP, Text: "Finalize SOP"})
	}

	// 3. Exactly one selection-priority task
	shortlisted, locked := countByStatus(selections)
	switch {
	case locked > 0:
		tasks = append(tasks, model.TaskItem{ID: taskStartApplying, Text: "Start application for your locked university"})
	case shortlisted >= 3:
		tasks = append(tasks, model.TaskItem{ID: taskLockTarget, Text: "Lock your target university to start applying"})
	default:
		tasks = append(tasks, model.TaskItem{ID: taskShortlistMore, Text: "Shortlist at least 3 universities"})
	}

	if opts.PersistAllCompletions {
		carryCompletions(tasks, prev)
	}
	return tasks
}

// carryCompletions copies completion flags from the previous run for
// slots whose id and text are unchanged. The standing slot was already
// handled.
func carryCompletions(tasks []model.TaskItem, prev []model.TaskItem) {
	byID := make(map[int]model.TaskItem, len(prev))
	for _, t := range prev {
		byID[t.ID] = t
	}
	for i := range tasks {
		if tasks[i].ID == model.StandingTaskID {
			continue
		}
		if old, ok := byID[tasks[i].ID]; ok && old.Text == tasks[i].Text {
			tasks[i].Completed = old.Completed
		}
	}
}

func countByStatus(selections []model.Selection) (shortlisted, locked int) {
	for _, s := range selections {
		switch s.Status {
		case model.StatusShortlisted:
			shortlisted++
		case model.StatusLocked:
			locked++
		}
	}
	return shortlisted, locked
}
