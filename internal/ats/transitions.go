package ats

import "github.com/riyanshibariyaa/jp5/internal/model"

// statusOrder indexes the forward pipeline path
// applied -> screening -> interview_scheduled -> interviewed -> offer_sent -> hired.
// rejected and withdrawn are absorbing and reachable from any non-terminal
// status; terminal statuses reject every further transition.
var statusOrder = map[string]int{
	model.StatusApplied:            0,
	model.StatusScreening:          1,
	model.StatusInterviewScheduled: 2,
	model.StatusInterviewed:        3,
	model.StatusOfferSent:          4,
	model.StatusHired:              5,
}

var knownStages = map[string]bool{
	model.StageApplicationReceived: true,
	model.StageScreening:           true,
	model.StagePhoneScreen:         true,
	model.StageInterview:           true,
	model.StageFinalInterview:      true,
	model.StageOffer:               true,
	model.StageHired:               true,
	model.StageRejected:            true,
}

// ValidStatus reports whether s is a known application status.
func ValidStatus(s string) bool {
	if _, ok := statusOrder[s]; ok {
		return true
	}
	return s == model.StatusRejected || s == model.StatusWithdrawn
}

// ValidStage reports whether s is a known ATS stage label. The stage is a
// parallel enum set explicitly alongside the status, never derived from it.
func ValidStage(s string) bool {
	return knownStages[s]
}

// CanTransition reports whether an application may move from current to next.
func CanTransition(current, next string) bool {
	if !ValidStatus(current) || !ValidStatus(next) {
		return false
	}
	if model.IsTerminalStatus(current) {
		return false
	}
	if next == model.StatusRejected || next == model.StatusWithdrawn {
		return true
	}
	// Forward moves only, skipping intermediate steps is allowed.
	return statusOrder[next] > statusOrder[current]
}
