package ats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/riyanshibariyaa/jp5/internal/model"
)

func TestCanTransition_forwardMoves(t *testing.T) {
	assert.True(t, CanTransition(model.StatusApplied, model.StatusScreening))
	assert.True(t, CanTransition(model.StatusScreening, model.StatusInterviewScheduled))
	assert.True(t, CanTransition(model.StatusInterviewScheduled, model.StatusInterviewed))
	assert.True(t, CanTransition(model.StatusInterviewed, model.StatusOfferSent))
	assert.True(t, CanTransition(model.StatusOfferSent, model.StatusHired))
}

func TestCanTransition_skippingStepsAllowed(t *testing.T) {
	assert.True(t, CanTransition(model.StatusApplied, model.StatusOfferSent))
	assert.True(t, CanTransition(model.StatusScreening, model.StatusHired))
}

func TestCanTransition_noBackwardMoves(t *testing.T) {
	assert.False(t, CanTransition(model.StatusScreening, model.StatusApplied))
	assert.False(t, CanTransition(model.StatusOfferSent, model.StatusInterviewed))
	assert.False(t, CanTransition(model.StatusApplied, model.StatusApplied))
}

func TestCanTransition_absorbingStatuses(t *testing.T) {
	for _, from := range []string{
		model.StatusApplied, model.StatusScreening, model.StatusInterviewScheduled,
		model.StatusInterviewed, model.StatusOfferSent,
	} {
		assert.True(t, CanTransition(from, model.StatusRejected), "from %s", from)
		assert.True(t, CanTransition(from, model.StatusWithdrawn), "from %s", from)
	}
}

func TestCanTransition_terminalStatusesAreFinal(t *testing.T) {
	for _, from := range []string{model.StatusHired, model.StatusRejected, model.StatusWithdrawn} {
		for _, to := range []string{
			model.StatusApplied, model.StatusScreening, model.StatusInterviewScheduled,
			model.StatusInterviewed, model.StatusOfferSent, model.StatusHired,
			model.StatusRejected, model.StatusWithdrawn,
		} {
			assert.False(t, CanTransition(from, to), "from %s to %s", from, to)
		}
	}
}

func TestCanTransition_unknownStatus(t *testing.T) {
	assert.False(t, CanTransition("pending", model.StatusScreening))
	assert.False(t, CanTransition(model.StatusApplied, "archived"))
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{
		model.StatusApplied, model.StatusScreening, model.StatusInterviewScheduled,
		model.StatusInterviewed, model.StatusOfferSent, model.StatusHired,
		model.StatusRejected, model.StatusWithdrawn,
	} {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("open"))
}

func TestValidStage(t *testing.T) {
	for _, s := range []string{
		model.StageApplicationReceived, model.StageScreening, model.StagePhoneScreen,
		model.StageInterview, model.StageFinalInterview, model.StageOffer,
		model.StageHired, model.StageRejected,
	} {
		assert.True(t, ValidStage(s), s)
	}
	assert.False(t, ValidStage(""))
	assert.False(t, ValidStage(model.StatusWithdrawn))
}
