package orchestrator

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/intake-engine/internal/lawdata"
	"github.com/sells-group/intake-engine/internal/model"
)

const (
	hotScoreJSON = `{"score": 92, "rating": "HOT", "case_type": "Commercial Trucking Accident",
		"key_factors": ["commercial defendant", "serious injuries"], "urgency": "same_day",
		"estimated_value": "$500k+", "summary": "Rear-ended by a semi, hospitalized."}`
	coldScoreJSON = `{"score": 15, "rating": "COLD", "case_type": "General Inquiry",
		"summary": "No injury described."}`
	researchJSON  = `{"research_summary": "Clear negligence claim against the carrier."}`
	followUpJSON  = `{"message_type": "sms", "body": "Hi, checking in after our conversation.", "follow_up_if_no_response": 1}`
	documentsJSON = `{"documents_requested": [{"item": "Police report", "priority": "critical"}],
		"message_to_client": "Please gather the police report.", "follow_up_in_days": 3}`
)

// startActiveSession seeds a session with one exchange, ready to complete.
func startActiveSession(t *testing.T, eng *testEngine, client *mockClient) string {
	t.Helper()
	client.On("CreateMessage", mock.Anything, mock.Anything).
		Return(textResponse("I'm sorry to hear that. Can you tell me more?"), nil).Once()

	res, err := eng.router.StartSession(context.Background(), "A semi truck rear-ended me, I was in the hospital")
	require.NoError(t, err)
	require.Equal(t, model.StatusActive, res.Status)
	return res.SessionID
}

func TestCompleteRunsAllStagesForHotLead(t *testing.T) {
	client := new(mockClient)
	eng := newTestEngine(client)
	id := startActiveSession(t, eng, client)

	// Pipeline generation calls in stage order.
	client.On("CreateMessage", mock.Anything, mock.Anything).Return(textResponse(hotScoreJSON), nil).Once()
	client.On("CreateMessage", mock.Anything, mock.Anything).Return(textResponse(researchJSON), nil).Once()
	client.On("CreateMessage", mock.Anything, mock.Anything).Return(textResponse(followUpJSON), nil).Once()
	client.On("CreateMessage", mock.Anything, mock.Anything).Return(textResponse(documentsJSON), nil).Once()

	result, err := eng.coordinator.Complete(context.Background(), id, "")

	require.NoError(t, err)
	assert.Equal(t, model.RatingHot, result.LeadScore.Rating)

	// Priority routing to the senior partner.
	assert.Equal(t, model.EscalationPriority, result.Handoff.EscalationType)
	require.NotNil(t, result.Handoff.RouteTo)
	assert.Equal(t, lawdata.RoleSeniorPartner, result.Handoff.RouteTo.Role)

	// Hot cadence and a drafted first message.
	require.Len(t, result.FollowUpSequence, 4)
	assert.Equal(t, model.ChannelSMS, result.FollowUpSequence[0].Channel)
	require.NotNil(t, result.FirstFollowUp)
	assert.Equal(t, "sms", result.FirstFollowUp.MessageType)

	// Research carries the deterministic statute row.
	require.NotNil(t, result.Research.StatuteOfLimitations)
	assert.Equal(t, "2 years", result.Research.StatuteOfLimitations.Deadline)

	// Hot leads get scheduling.
	require.NotNil(t, result.Scheduling)
	assert.NotEmpty(t, result.Scheduling.Slots)
	assert.Equal(t, "Senior Partner", result.Scheduling.Slots[0].Attorney)

	require.NotNil(t, result.Documents)
	assert.Len(t, result.Documents.Documents, 1)

	// Every stage ran to completion.
	require.Len(t, result.Stages, 6)
	for _, stage := range result.Stages {
		assert.Equal(t, StageComplete, stage.Status, stage.Stage)
	}

	// The case package includes the rendered summaries.
	assert.Contains(t, result.Summary, "HOT")
	assert.Contains(t, result.HandoffSummary, "CASE HANDOFF")

	s, _ := eng.store.Get(id)
	assert.Equal(t, model.StatusCompleted, s.Status)
	assert.NotNil(t, s.LeadScore)
	assert.NotNil(t, s.Handoff)
	client.AssertExpectations(t)
}

func TestCompleteSkipsSchedulingForColdLead(t *testing.T) {
	client := new(mockClient)
	eng := newTestEngine(client)
	id := startActiveSession(t, eng, client)

	client.On("CreateMessage", mock.Anything, mock.Anything).Return(textResponse(coldScoreJSON), nil).Once()
	client.On("CreateMessage", mock.Anything, mock.Anything).Return(textResponse(researchJSON), nil).Once()
	client.On("CreateMessage", mock.Anything, mock.Anything).Return(textResponse(followUpJSON), nil).Once()
	client.On("CreateMessage", mock.Anything, mock.Anything).Return(textResponse(documentsJSON), nil).Once()

	result, err := eng.coordinator.Complete(context.Background(), id, "")

	require.NoError(t, err)
	assert.Equal(t, model.RatingCold, result.LeadScore.Rating)
	assert.False(t, result.Handoff.EscalationNeeded)
	assert.Nil(t, result.Scheduling)

	// Cold cadence is the two-email sequence.
	require.Len(t, result.FollowUpSequence, 2)

	last := result.Stages[len(result.Stages)-1]
	assert.Equal(t, StageScheduling, last.Stage)
	assert.Equal(t, StageSkipped, last.Status)
}

func TestCompleteDegradesOnUnparseableScore(t *testing.T) {
	client := new(mockClient)
	eng := newTestEngine(client)
	id := startActiveSession(t, eng, client)

	client.On("CreateMessage", mock.Anything, mock.Anything).Return(textResponse("Looks like a decent case."), nil).Once()
	client.On("CreateMessage", mock.Anything, mock.Anything).Return(textResponse(researchJSON), nil).Once()
	client.On("CreateMessage", mock.Anything, mock.Anything).Return(textResponse(followUpJSON), nil).Once()
	client.On("CreateMessage", mock.Anything, mock.Anything).Return(textResponse(documentsJSON), nil).Once()

	result, err := eng.coordinator.Complete(context.Background(), id, "")

	require.NoError(t, err)
	// Degraded scoring assumes a warm lead downstream.
	assert.Equal(t, model.RatingWarm, result.LeadScore.Rating)
	assert.Equal(t, "Looks like a decent case.", result.LeadScore.Summary)
	assert.Equal(t, StageDegraded, result.Stages[0].Status)

	// Warm leads route to the intake coordinator, no scheduling.
	require.NotNil(t, result.Handoff.RouteTo)
	assert.Equal(t, lawdata.RoleIntakeCoordinator, result.Handoff.RouteTo.Role)
	assert.Nil(t, result.Scheduling)

	s, _ := eng.store.Get(id)
	assert.Equal(t, model.StatusCompleted, s.Status)
}

func TestCompleteUnknownSessionFailsWithoutMutation(t *testing.T) {
	client := new(mockClient)
	eng := newTestEngine(client)

	_, err := eng.coordinator.Complete(context.Background(), "missing", "")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownSession)
	assert.Equal(t, 0, eng.store.Stats().Total)
	client.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything)
}

func TestCompleteRejectsEscalatedSession(t *testing.T) {
	client := new(mockClient)
	eng := newTestEngine(client)

	res, err := eng.router.StartSession(context.Background(), "my child is in danger right now")
	require.NoError(t, err)
	require.Equal(t, model.StatusEscalated, res.Status)

	_, err = eng.coordinator.Complete(context.Background(), res.SessionID, "")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSessionEscalated)

	s, _ := eng.store.Get(res.SessionID)
	assert.Equal(t, model.StatusEscalated, s.Status)
	assert.Nil(t, s.LeadScore)
}

func TestCompleteRerunOverwritesPriorCasePackage(t *testing.T) {
	client := new(mockClient)
	eng := newTestEngine(client)
	id := startActiveSession(t, eng, client)

	// First run scores the lead cold.
	client.On("CreateMessage", mock.Anything, mock.Anything).Return(textResponse(coldScoreJSON), nil).Once()
	client.On("CreateMessage", mock.Anything, mock.Anything).Return(textResponse(researchJSON), nil).Once()
	client.On("CreateMessage", mock.Anything, mock.Anything).Return(textResponse(followUpJSON), nil).Once()
	client.On("CreateMessage", mock.Anything, mock.Anything).Return(textResponse(documentsJSON), nil).Once()

	first, err := eng.coordinator.Complete(context.Background(), id, "")
	require.NoError(t, err)
	require.Equal(t, model.RatingCold, first.LeadScore.Rating)

	s, _ := eng.store.Get(id)
	require.Equal(t, model.StatusCompleted, s.Status)

	// A second run on the completed session overwrites every stage result.
	client.On("CreateMessage", mock.Anything, mock.Anything).Return(textResponse(hotScoreJSON), nil).Once()
	client.On("CreateMessage", mock.Anything, mock.Anything).Return(textResponse(researchJSON), nil).Once()
	client.On("CreateMessage", mock.Anything, mock.Anything).Return(textResponse(followUpJSON), nil).Once()
	client.On("CreateMessage", mock.Anything, mock.Anything).Return(textResponse(documentsJSON), nil).Once()

	second, err := eng.coordinator.Complete(context.Background(), id, "")

	require.NoError(t, err)
	assert.Equal(t, model.RatingHot, second.LeadScore.Rating)
	require.NotNil(t, second.Handoff.RouteTo)
	assert.Equal(t, lawdata.RoleSeniorPartner, second.Handoff.RouteTo.Role)
	require.Len(t, second.FollowUpSequence, 4)

	s, _ = eng.store.Get(id)
	assert.Equal(t, model.StatusCompleted, s.Status)
	require.NotNil(t, s.LeadScore)
	assert.Equal(t, model.RatingHot, s.LeadScore.Rating)
	client.AssertExpectations(t)
}

func TestCompleteFallsBackWhenDraftingFails(t *testing.T) {
	client := new(mockClient)
	eng := newTestEngine(client)
	id := startActiveSession(t, eng, client)

	client.On("CreateMessage", mock.Anything, mock.Anything).Return(textResponse(hotScoreJSON), nil).Once()
	client.On("CreateMessage", mock.Anything, mock.Anything).Return(textResponse(researchJSON), nil).Once()
	client.On("CreateMessage", mock.Anything, mock.Anything).Return(nil, eris.New("api unavailable")).Twice()

	result, err := eng.coordinator.Complete(context.Background(), id, "")

	require.NoError(t, err)

	// The cadence still stands and the draft slot carries the error.
	require.Len(t, result.FollowUpSequence, 4)
	require.NotNil(t, result.FirstFollowUp)
	assert.Equal(t, string(model.ChannelSMS), result.FirstFollowUp.MessageType)
	assert.Contains(t, result.FirstFollowUp.Body, "follow-up draft failed")

	require.NotNil(t, result.Documents)
	assert.Contains(t, result.Documents.ClientMessage, "document request failed")

	s, _ := eng.store.Get(id)
	require.NotNil(t, s.Documents.Requested)
	assert.Contains(t, s.Documents.Requested.ClientMessage, "document request failed")
	assert.Equal(t, model.StatusCompleted, s.Status)

	for _, stage := range result.Stages {
		switch stage.Stage {
		case StageFollowUp, StageDocuments:
			assert.Equal(t, StageFailed, stage.Status)
		}
	}
}

func TestBookRecordsAppointmentOnSession(t *testing.T) {
	client := new(mockClient)
	eng := newTestEngine(client)
	id := startActiveSession(t, eng, client)

	client.On("CreateMessage", mock.Anything, mock.Anything).Return(textResponse(hotScoreJSON), nil).Once()
	client.On("CreateMessage", mock.Anything, mock.Anything).Return(textResponse(researchJSON), nil).Once()
	client.On("CreateMessage", mock.Anything, mock.Anything).Return(textResponse(followUpJSON), nil).Once()
	client.On("CreateMessage", mock.Anything, mock.Anything).Return(textResponse(documentsJSON), nil).Once()

	result, err := eng.coordinator.Complete(context.Background(), id, "")
	require.NoError(t, err)
	require.NotNil(t, result.Scheduling)
	require.NotEmpty(t, result.Scheduling.Slots)

	slot := result.Scheduling.Slots[0]
	appt, err := eng.coordinator.Book(id, slot)

	require.NoError(t, err)
	assert.Equal(t, slot.Date, appt.Date)
	assert.Equal(t, slot.Time, appt.Time)
	assert.Equal(t, "confirmed", appt.Status)
	assert.Equal(t, "Commercial Trucking Accident", appt.CaseType)

	s, _ := eng.store.Get(id)
	require.Len(t, s.Appointments, 1)
	assert.Contains(t, HandoffSummary(s), appt.Date)

	_, err = eng.coordinator.Book("missing", slot)
	assert.ErrorIs(t, err, ErrUnknownSession)
}

func TestSessionSummaryCountsClientTurns(t *testing.T) {
	s := model.NewSession("s1", model.LanguageEnglish)
	s.AppendTurn(model.TurnRoleUser, "A truck hit me")
	s.AppendTurn(model.TurnRoleAssistant, "I'm sorry to hear that.")
	s.AppendTurn(model.TurnRoleUser, "It was last Tuesday")

	out := SessionSummary(s)

	assert.Contains(t, out, "Turns:      3 (2 from client)")
}

func TestHandoffSummaryRendersCasePackage(t *testing.T) {
	s := model.NewSession("s1", model.LanguageEnglish)
	s.AppendTurn(model.TurnRoleUser, "A truck hit me")
	s.MergeClientInfo(map[string]string{"name": "Maria Garcia", "phone": "555-123-4567"})
	s.LeadScore = &model.LeadScore{Score: 92, Rating: model.RatingHot, CaseType: "Trucking", Summary: "Serious collision."}
	s.Handoff = &model.HandoffDecision{
		EscalationType: model.EscalationPriority,
		Urgency:        model.UrgencySameDay,
		Reason:         "High-value case",
		RouteTo:        &model.RouteTo{Role: "senior_partner", Name: "Senior Partner"},
	}

	out := HandoffSummary(s)

	assert.Contains(t, out, "CASE HANDOFF")
	assert.Contains(t, out, "priority")
	assert.Contains(t, out, "Senior Partner")
	assert.Contains(t, out, "Maria Garcia")
	assert.Contains(t, out, "A truck hit me")
}
