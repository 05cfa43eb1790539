package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendTurnPreservesOrder(t *testing.T) {
	s := NewSession("s1", LanguageEnglish)

	s.AppendTurn(TurnRoleUser, "first")
	s.AppendTurn(TurnRoleAssistant, "second")
	s.AppendTurn(TurnRoleUser, "third")

	assert.Len(t, s.Conversation, 3)
	assert.Equal(t, "first", s.Conversation[0].Content)
	assert.Equal(t, TurnRoleAssistant, s.Conversation[1].Role)
	assert.Equal(t, "third", s.Conversation[2].Content)
}

func TestUserTurns(t *testing.T) {
	s := NewSession("s1", LanguageEnglish)
	s.AppendTurn(TurnRoleUser, "a")
	s.AppendTurn(TurnRoleAssistant, "b")
	s.AppendTurn(TurnRoleUser, "c")

	users := s.UserTurns()

	assert.Len(t, users, 2)
	assert.Equal(t, "a", users[0].Content)
	assert.Equal(t, "c", users[1].Content)
}

func TestMergeClientInfoMergesNotReplaces(t *testing.T) {
	s := NewSession("s1", LanguageEnglish)

	s.MergeClientInfo(map[string]string{"name": "Maria Garcia"})
	s.MergeClientInfo(map[string]string{"phone": "555-123-4567"})

	assert.Equal(t, "Maria Garcia", s.ClientInfo["name"])
	assert.Equal(t, "555-123-4567", s.ClientInfo["phone"])

	// Later values overwrite the same key, others survive.
	s.MergeClientInfo(map[string]string{"phone": "555-999-0000"})
	assert.Equal(t, "555-999-0000", s.ClientInfo["phone"])
	assert.Equal(t, "Maria Garcia", s.ClientInfo["name"])
}

func TestRecordAgentAppendOnly(t *testing.T) {
	s := NewSession("s1", LanguageSpanish)
	s.RecordAgent("spanish")
	s.RecordAgent("lead_scorer")
	s.RecordAgent("lead_scorer")

	assert.Equal(t, []string{"spanish", "lead_scorer", "lead_scorer"}, s.AgentsUsed)
}

func TestFallbackLeadScoreDefaultsWarm(t *testing.T) {
	score := FallbackLeadScore("not json at all")

	assert.Equal(t, RatingWarm, score.Rating)
	assert.Equal(t, "not json at all", score.Summary)
	assert.Zero(t, score.Score)
}
