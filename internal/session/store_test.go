package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/intake-engine/internal/model"
)

func TestCreateAndAcquire(t *testing.T) {
	st := NewStore()

	s := st.Create(model.LanguageSpanish)
	require.NotEmpty(t, s.ID)
	assert.Equal(t, model.StatusActive, s.Status)

	got, release, ok := st.Acquire(s.ID)
	require.True(t, ok)
	defer release()
	assert.Same(t, s, got)
}

func TestAcquireUnknownID(t *testing.T) {
	st := NewStore()

	_, _, ok := st.Acquire("no-such-session")
	assert.False(t, ok)

	_, ok = st.Get("no-such-session")
	assert.False(t, ok)
}

func TestAcquireSerializesWriters(t *testing.T) {
	st := NewStore()
	s := st.Create(model.LanguageEnglish)

	const writers = 16
	const turnsEach = 25

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < turnsEach; j++ {
				sess, release, ok := st.Acquire(s.ID)
				if !ok {
					return
				}
				sess.AppendTurn(model.TurnRoleUser, "msg")
				release()
			}
		}()
	}
	wg.Wait()

	got, ok := st.Get(s.ID)
	require.True(t, ok)
	assert.Len(t, got.Conversation, writers*turnsEach)
}

func TestStats(t *testing.T) {
	st := NewStore()

	a := st.Create(model.LanguageEnglish)
	b := st.Create(model.LanguageSpanish)
	st.Create(model.LanguageEnglish)

	sess, release, _ := st.Acquire(a.ID)
	sess.Status = model.StatusEscalated
	release()

	sess, release, _ = st.Acquire(b.ID)
	sess.Status = model.StatusCompleted
	sess.LeadScore = &model.LeadScore{Rating: model.RatingHot}
	sess.RecordAgent("intake")
	sess.RecordAgent("lead_scorer")
	sess.RecordAgent("intake")
	release()

	stats := st.Stats()

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Escalated)
	assert.Equal(t, 1, stats.HotLeads)
	assert.Equal(t, 1, stats.ByStatus[model.StatusActive])
	assert.Equal(t, 1, stats.ByRating[model.RatingHot])
	assert.Equal(t, 1, stats.ByLanguage[model.LanguageSpanish])
	assert.Equal(t, []string{"intake", "lead_scorer"}, stats.RolesUsed)
}

func TestResetMintsFreshID(t *testing.T) {
	st := NewStore()
	old := st.Create(model.LanguageSpanish)

	sess, release, _ := st.Acquire(old.ID)
	sess.AppendTurn(model.TurnRoleUser, "hola")
	release()

	fresh, ok := st.Reset(old.ID)
	require.True(t, ok)

	assert.NotEqual(t, old.ID, fresh.ID)
	assert.Equal(t, model.LanguageSpanish, fresh.Language)
	assert.Empty(t, fresh.Conversation)

	// Old session survives for audit.
	kept, ok := st.Get(old.ID)
	require.True(t, ok)
	assert.Len(t, kept.Conversation, 1)
}

func TestResetUnknownID(t *testing.T) {
	st := NewStore()

	_, ok := st.Reset("nope")
	assert.False(t, ok)
}
