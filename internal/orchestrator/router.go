// Package orchestrator ties the intake engine together: the conversation
// router drives the per-turn dialogue loop and the pipeline coordinator
// runs the post-conversation processing stages.
package orchestrator

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/intake-engine/internal/escalation"
	"github.com/sells-group/intake-engine/internal/language"
	"github.com/sells-group/intake-engine/internal/model"
	"github.com/sells-group/intake-engine/internal/role"
	"github.com/sells-group/intake-engine/internal/session"
)

// Fallback replies when the conversational role fails mid-turn. The
// session stays active so the client can simply send another message.
const (
	englishFallbackReply = "I apologize, we're experiencing a technical issue. Please give us a moment and try again, or call our office directly."
	spanishFallbackReply = "Disculpe, estamos teniendo un problema técnico. Por favor, espere un momento e intente de nuevo, o llame directamente a nuestra oficina."
)

// Completion notice returned when a client writes to a finished session.
const (
	englishCompletedReply = "Your intake is complete and our team has your information. Someone will be in touch soon."
	spanishCompletedReply = "Su admisión está completa y nuestro equipo tiene su información. Alguien se pondrá en contacto pronto."
)

// conversational is the shape shared by the language-specific intake roles.
type conversational interface {
	Name() string
	Reply(ctx context.Context, turns []model.Turn) (string, error)
}

// TurnResult is the outcome of one conversational turn.
type TurnResult struct {
	SessionID  string                 `json:"session_id"`
	Reply      string                 `json:"reply"`
	Status     model.Status           `json:"status"`
	Language   model.Language         `json:"language"`
	RoleUsed   string                 `json:"role_used,omitempty"`
	Escalation *model.HandoffDecision `json:"escalation,omitempty"`
}

// ConversationRouter owns the per-turn loop: safety gate, language
// dispatch, contact extraction, and transcript bookkeeping.
type ConversationRouter struct {
	store      *session.Store
	gate       *escalation.Gate
	classifier *language.Classifier
	english    conversational
	spanish    conversational
}

// NewConversationRouter wires the router from its collaborators.
func NewConversationRouter(store *session.Store, gate *escalation.Gate, classifier *language.Classifier, english *role.IntakeRole, spanish *role.SpanishIntakeRole) *ConversationRouter {
	return &ConversationRouter{
		store:      store,
		gate:       gate,
		classifier: classifier,
		english:    english,
		spanish:    spanish,
	}
}

// StartSession classifies the first message's language, creates a session,
// and handles the message as its first turn. The language is fixed for the
// session's lifetime.
func (r *ConversationRouter) StartSession(ctx context.Context, message string) (*TurnResult, error) {
	lang := r.classifier.Classify(message)
	s := r.store.Create(lang)

	zap.L().Info("session started",
		zap.String("session_id", s.ID),
		zap.String("language", string(lang)),
	)

	sess, release, _ := r.store.Acquire(s.ID)
	defer release()
	return r.handleTurn(ctx, sess, message)
}

// ContinueSession handles the next turn of an existing session. An unknown
// session id starts a fresh session from the message instead of failing,
// so a client whose session was lost keeps a working conversation.
func (r *ConversationRouter) ContinueSession(ctx context.Context, id, message string) (*TurnResult, error) {
	sess, release, ok := r.store.Acquire(id)
	if !ok {
		zap.L().Warn("unknown session on continue, starting fresh", zap.String("session_id", id))
		return r.StartSession(ctx, message)
	}
	defer release()
	return r.handleTurn(ctx, sess, message)
}

// handleTurn runs the shared turn logic. Caller holds the session lock.
func (r *ConversationRouter) handleTurn(ctx context.Context, s *model.Session, message string) (*TurnResult, error) {
	// Finished sessions answer with a fixed notice and stay unchanged.
	switch s.Status {
	case model.StatusEscalated:
		reply := calmReply(s)
		return r.result(s, reply), nil
	case model.StatusCompleted, model.StatusProcessing:
		return r.result(s, completedReply(s.Language)), nil
	}

	s.AppendTurn(model.TurnRoleUser, message)
	s.MergeClientInfo(ExtractContact(message))

	// The safety gate runs before any role and pre-empts the turn. Its
	// message goes to the client but is not part of the transcript.
	if decision, triggered := r.gate.Check(message, s.Conversation[:len(s.Conversation)-1]); triggered {
		s.Status = model.StatusEscalated
		s.Handoff = decision

		zap.L().Warn("session escalated",
			zap.String("session_id", s.ID),
			zap.String("reason", decision.Reason),
			zap.Bool("call_911", decision.Call911),
		)
		return r.result(s, decision.ClientMessage), nil
	}

	speaker := r.english
	fallback := englishFallbackReply
	if s.Language == model.LanguageSpanish {
		speaker = r.spanish
		fallback = spanishFallbackReply
	}

	reply, err := speaker.Reply(ctx, s.Conversation)
	if err != nil {
		zap.L().Error("conversational reply failed",
			zap.String("session_id", s.ID),
			zap.String("role", speaker.Name()),
			zap.Error(err),
		)
		reply = fallback
	}

	s.AppendTurn(model.TurnRoleAssistant, reply)
	s.RecordAgent(speaker.Name())

	res := r.result(s, reply)
	res.RoleUsed = speaker.Name()
	return res, nil
}

func (r *ConversationRouter) result(s *model.Session, reply string) *TurnResult {
	return &TurnResult{
		SessionID:  s.ID,
		Reply:      reply,
		Status:     s.Status,
		Language:   s.Language,
		Escalation: s.Handoff,
	}
}

// calmReply repeats the escalation script for an already-escalated session.
func calmReply(s *model.Session) string {
	if s.Handoff != nil && s.Handoff.ClientMessage != "" {
		return s.Handoff.ClientMessage
	}
	return completedReply(s.Language)
}

func completedReply(lang model.Language) string {
	if lang == model.LanguageSpanish {
		return spanishCompletedReply
	}
	return englishCompletedReply
}
