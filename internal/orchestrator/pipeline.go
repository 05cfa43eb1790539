package orchestrator

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/intake-engine/internal/model"
	"github.com/sells-group/intake-engine/internal/role"
	"github.com/sells-group/intake-engine/internal/session"
)

// Pipeline preconditions.
var (
	ErrUnknownSession   = eris.New("orchestrator: unknown session")
	ErrSessionEscalated = eris.New("orchestrator: session is escalated")
)

// Pipeline stage names, in execution order.
const (
	StageLeadScoring = "lead_scoring"
	StageResearch    = "legal_research"
	StageRouting     = "routing"
	StageFollowUp    = "follow_up"
	StageDocuments   = "documents"
	StageScheduling  = "scheduling"
)

// Stage outcome labels.
const (
	StageComplete = "complete"
	StageDegraded = "degraded"
	StageFailed   = "failed"
	StageSkipped  = "skipped"
)

// StageResult records how one pipeline stage ended.
type StageResult struct {
	Stage   string        `json:"stage"`
	Status  string        `json:"status"`
	Elapsed time.Duration `json:"elapsed"`
	Error   string        `json:"error,omitempty"`
}

// IntakeResult is the full case package produced by Complete.
type IntakeResult struct {
	SessionID        string                      `json:"session_id"`
	LeadScore        model.LeadScore             `json:"lead_score"`
	Research         model.Research              `json:"research"`
	Handoff          model.HandoffDecision       `json:"handoff"`
	FollowUpSequence []model.FollowUpStep        `json:"follow_up_sequence"`
	FirstFollowUp    *model.FollowUpMessage      `json:"first_follow_up,omitempty"`
	Documents        *model.DocumentRequest      `json:"documents,omitempty"`
	Scheduling       *model.SchedulingSuggestion `json:"scheduling,omitempty"`
	Stages           []StageResult               `json:"stages"`
	Summary          string                      `json:"summary"`
	HandoffSummary   string                      `json:"handoff_summary"`
}

// PipelineCoordinator runs the post-conversation stages in order. Stages
// degrade rather than abort: a failed generation or unparseable output
// leaves a fallback value in place and the pipeline continues, so one bad
// stage never loses the lead.
type PipelineCoordinator struct {
	store      *session.Store
	scorer     *role.Scorer
	researcher *role.Researcher
	router     *role.HandoffRouter
	planner    *role.FollowUpPlanner
	clerk      *role.DocumentClerk
	scheduler  *role.Scheduler
}

// NewPipelineCoordinator wires the coordinator from its stage roles.
func NewPipelineCoordinator(store *session.Store, scorer *role.Scorer, researcher *role.Researcher, router *role.HandoffRouter, planner *role.FollowUpPlanner, clerk *role.DocumentClerk, scheduler *role.Scheduler) *PipelineCoordinator {
	return &PipelineCoordinator{
		store:      store,
		scorer:     scorer,
		researcher: researcher,
		router:     router,
		planner:    planner,
		clerk:      clerk,
		scheduler:  scheduler,
	}
}

// Complete runs the six-stage pipeline over a finished conversation. An
// empty jurisdiction falls back to the configured default. The session
// must exist and must not be escalated; escalation is terminal. Running
// Complete on an already-completed session re-runs every stage and
// overwrites the prior case package.
func (p *PipelineCoordinator) Complete(ctx context.Context, id, jurisdiction string) (*IntakeResult, error) {
	s, release, ok := p.store.Acquire(id)
	if !ok {
		return nil, ErrUnknownSession
	}
	defer release()

	if s.Status == model.StatusEscalated {
		return nil, eris.Wrapf(ErrSessionEscalated, "session %s", s.ID)
	}
	s.Status = model.StatusProcessing

	result := &IntakeResult{SessionID: s.ID}
	tracker := newStageTracker(s.ID)

	// Stage 1: lead scoring. Everything downstream keys off the rating.
	score := p.runScoring(ctx, s, tracker)
	result.LeadScore = score

	// Stage 2: legal research.
	result.Research = p.runResearch(ctx, s, score, jurisdiction, tracker)

	// Stage 3: routing. Deterministic, cannot degrade.
	tracker.run(StageRouting, func() (string, error) {
		d := p.router.DetermineRouting(score)
		s.Handoff = &d
		s.RecordAgent(p.router.Name())
		result.Handoff = d
		return StageComplete, nil
	})

	// Stage 4: follow-up cadence and first draft.
	p.runFollowUp(ctx, s, score, result, tracker)

	// Stage 5: document checklist.
	p.runDocuments(ctx, s, score, result, tracker)

	// Stage 6: scheduling, offered to hot leads only.
	if score.Rating == model.RatingHot {
		tracker.run(StageScheduling, func() (string, error) {
			attorney := ""
			if result.Handoff.RouteTo != nil {
				attorney = result.Handoff.RouteTo.Name
			}
			suggestion := p.scheduler.SuggestTimes(attorney)
			s.RecordAgent(p.scheduler.Name())
			result.Scheduling = &suggestion
			return StageComplete, nil
		})
	} else {
		tracker.skip(StageScheduling)
	}

	s.Status = model.StatusCompleted
	result.Stages = tracker.results
	result.Summary = SessionSummary(s)
	result.HandoffSummary = HandoffSummary(s)

	zap.L().Info("intake pipeline complete",
		zap.String("session_id", s.ID),
		zap.String("rating", string(score.Rating)),
		zap.String("escalation", string(result.Handoff.EscalationType)),
	)
	return result, nil
}

// Book confirms a consultation in the chosen slot and records the
// appointment on the session. Escalated sessions cannot book.
func (p *PipelineCoordinator) Book(id string, slot model.TimeSlot) (*model.Appointment, error) {
	s, release, ok := p.store.Acquire(id)
	if !ok {
		return nil, ErrUnknownSession
	}
	defer release()

	if s.Status == model.StatusEscalated {
		return nil, eris.Wrapf(ErrSessionEscalated, "session %s", s.ID)
	}

	caseType := ""
	if s.LeadScore != nil {
		caseType = s.LeadScore.CaseType
	}
	appt := p.scheduler.Book(slot, s, caseType)
	s.Appointments = append(s.Appointments, appt)
	s.RecordAgent(p.scheduler.Name())

	zap.L().Info("consultation booked",
		zap.String("session_id", s.ID),
		zap.String("date", appt.Date),
		zap.String("time", appt.Time),
		zap.String("attorney", appt.Attorney),
	)
	return &appt, nil
}

func (p *PipelineCoordinator) runScoring(ctx context.Context, s *model.Session, tracker *stageTracker) model.LeadScore {
	var score model.LeadScore
	tracker.run(StageLeadScoring, func() (string, error) {
		out, err := p.scorer.Score(ctx, s)
		s.RecordAgent(p.scorer.Name())
		if err != nil {
			score = model.FallbackLeadScore("scoring failed: " + err.Error())
			s.LeadScore = &score
			return StageFailed, err
		}
		if !out.Ok() {
			score = model.FallbackLeadScore(out.Raw)
			s.LeadScore = &score
			return StageDegraded, nil
		}
		score = *out.Structured
		s.LeadScore = &score
		return StageComplete, nil
	})
	return score
}

func (p *PipelineCoordinator) runResearch(ctx context.Context, s *model.Session, score model.LeadScore, jurisdiction string, tracker *stageTracker) model.Research {
	var research model.Research
	tracker.run(StageResearch, func() (string, error) {
		out, sol, err := p.researcher.Research(ctx, s, score, jurisdiction)
		s.RecordAgent(p.researcher.Name())
		if err != nil {
			research = model.FallbackResearch("research failed: " + err.Error())
			research.StatuteOfLimitations = &sol
			s.Research = &research
			return StageFailed, err
		}
		if !out.Ok() {
			research = model.FallbackResearch(out.Raw)
			research.StatuteOfLimitations = &sol
			s.Research = &research
			return StageDegraded, nil
		}
		research = *out.Structured
		s.Research = &research
		return StageComplete, nil
	})
	return research
}

func (p *PipelineCoordinator) runFollowUp(ctx context.Context, s *model.Session, score model.LeadScore, result *IntakeResult, tracker *stageTracker) {
	tracker.run(StageFollowUp, func() (string, error) {
		steps := p.planner.Sequence(score.Rating)
		s.FollowUpSequence = steps
		result.FollowUpSequence = steps
		s.RecordAgent(p.planner.Name())

		out, err := p.planner.DraftFirst(ctx, s, score, steps[0])
		if err != nil {
			msg := model.FallbackFollowUpMessage("follow-up draft failed: "+err.Error(), steps[0].Channel)
			result.FirstFollowUp = &msg
			return StageFailed, err
		}
		if !out.Ok() {
			msg := model.FallbackFollowUpMessage(out.Raw, steps[0].Channel)
			result.FirstFollowUp = &msg
			return StageDegraded, nil
		}
		result.FirstFollowUp = out.Structured
		return StageComplete, nil
	})
}

func (p *PipelineCoordinator) runDocuments(ctx context.Context, s *model.Session, score model.LeadScore, result *IntakeResult, tracker *stageTracker) {
	tracker.run(StageDocuments, func() (string, error) {
		out, err := p.clerk.Request(ctx, s, score)
		s.RecordAgent(p.clerk.Name())
		if err != nil {
			req := model.FallbackDocumentRequest("document request failed: " + err.Error())
			s.Documents.Requested = &req
			result.Documents = &req
			return StageFailed, err
		}

		var req model.DocumentRequest
		status := StageComplete
		if out.Ok() {
			req = *out.Structured
		} else {
			req = model.FallbackDocumentRequest(out.Raw)
			status = StageDegraded
		}
		s.Documents.Requested = &req
		result.Documents = &req
		return status, nil
	})
}

// stageTracker records per-stage outcomes and timing.
type stageTracker struct {
	sessionID string
	results   []StageResult
}

func newStageTracker(sessionID string) *stageTracker {
	return &stageTracker{sessionID: sessionID}
}

func (t *stageTracker) run(stage string, fn func() (string, error)) {
	zap.L().Info("pipeline stage starting",
		zap.String("session_id", t.sessionID),
		zap.String("stage", stage),
	)

	start := time.Now()
	status, err := fn()
	elapsed := time.Since(start)

	res := StageResult{Stage: stage, Status: status, Elapsed: elapsed}
	if err != nil {
		res.Error = err.Error()
		zap.L().Warn("pipeline stage degraded",
			zap.String("session_id", t.sessionID),
			zap.String("stage", stage),
			zap.String("status", status),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
	} else {
		zap.L().Info("pipeline stage finished",
			zap.String("session_id", t.sessionID),
			zap.String("stage", stage),
			zap.String("status", status),
			zap.Duration("elapsed", elapsed),
		)
	}
	t.results = append(t.results, res)
}

func (t *stageTracker) skip(stage string) {
	zap.L().Info("pipeline stage skipped",
		zap.String("session_id", t.sessionID),
		zap.String("stage", stage),
	)
	t.results = append(t.results, StageResult{Stage: stage, Status: StageSkipped})
}
