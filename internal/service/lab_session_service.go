package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"virtual-lab-be/internal/dto"
	"virtual-lab-be/internal/entity"
	"virtual-lab-be/internal/lab"
	"virtual-lab-be/internal/pkg/logger"
	"virtual-lab-be/internal/repository/memory"
	"virtual-lab-be/pkg/events"

	"github.com/google/uuid"
)

var ErrLabNotFound = errors.New("lab not found")

// SinkFactory builds the per-user side effect sink, typically backed by
// the WebSocket hub. Sessions created while the user has no socket get
// a no-op sink and still work; they just narrate into the void.
type SinkFactory interface {
	SinkFor(userID uuid.UUID, labID string) lab.Sink
}

// EventPublisher pushes domain events onto the broker for the
// notification worker. Backed by the NATS publisher in production.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// ILabSessionService orchestrates live experiment sessions: one
// controller per user per lab, kept in the in-memory store.
type ILabSessionService interface {
	Catalog(ctx context.Context, userId uuid.UUID) ([]*dto.LabSummary, error)
	Detail(labId string) (*dto.LabDetail, error)

	State(ctx context.Context, userId uuid.UUID, labId string) (*lab.State, error)
	Start(ctx context.Context, userId uuid.UUID, labId string) (*lab.State, error)
	CollectSupply(ctx context.Context, userId uuid.UUID, labId, itemId string) (*lab.State, error)
	ContinueToSetup(ctx context.Context, userId uuid.UUID, labId string) (*lab.State, error)
	SelectSubject(ctx context.Context, userId uuid.UUID, labId, subjectId string) (*lab.State, error)
	PerformAction(ctx context.Context, userId uuid.UUID, labId, actionId string) (*lab.State, error)
	RecordObservation(ctx context.Context, userId uuid.UUID, labId, subjectId string) (*lab.State, error)
	AdvanceToQuiz(ctx context.Context, userId uuid.UUID, labId string) (*lab.State, error)
	SetAnswer(ctx context.Context, userId uuid.UUID, labId string, questionIndex int, optionId string) (*lab.State, error)
	SubmitQuiz(ctx context.Context, userId uuid.UUID, labId string) (*dto.QuizResultResponse, error)
	ResetQuiz(ctx context.Context, userId uuid.UUID, labId string) (*lab.State, error)
	Reset(ctx context.Context, userId uuid.UUID, labId string) (*lab.State, error)
}

type labSessionService struct {
	blueprints        map[string]*lab.Blueprint
	sessions          *memory.SessionRepository
	scheduler         lab.Scheduler
	sinks             SinkFactory
	progress          IProgressService
	eventPublisher    EventPublisher
	activityPublisher IPublisherService
	logger            logger.ILogger
}

func NewLabSessionService(
	blueprints map[string]*lab.Blueprint,
	sessions *memory.SessionRepository,
	scheduler lab.Scheduler,
	sinks SinkFactory,
	progress IProgressService,
	eventPublisher EventPublisher,
	activityPublisher IPublisherService,
	log logger.ILogger,
) ILabSessionService {
	return &labSessionService{
		blueprints:        blueprints,
		sessions:          sessions,
		scheduler:         scheduler,
		sinks:             sinks,
		progress:          progress,
		eventPublisher:    eventPublisher,
		activityPublisher: activityPublisher,
		logger:            log,
	}
}

func (s *labSessionService) Catalog(ctx context.Context, userId uuid.UUID) ([]*dto.LabSummary, error) {
	completed, err := s.progress.CompletedLabs(ctx, userId)
	if err != nil {
		return nil, err
	}

	summaries := make([]*dto.LabSummary, 0, len(s.blueprints))
	for _, bp := range s.blueprints {
		summary := &dto.LabSummary{
			Id:          bp.ID,
			Title:       bp.Title,
			Emoji:       bp.Emoji,
			Description: bp.Description,
		}
		if c, ok := completed[bp.ID]; ok {
			summary.Completed = true
			summary.BestScore = c.BestScore
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *labSessionService) Detail(labId string) (*dto.LabDetail, error) {
	bp, ok := s.blueprints[labId]
	if !ok {
		return nil, ErrLabNotFound
	}

	questions := make([]dto.QuizQuestion, len(bp.Quiz.Questions))
	for i, q := range bp.Quiz.Questions {
		questions[i] = dto.QuizQuestion{
			Index:   q.Index,
			Prompt:  q.Prompt,
			Options: q.Options,
		}
	}

	return &dto.LabDetail{
		Id:              bp.ID,
		Title:           bp.Title,
		Emoji:           bp.Emoji,
		Description:     bp.Description,
		Steps:           bp.Steps,
		Supplies:        bp.Supplies,
		Subjects:        bp.Subjects,
		MinObservations: bp.MinObservations,
		Quiz:            questions,
	}, nil
}

// live returns the running session for user+lab, creating one when
// absent (or expired from the cache).
func (s *labSessionService) live(userId uuid.UUID, labId string) (*memory.LiveSession, error) {
	bp, ok := s.blueprints[labId]
	if !ok {
		return nil, ErrLabNotFound
	}

	if existing, found := s.sessions.Get(userId, labId); found {
		s.sessions.Touch(userId, labId)
		return existing, nil
	}

	sess := lab.NewSession(userId, labId)
	sink := lab.Sink(lab.NopSink{})
	if s.sinks != nil {
		sink = s.sinks.SinkFor(userId, labId)
	}
	created := &memory.LiveSession{
		Session:    sess,
		Controller: lab.NewController(bp, sess, sink, s.scheduler),
	}
	s.sessions.Save(userId, labId, created)
	return created, nil
}

func (s *labSessionService) State(ctx context.Context, userId uuid.UUID, labId string) (*lab.State, error) {
	live, err := s.live(userId, labId)
	if err != nil {
		return nil, err
	}
	state := live.Controller.State()
	return &state, nil
}

func (s *labSessionService) Start(ctx context.Context, userId uuid.UUID, labId string) (*lab.State, error) {
	live, err := s.live(userId, labId)
	if err != nil {
		return nil, err
	}
	if err := live.Controller.Start(); err != nil {
		return nil, err
	}
	s.publishActivity(ctx, userId, labId, entity.ActivityLabStarted, "Started the experiment", nil)
	state := live.Controller.State()
	return &state, nil
}

func (s *labSessionService) CollectSupply(ctx context.Context, userId uuid.UUID, labId, itemId string) (*lab.State, error) {
	return s.do(userId, labId, func(c *lab.Controller) error {
		return c.CollectSupply(itemId)
	})
}

func (s *labSessionService) ContinueToSetup(ctx context.Context, userId uuid.UUID, labId string) (*lab.State, error) {
	return s.do(userId, labId, func(c *lab.Controller) error {
		return c.ContinueToSetup()
	})
}

func (s *labSessionService) SelectSubject(ctx context.Context, userId uuid.UUID, labId, subjectId string) (*lab.State, error) {
	return s.do(userId, labId, func(c *lab.Controller) error {
		return c.SelectSubject(subjectId)
	})
}

func (s *labSessionService) PerformAction(ctx context.Context, userId uuid.UUID, labId, actionId string) (*lab.State, error) {
	return s.do(userId, labId, func(c *lab.Controller) error {
		return c.PerformAction(actionId)
	})
}

func (s *labSessionService) RecordObservation(ctx context.Context, userId uuid.UUID, labId, subjectId string) (*lab.State, error) {
	return s.do(userId, labId, func(c *lab.Controller) error {
		return c.RecordObservation(subjectId)
	})
}

func (s *labSessionService) AdvanceToQuiz(ctx context.Context, userId uuid.UUID, labId string) (*lab.State, error) {
	return s.do(userId, labId, func(c *lab.Controller) error {
		return c.AdvanceToQuiz()
	})
}

func (s *labSessionService) SetAnswer(ctx context.Context, userId uuid.UUID, labId string, questionIndex int, optionId string) (*lab.State, error) {
	return s.do(userId, labId, func(c *lab.Controller) error {
		return c.SetAnswer(questionIndex, optionId)
	})
}

// SubmitQuiz evaluates the quiz and, on the first passing submission,
// records the completion and awards XP exactly once. Re-submitting a
// passed quiz returns the frozen result with no further side effects.
func (s *labSessionService) SubmitQuiz(ctx context.Context, userId uuid.UUID, labId string) (*dto.QuizResultResponse, error) {
	live, err := s.live(userId, labId)
	if err != nil {
		return nil, err
	}

	wasComplete := live.Session.Completed()
	res, err := live.Controller.SubmitQuiz()
	if err != nil {
		return nil, err
	}

	response := &dto.QuizResultResponse{
		CorrectCount:   res.CorrectCount,
		TotalQuestions: res.TotalQuestions,
		AttemptNumber:  res.AttemptNumber,
		IsFullyCorrect: res.IsFullyCorrect,
		Score:          res.Score,
		Tier:           string(res.Tier),
		CorrectAnswers: res.CorrectAnswers,
	}

	if res.IsFullyCorrect && !wasComplete {
		xp, first, perr := s.progress.MarkLabCompleted(ctx, userId, labId, res.Score, live.Session.ElapsedSeconds())
		if perr != nil {
			// The run is complete either way; report but don't unwind it.
			s.logger.Error("LabSessionService", "Failed to record completion", map[string]interface{}{
				"error": perr, "user_id": userId, "lab_id": labId,
			})
		} else {
			response.XPEarned = xp
			s.publishCompletionEvents(ctx, userId, labId, res, xp)
			detail := fmt.Sprintf("Completed the lab with score %d", res.Score)
			if first {
				detail = fmt.Sprintf("Completed the lab for the first time with score %d", res.Score)
			}
			s.publishActivity(ctx, userId, labId, entity.ActivityLabCompleted, detail, map[string]interface{}{
				"score": res.Score,
				"xp":    xp,
			})
		}
	}

	return response, nil
}

func (s *labSessionService) ResetQuiz(ctx context.Context, userId uuid.UUID, labId string) (*lab.State, error) {
	return s.do(userId, labId, func(c *lab.Controller) error {
		return c.ResetQuiz()
	})
}

// Reset restarts the experiment. The persisted completion record stays
// untouched; only the live session state is cleared.
func (s *labSessionService) Reset(ctx context.Context, userId uuid.UUID, labId string) (*lab.State, error) {
	live, err := s.live(userId, labId)
	if err != nil {
		return nil, err
	}
	live.Controller.Reset()
	s.publishActivity(ctx, userId, labId, entity.ActivityLabReset, "Reset the experiment", nil)
	state := live.Controller.State()
	return &state, nil
}

func (s *labSessionService) do(userId uuid.UUID, labId string, fn func(*lab.Controller) error) (*lab.State, error) {
	live, err := s.live(userId, labId)
	if err != nil {
		return nil, err
	}
	if err := fn(live.Controller); err != nil {
		return nil, err
	}
	state := live.Controller.State()
	return &state, nil
}

// publishCompletionEvents emits the broker events for a first-pass
// completion: the quiz pass, the lab completion, and the XP grant when
// anything was earned.
func (s *labSessionService) publishCompletionEvents(ctx context.Context, userId uuid.UUID, labId string, res lab.QuizResult, xp int) {
	if s.eventPublisher == nil {
		return
	}
	title := labId
	if bp, ok := s.blueprints[labId]; ok {
		title = bp.Title
	}

	s.publishEvent(ctx, events.NewQuizPassed(userId.String(), labId, title, res.AttemptNumber))
	s.publishEvent(ctx, events.NewLabCompleted(userId.String(), labId, title, res.Score, xp))

	if xp > 0 {
		totalXP := xp
		if prog, err := s.progress.Progress(ctx, userId, len(s.blueprints)); err == nil {
			totalXP = prog.TotalXP
		}
		s.publishEvent(ctx, events.NewXPAwarded(userId.String(), labId, xp, totalXP))
	}
}

func (s *labSessionService) publishEvent(ctx context.Context, evt events.Event) {
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("LabSessionService", "Failed to publish event", map[string]interface{}{
			"error": err, "type": evt.EventType(),
		})
	}
}

func (s *labSessionService) publishActivity(ctx context.Context, userId uuid.UUID, labId string, kind entity.ActivityKind, detail string, meta map[string]interface{}) {
	if s.activityPublisher == nil {
		return
	}
	msg := dto.ActivityMessage{
		UserId:     userId,
		LabId:      labId,
		Kind:       string(kind),
		Detail:     detail,
		Metadata:   meta,
		OccurredAt: time.Now(),
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		return
	}
	_ = s.activityPublisher.Publish(ctx, raw)
}
