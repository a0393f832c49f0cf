package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"rental_coach_backend/internal/model"
	"rental_coach_backend/internal/repository"
	"rental_coach_backend/internal/util"
	"rental_coach_backend/pkg/logger"
	"rental_coach_backend/pkg/monitoring"
	"rental_coach_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type ChatService struct {
	listings     repository.ListingRepository
	redFlags     *repository.RedFlagRepository
	llm          LanguageModel
	matcher      *QuestionMatcher
	tracker      *ProgressTracker
	historyTurns int
	timeout      time.Duration
}

func NewChatService(
	listings repository.ListingRepository,
	redFlags *repository.RedFlagRepository,
	llm LanguageModel,
	matcher *QuestionMatcher,
	tracker *ProgressTracker,
	historyTurns int,
	timeout time.Duration,
) *ChatService {
	return &ChatService{
		listings:     listings,
		redFlags:     redFlags,
		llm:          llm,
		matcher:      matcher,
		tracker:      tracker,
		historyTurns: historyTurns,
		timeout:      timeout,
	}
}

// Turn 处理一轮对话：先取房东回复，成功后再做问题匹配和记录。
// 模型调用失败时不改动已问/遗漏集合。
func (s *ChatService) Turn(ctx context.Context, key model.ConversationKey, message string) (*model.TurnResult, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, util.ErrEmptyMessage
	}

	ctx, span := tracing.Tracer.Start(ctx, "chat.turn")
	defer span.End()
	span.SetAttributes(attribute.Int("listing.id", key.ListingID))

	listing, err := s.listings.Get(ctx, key.ListingID)
	if err != nil {
		if errors.Is(err, util.ErrListingNotFound) {
			monitoring.ChatTurns.WithLabelValues("unknown_listing").Inc()
			return s.failure(key, fmt.Errorf("listing %d not found", key.ListingID)), nil
		}
		return nil, err
	}

	prompt, err := BuildPersonaPrompt(listing)
	if err != nil {
		return nil, err
	}

	reply, err := s.reply(ctx, key, prompt, message)
	if err != nil {
		logger.Log.Warn("language model failed",
			zap.String("provider", s.llm.Name()),
			zap.String("conversation", key.String()),
			zap.Error(err))
		span.RecordError(err)
		monitoring.ChatTurns.WithLabelValues("failed").Inc()
		return s.failure(key, err), nil
	}

	s.recordMatches(ctx, key, message)
	s.tracker.AppendTurn(key, model.Turn{User: message, Landlord: reply, At: time.Now()})
	monitoring.ChatTurns.WithLabelValues("ok").Inc()

	return &model.TurnResult{
		Response:        reply,
		MissedQuestions: s.tracker.Missed(key),
	}, nil
}

func (s *ChatService) reply(ctx context.Context, key model.ConversationKey, prompt, message string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	history := s.tracker.Transcript(key)
	if s.historyTurns >= 0 && len(history) > s.historyTurns {
		history = history[len(history)-s.historyTurns:]
	}

	start := time.Now()
	reply, err := s.llm.Reply(ctx, ReplyRequest{
		SystemPrompt: prompt,
		History:      history,
		Message:      message,
	})
	monitoring.LanguageModelLatency.WithLabelValues(s.llm.Name()).Observe(time.Since(start).Seconds())
	return reply, err
}

// recordMatches 匹配失败只记日志，本轮不更新已问集合
func (s *ChatService) recordMatches(ctx context.Context, key model.ConversationKey, message string) {
	res, err := s.matcher.Match(ctx, message)
	if err != nil {
		logger.Log.Warn("question matching failed", zap.String("conversation", key.String()), zap.Error(err))
		return
	}
	s.tracker.RecordTurn(key, res.Matched)
	for _, q := range res.Matched {
		monitoring.GoodQuestionsMatched.WithLabelValues(q).Inc()
	}
	logger.Log.Debug("turn matched",
		zap.String("conversation", key.String()),
		zap.Strings("matched", res.Matched),
		zap.Any("scores", res.Scores))
}

func (s *ChatService) failure(key model.ConversationKey, err error) *model.TurnResult {
	return &model.TurnResult{
		Response:        "Error: " + err.Error(),
		Failed:          true,
		GoodQuestions:   s.tracker.Asked(key),
		MissedQuestions: s.tracker.Missed(key),
		RedFlags:        s.redFlags.For(key.ListingID),
	}
}

func (s *ChatService) Summary(key model.ConversationKey) model.Feedback {
	missed := s.tracker.Missed(key)
	total := len(s.tracker.Questions())
	return model.Feedback{
		GoodQuestions:   s.tracker.Asked(key),
		MissedQuestions: missed,
		RedFlags:        s.redFlags.For(key.ListingID),
		FinalGrade:      Grade(len(missed), total),
		Percent:         Percent(len(missed), total),
	}
}

func (s *ChatService) Transcript(key model.ConversationKey) []model.Turn {
	return s.tracker.Transcript(key)
}

// Listing 未知房源返回 nil，不报错
func (s *ChatService) Listing(ctx context.Context, id int) (*model.Listing, error) {
	l, err := s.listings.Get(ctx, id)
	if errors.Is(err, util.ErrListingNotFound) {
		return nil, nil
	}
	return l, err
}

func (s *ChatService) Listings(ctx context.Context) ([]model.Listing, error) {
	return s.listings.List(ctx)
}
