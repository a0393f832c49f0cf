package service

import (
	"rental_coach_backend/internal/model"
	"rental_coach_backend/internal/repository"
)

// ProgressTracker 记录每个对话已命中的标准问题，并推导遗漏问题。
// 输出顺序与标准问题列表一致。
type ProgressTracker struct {
	questions []string
	repo      *repository.ConversationRepository
}

func NewProgressTracker(questions []string, repo *repository.ConversationRepository) *ProgressTracker {
	return &ProgressTracker{
		questions: append([]string(nil), questions...),
		repo:      repo,
	}
}

func (t *ProgressTracker) Questions() []string {
	return append([]string(nil), t.questions...)
}

// RecordTurn 将本轮命中的问题并入已问集合；不在标准列表中的问题被忽略
func (t *ProgressTracker) RecordTurn(key model.ConversationKey, matched []string) {
	known := make([]string, 0, len(matched))
	for _, q := range matched {
		if t.isCanonical(q) {
			known = append(known, q)
		}
	}
	t.repo.AddAsked(key, known)
}

func (t *ProgressTracker) Asked(key model.ConversationKey) []string {
	asked := t.repo.Asked(key)
	out := []string{}
	for _, q := range t.questions {
		if _, ok := asked[q]; ok {
			out = append(out, q)
		}
	}
	return out
}

// Missed 未见过的对话返回全部标准问题
func (t *ProgressTracker) Missed(key model.ConversationKey) []string {
	asked := t.repo.Asked(key)
	out := []string{}
	for _, q := range t.questions {
		if _, ok := asked[q]; !ok {
			out = append(out, q)
		}
	}
	return out
}

func (t *ProgressTracker) AppendTurn(key model.ConversationKey, turn model.Turn) {
	t.repo.AppendTurn(key, turn)
}

func (t *ProgressTracker) Transcript(key model.ConversationKey) []model.Turn {
	return t.repo.Turns(key)
}

func (t *ProgressTracker) isCanonical(q string) bool {
	for _, c := range t.questions {
		if c == q {
			return true
		}
	}
	return false
}
