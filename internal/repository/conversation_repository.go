package repository

import (
	"sync"
	"time"

	"rental_coach_backend/internal/model"
)

type conversation struct {
	asked      map[string]struct{}
	turns      []model.Turn
	lastActive time.Time
}

// ConversationRepository 进程内对话状态：已问问题集合与对话记录。
// 只增不减，由 Sweep 按空闲时间淘汰。
type ConversationRepository struct {
	mu    sync.RWMutex
	convs map[model.ConversationKey]*conversation
	now   func() time.Time
}

func NewConversationRepository() *ConversationRepository {
	return &ConversationRepository{
		convs: make(map[model.ConversationKey]*conversation),
		now:   time.Now,
	}
}

// getOrCreate 调用方须持有写锁
func (r *ConversationRepository) getOrCreate(key model.ConversationKey) *conversation {
	c, ok := r.convs[key]
	if !ok {
		c = &conversation{asked: make(map[string]struct{})}
		r.convs[key] = c
	}
	c.lastActive = r.now()
	return c
}

func (r *ConversationRepository) AddAsked(key model.ConversationKey, questions []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.getOrCreate(key)
	for _, q := range questions {
		c.asked[q] = struct{}{}
	}
}

// Asked 返回集合副本；未见过的 key 返回 nil
func (r *ConversationRepository) Asked(key model.ConversationKey) map[string]struct{} {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.convs[key]
	if !ok {
		return nil
	}
	out := make(map[string]struct{}, len(c.asked))
	for q := range c.asked {
		out[q] = struct{}{}
	}
	return out
}

func (r *ConversationRepository) AppendTurn(key model.ConversationKey, turn model.Turn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.getOrCreate(key)
	c.turns = append(c.turns, turn)
}

func (r *ConversationRepository) Turns(key model.ConversationKey) []model.Turn {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.convs[key]
	if !ok {
		return []model.Turn{}
	}
	return append([]model.Turn{}, c.turns...)
}

// Sweep 删除空闲超过 ttl 的对话，返回删除数量
func (r *ConversationRepository) Sweep(ttl time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-ttl)
	removed := 0
	for k, c := range r.convs {
		if c.lastActive.Before(cutoff) {
			delete(r.convs, k)
			removed++
		}
	}
	return removed
}

func (r *ConversationRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.convs)
}
