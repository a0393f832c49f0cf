package model

import (
	"fmt"
	"time"
)

// ConversationKey 标识一次用户与某个房源的对话
type ConversationKey struct {
	SessionID string
	ListingID int
}

func (k ConversationKey) String() string {
	return fmt.Sprintf("%s:%d", k.SessionID, k.ListingID)
}

// Turn 一轮对话：用户消息与房东回复
type Turn struct {
	User     string    `json:"user"`
	Landlord string    `json:"landlord"`
	At       time.Time `json:"at"`
}

// TurnResult 一轮对话的返回。失败时携带完整反馈字段
type TurnResult struct {
	Response        string
	Failed          bool
	GoodQuestions   []string
	MissedQuestions []string
	RedFlags        []string
}

// Feedback 总结页数据
type Feedback struct {
	GoodQuestions   []string `json:"good_questions"`
	MissedQuestions []string `json:"missed_questions"`
	RedFlags        []string `json:"red_flags"`
	FinalGrade      string   `json:"final_grade"`
	Percent         float64  `json:"percent"`
}
