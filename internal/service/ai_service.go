package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rental_coach_backend/internal/config"
	"rental_coach_backend/internal/model"
	"rental_coach_backend/internal/util"

	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai"
)

type ReplyRequest struct {
	SystemPrompt string
	History      []model.Turn
	Message      string
}

// LanguageModel 生成房东回复
type LanguageModel interface {
	Name() string
	Reply(ctx context.Context, req ReplyRequest) (string, error)
}

// NewLanguageModel 按 ai.provider 选择实现。gemini 需要调用方传入已创建的 client。
func NewLanguageModel(cfg config.AIConfig, gc *genai.Client) (LanguageModel, error) {
	switch strings.ToLower(cfg.Provider) {
	case util.ProviderGemini:
		if gc == nil {
			return nil, fmt.Errorf("%w: gemini client not configured", util.ErrProviderUnavailable)
		}
		return NewGeminiModel(gc, cfg.Model), nil
	case util.ProviderOpenAI:
		return NewOpenAIModel(cfg.KeyFor(util.ProviderOpenAI), cfg.BaseURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unknown ai provider: %s", cfg.Provider)
	}
}

type GeminiModel struct {
	client *genai.Client
	model  string
}

func NewGeminiModel(client *genai.Client, model string) *GeminiModel {
	return &GeminiModel{client: client, model: strings.TrimSpace(model)}
}

func (g *GeminiModel) Name() string { return "gemini:" + g.model }

func (g *GeminiModel) Reply(ctx context.Context, req ReplyRequest) (string, error) {
	m := g.client.GenerativeModel(g.model)
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(req.SystemPrompt)},
	}

	cs := m.StartChat()
	for _, t := range req.History {
		cs.History = append(cs.History,
			&genai.Content{Role: "user", Parts: []genai.Part{genai.Text(t.User)}},
			&genai.Content{Role: "model", Parts: []genai.Part{genai.Text(t.Landlord)}},
		)
	}

	resp, err := cs.SendMessage(ctx, genai.Text(req.Message))
	if err != nil {
		return "", err
	}
	txt := firstText(resp)
	if txt == "" {
		return "", errors.New("gemini: empty response")
	}
	return txt, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		var sb strings.Builder
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				sb.WriteString(string(t))
			}
		}
		if sb.Len() > 0 {
			return sb.String()
		}
	}
	return ""
}

type OpenAIModel struct {
	client *openai.Client
	model  string
}

func NewOpenAIModel(apiKey, baseURL, model string) *OpenAIModel {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIModel{client: openai.NewClientWithConfig(cfg), model: model}
}

func (o *OpenAIModel) Name() string { return "openai:" + o.model }

func (o *OpenAIModel) Reply(ctx context.Context, req ReplyRequest) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    o.model,
		Messages: buildOpenAIMessages(req),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func buildOpenAIMessages(req ReplyRequest) []openai.ChatCompletionMessage {
	msgs := make([]openai.ChatCompletionMessage, 0, 2+2*len(req.History))
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt})
	for _, t := range req.History {
		msgs = append(msgs,
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: t.User},
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: t.Landlord},
		)
	}
	return append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.Message})
}

// UnavailableModel 未配置模型时使用：服务照常启动，每轮对话按失败处理
type UnavailableModel struct {
	cause error
}

func NewUnavailableModel(cause error) *UnavailableModel {
	return &UnavailableModel{cause: cause}
}

func (u *UnavailableModel) Name() string { return "unavailable" }

func (u *UnavailableModel) Reply(context.Context, ReplyRequest) (string, error) {
	return "", u.cause
}
