package assistant

import (
	"context"

	"github.com/hetref/ngo-connect-service/internal/config"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// 每次请求固定的系统提示词
const systemPrompt = "你是NGO-Connect平台的智能助手，帮助NGO管理员和捐赠人解答关于募捐活动、捐赠流程、成员和活动管理的问题。回答保持简洁。"

// Message 对话消息
type Message struct {
	Role    string
	Content string
}

// Client 对话补全客户端
type Client struct {
	client openai.Client
	model  string
}

// NewClient 创建对话补全客户端
func NewClient(cfg config.AssistantConfig) *Client {
	return &Client{
		client: openai.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:  cfg.Model,
	}
}

// StreamChat 流式对话补全，每个token通过回调吐出
func (c *Client) StreamChat(ctx context.Context, messages []Message, emit func(token string) error) error {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: buildMessages(messages),
	}

	stream := c.client.Chat.Completions.NewStreaming(ctx, params)
	defer stream.Close()

	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		token := chunk.Choices[0].Delta.Content
		if token == "" {
			continue
		}
		if err := emit(token); err != nil {
			return err
		}
	}

	return stream.Err()
}

// buildMessages 组装消息列表，系统提示词固定放在最前
func buildMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages)+1)
	result = append(result, openai.SystemMessage(systemPrompt))

	for _, m := range messages {
		switch m.Role {
		case "assistant":
			result = append(result, openai.AssistantMessage(m.Content))
		case "system":
			// 客户端传入的系统消息忽略，提示词固定
		default:
			result = append(result, openai.UserMessage(m.Content))
		}
	}

	return result
}
