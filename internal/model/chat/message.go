package chat

import "github.com/cloudwego/eino/schema"

const (
	RoleUser      = schema.User
	RoleAssistant = schema.Assistant
)

// Message is one entry of the append-only transcript.
type Message struct {
	Role    schema.RoleType `json:"role"`
	Content string          `json:"content"`
}

func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}
