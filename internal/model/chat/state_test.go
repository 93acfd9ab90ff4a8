package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/faqdesk/backend/internal/model/faq"
)

func TestSelectTopicAppendsUserMessage(t *testing.T) {
	s := NewState().SelectTopic("Refund Policy")

	assert.Equal(t, []Message{{Role: RoleUser, Content: "Refund Policy"}}, s.Transcript)
	assert.False(t, s.IsLoading, "topic selection does not mark loading")
}

func TestSelectTopicAcceptsUnknownTitles(t *testing.T) {
	s := NewState().SelectTopic("nonexistent")
	require.Len(t, s.Transcript, 1)
	assert.Equal(t, "nonexistent", s.Transcript[0].Content)
}

func TestSubmitFreeTextIgnoresBlankInput(t *testing.T) {
	base := NewState().SetDraft("   ")

	for _, text := range []string{"", "   ", "\t\n"} {
		next, ok := base.SubmitFreeText(text)
		assert.False(t, ok, "text %q", text)
		assert.Equal(t, base, next)
	}
}

func TestSubmitFreeTextLifecycle(t *testing.T) {
	s := NewState().SetDraft("hello")

	s, ok := s.SubmitFreeText("hello")
	require.True(t, ok)
	assert.Equal(t, []Message{UserMessage("hello")}, s.Transcript)
	assert.Empty(t, s.Draft)
	assert.True(t, s.IsLoading)

	s = s.CompleteReply(faq.DefaultPlaceholder, true)
	assert.Equal(t, []Message{UserMessage("hello"), AssistantMessage("This is a bot response.")}, s.Transcript)
	assert.False(t, s.IsLoading)
}

func TestSubmitFreeTextBlockedWhileLoading(t *testing.T) {
	s, ok := NewState().SubmitFreeText("first")
	require.True(t, ok)

	next, ok := s.SubmitFreeText("second")
	assert.False(t, ok)
	assert.Equal(t, s, next)

	// topic selection is not blocked
	next = s.SelectTopic("Uni AI")
	assert.Len(t, next.Transcript, 2)
}

func TestTopicReplyKeepsLoadingFlag(t *testing.T) {
	s, _ := NewState().SubmitFreeText("question")
	s = s.SelectTopic("Uni AI").CompleteReply("answer", false)
	assert.True(t, s.IsLoading)
}

func TestTransitionsDoNotAliasTranscript(t *testing.T) {
	base := NewState().SelectTopic("a")
	left := base.SelectTopic("b")
	right := base.SelectTopic("c")

	assert.Len(t, base.Transcript, 1)
	assert.Equal(t, "b", left.Transcript[1].Content)
	assert.Equal(t, "c", right.Transcript[1].Content)
}

func TestToggleMinimizeTwiceRestoresState(t *testing.T) {
	s := NewState().SelectTopic("Refund Policy").CompleteReply("yes", false)

	once := s.ToggleMinimize()
	assert.Equal(t, Minimized, once.Visibility())

	twice := once.ToggleMinimize()
	assert.Equal(t, Expanded, twice.Visibility())
	assert.Equal(t, s, twice)
}

func TestCloseIsTerminal(t *testing.T) {
	s := NewState().SelectTopic("a").ToggleMinimize().Close()
	closed := s

	s = s.SelectTopic("b").ToggleMinimize().SetDraft("x").CompleteReply("late", true)
	s, ok := s.SubmitFreeText("hello")

	assert.False(t, ok)
	assert.Equal(t, closed, s)
	assert.Equal(t, Closed, s.Visibility())
}
