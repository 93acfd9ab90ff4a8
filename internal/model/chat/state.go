package chat

import "strings"

// Visibility is the panel's position in the open/minimized/closed machine.
type Visibility string

const (
	Expanded  Visibility = "expanded"
	Minimized Visibility = "minimized"
	Closed    Visibility = "closed"
)

// State is an immutable snapshot of one conversation panel.
// Transitions return a new State and never modify the receiver,
// so a State handed to a renderer stays valid after later updates.
type State struct {
	Transcript  []Message `json:"transcript"`
	Draft       string    `json:"draft"`
	IsLoading   bool      `json:"isLoading"`
	IsMinimized bool      `json:"isMinimized"`
	IsClosed    bool      `json:"isClosed"`
}

// NewState returns an expanded panel with an empty transcript.
func NewState() State {
	return State{Transcript: []Message{}}
}

// Visibility reports the panel's visibility state.
func (s State) Visibility() Visibility {
	switch {
	case s.IsClosed:
		return Closed
	case s.IsMinimized:
		return Minimized
	default:
		return Expanded
	}
}

// SelectTopic appends the title as a user message. The title is not
// checked against any catalog.
func (s State) SelectTopic(title string) State {
	if s.IsClosed {
		return s
	}
	return s.appendMessage(UserMessage(title))
}

// SubmitFreeText appends text as a user message, clears the draft and
// marks a reply as pending. Empty or whitespace-only text, and any text
// submitted while a reply is pending, is ignored; ok reports whether the
// submission was accepted.
func (s State) SubmitFreeText(text string) (next State, ok bool) {
	if s.IsClosed || s.IsLoading || strings.TrimSpace(text) == "" {
		return s, false
	}
	next = s.appendMessage(UserMessage(text))
	next.Draft = ""
	next.IsLoading = true
	return next, true
}

// SetDraft replaces the pending input buffer.
func (s State) SetDraft(text string) State {
	if s.IsClosed {
		return s
	}
	s.Draft = text
	return s
}

// CompleteReply appends an assistant message. clearsLoading is set for
// replies to free-text submissions only.
func (s State) CompleteReply(content string, clearsLoading bool) State {
	if s.IsClosed {
		return s
	}
	next := s.appendMessage(AssistantMessage(content))
	if clearsLoading {
		next.IsLoading = false
	}
	return next
}

// ToggleMinimize flips between expanded and minimized.
func (s State) ToggleMinimize() State {
	if s.IsClosed {
		return s
	}
	s.IsMinimized = !s.IsMinimized
	return s
}

// Close moves the panel to its terminal state.
func (s State) Close() State {
	s.IsClosed = true
	return s
}

func (s State) appendMessage(m Message) State {
	transcript := make([]Message, len(s.Transcript), len(s.Transcript)+1)
	copy(transcript, s.Transcript)
	s.Transcript = append(transcript, m)
	return s
}
