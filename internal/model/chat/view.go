package chat

import "github.com/zhouzirui/faqdesk/backend/internal/model/faq"

const (
	PanelTitle       = "Chatbot"
	InputPlaceholder = "Type a message"
	SendLabel        = "Send"
	WaitLabel        = "wait..."
)

// View is what a host draws for a State. Expanded-only fields are
// empty while the panel is minimized.
type View struct {
	Title       string     `json:"title"`
	Minimized   bool       `json:"minimized"`
	Welcome     string     `json:"welcome,omitempty"`
	Topics      []string   `json:"topics,omitempty"`
	Messages    []Message  `json:"messages,omitempty"`
	Draft       string     `json:"draft,omitempty"`
	Placeholder string     `json:"placeholder,omitempty"`
	SendLabel   string     `json:"sendLabel,omitempty"`
	SendEnabled bool       `json:"sendEnabled"`
	Links       []faq.Link `json:"links,omitempty"`
}

// Catalog is the part of the topic catalog a renderer needs.
type Catalog interface {
	Titles() []string
	Welcome() string
	Links() []faq.Link
}

// Render projects s into a View. A closed panel renders nothing.
func Render(s State, catalog Catalog) *View {
	if s.IsClosed {
		return nil
	}

	v := &View{Title: PanelTitle, Minimized: s.IsMinimized}
	if s.IsMinimized {
		return v
	}

	v.Welcome = catalog.Welcome()
	v.Topics = catalog.Titles()
	v.Messages = append([]Message(nil), s.Transcript...)
	v.Draft = s.Draft
	v.Placeholder = InputPlaceholder
	v.Links = catalog.Links()
	if s.IsLoading {
		v.SendLabel = WaitLabel
	} else {
		v.SendLabel = SendLabel
		v.SendEnabled = true
	}
	return v
}
