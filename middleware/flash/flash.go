package flash

import (
	"strings"
	"sync"

	navigation "github.com/goliatone/go-navigation"
)

const (
	toastCountKey = "toast_count"
	toastTypeKey  = "toast_type"
	toastTitleKey = "toast_title"
	toastTextKey  = "toast_text"
	messagesKey   = "messages"
)

type Message struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Flash queues messages until the next navigation picks them up.
type Flash struct {
	mu          sync.Mutex
	pending     []Message
	defaultType string
}

func NewFlash() *Flash {
	return &Flash{defaultType: "info"}
}

// SetMessage queues msg for the next navigation.
func (f *Flash) SetMessage(msg Message) {
	msg.Type = strings.TrimSpace(msg.Type)
	if msg.Type == "" {
		msg.Type = f.defaultType
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = append(f.pending, msg)
}

// Redirect queues msg and navigates away from nav.
func (f *Flash) Redirect(nav *navigation.Navigation, location string, msg Message, opts ...navigation.NavigateOption) error {
	f.SetMessage(msg)
	return nav.Redirect(location, opts...)
}

// Pending returns the queued messages without consuming them.
func (f *Flash) Pending() []Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Message(nil), f.pending...)
}

func (f *Flash) take() []Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	msgs := f.pending
	f.pending = nil
	return msgs
}

// GetMessagesFrom reads the messages exported by the hook.
func GetMessagesFrom(data map[string]any) ([]Message, bool) {
	if data == nil {
		return nil, false
	}
	msgs, ok := data[messagesKey].([]Message)
	if !ok || len(msgs) == 0 {
		return nil, false
	}
	return msgs, true
}

// GetMessageFrom returns the first exported message.
func GetMessageFrom(data map[string]any) (*Message, bool) {
	msgs, ok := GetMessagesFrom(data)
	if !ok {
		return nil, false
	}
	return &msgs[0], true
}

func toContext(msgs []Message) map[string]any {
	data := map[string]any{
		messagesKey:   msgs,
		toastCountKey: len(msgs),
	}
	if len(msgs) > 0 {
		data[toastTypeKey] = msgs[0].Type
		data[toastTitleKey] = msgs[0].Title
		data[toastTextKey] = msgs[0].Text
	}
	return data
}
