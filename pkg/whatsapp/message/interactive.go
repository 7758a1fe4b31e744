package message

import (
	"encoding/json"
	"fmt"
)

// InteractiveType is both the interactive sub-kind on the wire and the tag of an Action.
type InteractiveType string

const (
	InteractiveList   InteractiveType = "list"
	InteractiveButton InteractiveType = "button"
	InteractiveCtaURL InteractiveType = "cta_url"
)

const (
	headerTypeText  = "text"
	replyButtonType = "reply"
)

type Interactive struct {
	Type   InteractiveType `json:"type"`
	Header *Header         `json:"header,omitempty"`
	Body   Body            `json:"body"`
	Footer *Footer         `json:"footer,omitempty"`
	Action Action          `json:"action"`
}

type Header struct {
	Type string `json:"type"`
	Text string `json:"text" validate:"required"`
}

// TextHeader returns a text header for an interactive message.
func TextHeader(text string) *Header {
	return &Header{Type: headerTypeText, Text: text}
}

type Body struct {
	Text string `json:"text" validate:"required"`
}

type Footer struct {
	Text string `json:"text" validate:"required"`
}

// Action is a closed union over the three interactive actions. Kind names the populated field.
type Action struct {
	Kind   InteractiveType
	List   *ListAction
	Button *ButtonAction
	CtaURL *CtaURLAction
}

type ListAction struct {
	Button   string    `json:"button" validate:"required"`
	Sections []Section `json:"sections" validate:"required,min=1,dive"`
}

type Section struct {
	Title string `json:"title" validate:"required"`
	Rows  []Row  `json:"rows" validate:"dive"`
}

type Row struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// ButtonAction carries reply buttons. The platform accepts at most three; that limit is left to the API.
type ButtonAction struct {
	Buttons []ReplyButton `json:"buttons" validate:"required,min=1,dive"`
}

type ReplyButton struct {
	Type  string `json:"type"`
	Reply Reply  `json:"reply"`
}

type Reply struct {
	ID    string `json:"id" validate:"required"`
	Title string `json:"title,omitempty"`
}

type CtaURLAction struct {
	Name       string        `json:"name"`
	Parameters CtaParameters `json:"parameters"`
}

type CtaParameters struct {
	DisplayText string `json:"display_text" validate:"required"`
	URL         string `json:"url" validate:"required,url"`
}

func NewListAction(button string, sections ...Section) Action {
	return Action{Kind: InteractiveList, List: &ListAction{Button: button, Sections: sections}}
}

func NewButtonAction(buttons ...ReplyButton) Action {
	return Action{Kind: InteractiveButton, Button: &ButtonAction{Buttons: buttons}}
}

func NewReplyButton(id, title string) ReplyButton {
	return ReplyButton{Type: replyButtonType, Reply: Reply{ID: id, Title: title}}
}

func NewCtaURLAction(displayText, url string) Action {
	return Action{
		Kind: InteractiveCtaURL,
		CtaURL: &CtaURLAction{
			Name:       string(InteractiveCtaURL),
			Parameters: CtaParameters{DisplayText: displayText, URL: url},
		},
	}
}

// payload returns the value selected by Kind, or nil when Kind and the populated field disagree.
func (a Action) payload() any {
	switch a.Kind {
	case InteractiveList:
		if a.List != nil {
			return a.List
		}
	case InteractiveButton:
		if a.Button != nil {
			return a.Button
		}
	case InteractiveCtaURL:
		if a.CtaURL != nil {
			return a.CtaURL
		}
	}
	return nil
}

func (a Action) MarshalJSON() ([]byte, error) {
	p := a.payload()
	if p == nil {
		return nil, fmt.Errorf("invalid action type %q", a.Kind)
	}
	return json.Marshal(p)
}

// UnmarshalJSON decodes the action according to the interactive type carried next to it.
func (i *Interactive) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type   InteractiveType `json:"type"`
		Header *Header         `json:"header"`
		Body   Body            `json:"body"`
		Footer *Footer         `json:"footer"`
		Action json.RawMessage `json:"action"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	action := Action{Kind: raw.Type}
	var target any
	switch raw.Type {
	case InteractiveList:
		action.List = &ListAction{}
		target = action.List
	case InteractiveButton:
		action.Button = &ButtonAction{}
		target = action.Button
	case InteractiveCtaURL:
		action.CtaURL = &CtaURLAction{}
		target = action.CtaURL
	default:
		return fmt.Errorf("invalid interactive type %q", raw.Type)
	}
	if len(raw.Action) > 0 {
		if err := json.Unmarshal(raw.Action, target); err != nil {
			return fmt.Errorf("failed to decode %s action: %w", raw.Type, err)
		}
	}

	*i = Interactive{
		Type:   raw.Type,
		Header: raw.Header,
		Body:   raw.Body,
		Footer: raw.Footer,
		Action: action,
	}
	return nil
}
