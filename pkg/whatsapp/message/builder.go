package message

import (
	"fmt"
	"strings"
)

// Params is the loosely grouped input of Build. Only the fields relevant to the chosen kind
// are read.
type Params struct {
	To            string
	RecipientType string
	Context       *Context

	Text       string
	PreviewURL bool

	// MessageID is the message a reaction targets.
	MessageID string
	Emoji     string

	MediaLink string
	MediaID   string
	// Caption applies to image, video and document; Filename to document only.
	Caption  string
	Filename string

	Longitude       float64
	Latitude        float64
	LocationName    string
	LocationAddress string

	Contacts []Contact

	Header *Header
	Body   *Body
	Footer *Footer
	Action *Action
}

// TemplateParams is the input of BuildTemplate. Absent components are left out.
type TemplateParams struct {
	Name          string
	To            string
	Language      string
	RecipientType string
	Header        *Component
	Body          *Component
	Footer        *Component
}

// Build validates p for kind and returns the matching message document.
func Build(kind Kind, p Params) (*OutboundMessage, error) {
	switch kind {
	case KindText, KindReaction, KindImage, KindVideo, KindAudio, KindDocument, KindSticker,
		KindLocation, KindContact, KindInteractive:
	case KindAddress, KindMessages:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, kind)
	case KindTemplate:
		return nil, invalid("kind", "template messages are built with BuildTemplate")
	default:
		return nil, invalid("kind", "invalid message kind")
	}

	msg, err := newOutbound(p.To, p.RecipientType)
	if err != nil {
		return nil, err
	}
	if p.Context != nil {
		if err := Validate(p.Context); err != nil {
			return nil, err
		}
		msg.Context = p.Context
	}

	switch kind {
	case KindText:
		if p.Text == "" {
			return nil, required("text")
		}
		msg.Type = TypeText
		msg.Text = &Text{PreviewURL: p.PreviewURL, Body: p.Text}

	case KindReaction:
		if p.Emoji == "" {
			return nil, required("emoji")
		}
		if p.MessageID == "" {
			return nil, required("message_id")
		}
		msg.Type = TypeReaction
		msg.Context = nil
		msg.Reaction = &Reaction{MessageID: p.MessageID, Emoji: p.Emoji}

	case KindImage, KindVideo, KindAudio, KindDocument, KindSticker:
		media, err := buildMedia(kind, p)
		if err != nil {
			return nil, err
		}
		setMedia(msg, kind, media)

	case KindLocation:
		msg.Type = TypeLocation
		msg.Location = &Location{
			Longitude: p.Longitude,
			Latitude:  p.Latitude,
			Name:      p.LocationName,
			Address:   p.LocationAddress,
		}

	case KindContact:
		if len(p.Contacts) == 0 {
			return nil, required("contacts")
		}
		for _, c := range p.Contacts {
			if err := Validate(c); err != nil {
				return nil, err
			}
		}
		msg.Type = TypeContacts
		msg.Contacts = p.Contacts

	case KindInteractive:
		interactive, err := buildInteractive(p)
		if err != nil {
			return nil, err
		}
		msg.Type = TypeInteractive
		msg.Interactive = interactive
	}

	return msg, nil
}

// BuildTemplate assembles a template message keeping header, body and footer in that order.
func BuildTemplate(p TemplateParams) (*OutboundMessage, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, required("name")
	}
	msg, err := newOutbound(p.To, p.RecipientType)
	if err != nil {
		return nil, err
	}

	language := p.Language
	if language == "" {
		language = DefaultLanguageCode
	}

	components := make([]Component, 0, 3)
	for _, slot := range []struct {
		component *Component
		expected  ComponentType
	}{
		{p.Header, ComponentHeader},
		{p.Body, ComponentBody},
		{p.Footer, ComponentFooter},
	} {
		if slot.component == nil {
			continue
		}
		if err := slot.component.validate(slot.expected); err != nil {
			return nil, err
		}
		c := *slot.component
		if c.Parameters == nil {
			c.Parameters = []Parameter{}
		}
		components = append(components, c)
	}

	msg.Type = TypeTemplate
	msg.Template = &Template{
		Name:       p.Name,
		Language:   Language{Code: language},
		Components: components,
	}
	return msg, nil
}

func newOutbound(to, recipientType string) (*OutboundMessage, error) {
	if strings.TrimSpace(to) == "" {
		return nil, required("to")
	}
	if recipientType == "" {
		recipientType = RecipientIndividual
	}
	return &OutboundMessage{
		MessagingProduct: MessagingProduct,
		RecipientType:    recipientType,
		To:               to,
	}, nil
}

func buildMedia(kind Kind, p Params) (*Media, error) {
	if p.MediaLink == "" && p.MediaID == "" {
		return nil, invalid("media", "media_link or media_id required")
	}
	media := &Media{ID: p.MediaID, Link: p.MediaLink}
	switch kind {
	case KindImage, KindVideo:
		media.Caption = p.Caption
	case KindDocument:
		media.Caption = p.Caption
		media.Filename = p.Filename
	}
	return media, nil
}

func setMedia(msg *OutboundMessage, kind Kind, media *Media) {
	switch kind {
	case KindImage:
		msg.Type = TypeImage
		msg.Image = media
	case KindVideo:
		msg.Type = TypeVideo
		msg.Video = media
	case KindAudio:
		msg.Type = TypeAudio
		msg.Audio = media
	case KindDocument:
		msg.Type = TypeDocument
		msg.Document = media
	case KindSticker:
		msg.Type = TypeSticker
		msg.Sticker = media
	}
}

func buildInteractive(p Params) (*Interactive, error) {
	if p.Action == nil {
		return nil, required("action")
	}
	if p.Body == nil {
		return nil, required("body")
	}
	if p.Action.payload() == nil {
		return nil, invalid("action", "invalid action type")
	}

	header := p.Header
	if header != nil && header.Type == "" {
		header = TextHeader(header.Text)
	}

	interactive := &Interactive{
		Type:   p.Action.Kind,
		Header: header,
		Body:   *p.Body,
		Footer: p.Footer,
		Action: *p.Action,
	}
	if err := Validate(interactive); err != nil {
		return nil, err
	}
	return interactive, nil
}
