// Package message defines the outbound WhatsApp Cloud API message documents and builds them
// from loosely grouped caller parameters.
package message

import "strings"

const (
	MessagingProduct    = "whatsapp"
	RecipientIndividual = "individual"
	DefaultLanguageCode = "en_US"
	readReceiptStatus   = "read"
)

// Kind selects which message variant Build produces.
type Kind string

const (
	KindText        Kind = "text"
	KindReaction    Kind = "reaction"
	KindImage       Kind = "image"
	KindVideo       Kind = "video"
	KindAudio       Kind = "audio"
	KindDocument    Kind = "document"
	KindSticker     Kind = "sticker"
	KindLocation    Kind = "location"
	KindContact     Kind = "contact"
	KindInteractive Kind = "interactive"
	KindTemplate    Kind = "template"
	KindAddress     Kind = "address"
	KindMessages    Kind = "messages"
)

// ParseKind normalises a kind name. "contacts" is accepted as an alias of KindContact.
func ParseKind(s string) Kind {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if k == "contacts" {
		return KindContact
	}
	return k
}

// Type is the wire discriminator written to the "type" field of a message document.
type Type string

const (
	TypeText        Type = "text"
	TypeReaction    Type = "reaction"
	TypeImage       Type = "image"
	TypeVideo       Type = "video"
	TypeAudio       Type = "audio"
	TypeDocument    Type = "document"
	TypeSticker     Type = "sticker"
	TypeLocation    Type = "location"
	TypeContacts    Type = "contacts"
	TypeInteractive Type = "interactive"
	TypeTemplate    Type = "template"
)

// OutboundMessage is the canonical document POSTed to the messages endpoint.
// Exactly one payload field is set and it matches Type.
type OutboundMessage struct {
	MessagingProduct string       `json:"messaging_product"`
	RecipientType    string       `json:"recipient_type"`
	To               string       `json:"to"`
	Type             Type         `json:"type"`
	Context          *Context     `json:"context,omitempty"`
	Text             *Text        `json:"text,omitempty"`
	Reaction         *Reaction    `json:"reaction,omitempty"`
	Image            *Media       `json:"image,omitempty"`
	Video            *Media       `json:"video,omitempty"`
	Audio            *Media       `json:"audio,omitempty"`
	Document         *Media       `json:"document,omitempty"`
	Sticker          *Media       `json:"sticker,omitempty"`
	Location         *Location    `json:"location,omitempty"`
	Contacts         []Contact    `json:"contacts,omitempty"`
	Interactive      *Interactive `json:"interactive,omitempty"`
	Template         *Template    `json:"template,omitempty"`
}

// Context references a prior message the new one replies to.
type Context struct {
	MessageID string `json:"message_id" validate:"required"`
}

type Text struct {
	PreviewURL bool   `json:"preview_url"`
	Body       string `json:"body"`
}

type Reaction struct {
	MessageID string `json:"message_id"`
	Emoji     string `json:"emoji"`
}

// Media points at either a hosted link or a previously uploaded media id.
type Media struct {
	ID       string `json:"id,omitempty"`
	Link     string `json:"link,omitempty"`
	Caption  string `json:"caption,omitempty"`
	Filename string `json:"filename,omitempty"`
}

type Location struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Name      string  `json:"name,omitempty"`
	Address   string  `json:"address,omitempty"`
}

// ReadReceipt marks an inbound message as read.
type ReadReceipt struct {
	MessagingProduct string `json:"messaging_product"`
	Status           string `json:"status"`
	MessageID        string `json:"message_id"`
}

// NewReadReceipt builds the document that marks messageID as read.
func NewReadReceipt(messageID string) (*ReadReceipt, error) {
	if strings.TrimSpace(messageID) == "" {
		return nil, required("message_id")
	}
	return &ReadReceipt{
		MessagingProduct: MessagingProduct,
		Status:           readReceiptStatus,
		MessageID:        messageID,
	}, nil
}
