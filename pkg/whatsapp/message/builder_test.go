package message_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/popeskul/wacloud/pkg/whatsapp/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listAction() message.Action {
	return message.NewListAction("Choose",
		message.Section{
			Title: "Plans",
			Rows: []message.Row{
				{ID: "basic", Title: "Basic", Description: "Entry plan"},
				{ID: "pro", Title: "Pro"},
			},
		},
	)
}

func roundTrip(t *testing.T, msg *message.OutboundMessage) *message.OutboundMessage {
	t.Helper()
	data, err := json.Marshal(msg)
	require.NoError(t, err)

	var decoded message.OutboundMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	return &decoded
}

func TestBuild_ValidMinimalParams(t *testing.T) {
	tests := []struct {
		name     string
		kind     message.Kind
		params   message.Params
		wantType message.Type
		check    func(t *testing.T, msg *message.OutboundMessage)
	}{
		{
			name:     "text",
			kind:     message.KindText,
			params:   message.Params{To: "15551234567", Text: "hello"},
			wantType: message.TypeText,
			check: func(t *testing.T, msg *message.OutboundMessage) {
				require.NotNil(t, msg.Text)
				assert.Equal(t, "hello", msg.Text.Body)
				assert.False(t, msg.Text.PreviewURL)
			},
		},
		{
			name:     "reaction",
			kind:     message.KindReaction,
			params:   message.Params{To: "15551234567", Emoji: "😀", MessageID: "wamid.1"},
			wantType: message.TypeReaction,
			check: func(t *testing.T, msg *message.OutboundMessage) {
				require.NotNil(t, msg.Reaction)
				assert.Equal(t, "wamid.1", msg.Reaction.MessageID)
				assert.Equal(t, "😀", msg.Reaction.Emoji)
			},
		},
		{
			name:     "image by link",
			kind:     message.KindImage,
			params:   message.Params{To: "15551234567", MediaLink: "https://example.com/a.png", Caption: "cap"},
			wantType: message.TypeImage,
			check: func(t *testing.T, msg *message.OutboundMessage) {
				require.NotNil(t, msg.Image)
				assert.Equal(t, "https://example.com/a.png", msg.Image.Link)
				assert.Equal(t, "cap", msg.Image.Caption)
			},
		},
		{
			name:     "video by id",
			kind:     message.KindVideo,
			params:   message.Params{To: "15551234567", MediaID: "media-1"},
			wantType: message.TypeVideo,
			check: func(t *testing.T, msg *message.OutboundMessage) {
				require.NotNil(t, msg.Video)
				assert.Equal(t, "media-1", msg.Video.ID)
			},
		},
		{
			name:     "audio drops caption",
			kind:     message.KindAudio,
			params:   message.Params{To: "15551234567", MediaID: "media-2", Caption: "ignored"},
			wantType: message.TypeAudio,
			check: func(t *testing.T, msg *message.OutboundMessage) {
				require.NotNil(t, msg.Audio)
				assert.Equal(t, "media-2", msg.Audio.ID)
				assert.Empty(t, msg.Audio.Caption)
			},
		},
		{
			name:     "document keeps filename",
			kind:     message.KindDocument,
			params:   message.Params{To: "15551234567", MediaLink: "https://example.com/a.pdf", Filename: "a.pdf"},
			wantType: message.TypeDocument,
			check: func(t *testing.T, msg *message.OutboundMessage) {
				require.NotNil(t, msg.Document)
				assert.Equal(t, "a.pdf", msg.Document.Filename)
			},
		},
		{
			name:     "sticker",
			kind:     message.KindSticker,
			params:   message.Params{To: "15551234567", MediaID: "sticker-1"},
			wantType: message.TypeSticker,
			check: func(t *testing.T, msg *message.OutboundMessage) {
				require.NotNil(t, msg.Sticker)
				assert.Equal(t, "sticker-1", msg.Sticker.ID)
			},
		},
		{
			name: "location",
			kind: message.KindLocation,
			params: message.Params{
				To:              "15551234567",
				Longitude:       -122.42,
				Latitude:        37.77,
				LocationName:    "Office",
				LocationAddress: "1 Market St",
			},
			wantType: message.TypeLocation,
			check: func(t *testing.T, msg *message.OutboundMessage) {
				require.NotNil(t, msg.Location)
				assert.Equal(t, -122.42, msg.Location.Longitude)
				assert.Equal(t, 37.77, msg.Location.Latitude)
				assert.Equal(t, "Office", msg.Location.Name)
			},
		},
		{
			name: "contact",
			kind: message.KindContact,
			params: message.Params{
				To: "15551234567",
				Contacts: []message.Contact{{
					Name:   message.Name{FormattedName: "Jane Doe", FirstName: "Jane"},
					Phones: []message.Phone{{Phone: "+15550000000", Type: "WORK"}},
				}},
			},
			wantType: message.TypeContacts,
			check: func(t *testing.T, msg *message.OutboundMessage) {
				require.Len(t, msg.Contacts, 1)
				assert.Equal(t, "Jane Doe", msg.Contacts[0].Name.FormattedName)
				assert.Equal(t, "+15550000000", msg.Contacts[0].Phones[0].Phone)
			},
		},
		{
			name: "interactive list",
			kind: message.KindInteractive,
			params: func() message.Params {
				action := listAction()
				return message.Params{
					To:     "15551234567",
					Header: &message.Header{Text: "Pick one"},
					Body:   &message.Body{Text: "Available plans"},
					Action: &action,
				}
			}(),
			wantType: message.TypeInteractive,
			check: func(t *testing.T, msg *message.OutboundMessage) {
				require.NotNil(t, msg.Interactive)
				assert.Equal(t, message.InteractiveList, msg.Interactive.Type)
				require.NotNil(t, msg.Interactive.Header)
				assert.Equal(t, "text", msg.Interactive.Header.Type)
				require.NotNil(t, msg.Interactive.Action.List)
				assert.Equal(t, "Choose", msg.Interactive.Action.List.Button)
				assert.Equal(t, "pro", msg.Interactive.Action.List.Sections[0].Rows[1].ID)
			},
		},
		{
			name: "interactive buttons",
			kind: message.KindInteractive,
			params: func() message.Params {
				action := message.NewButtonAction(
					message.NewReplyButton("yes", "Yes"),
					message.NewReplyButton("no", "No"),
				)
				return message.Params{
					To:     "15551234567",
					Body:   &message.Body{Text: "Confirm?"},
					Footer: &message.Footer{Text: "Reply below"},
					Action: &action,
				}
			}(),
			wantType: message.TypeInteractive,
			check: func(t *testing.T, msg *message.OutboundMessage) {
				require.NotNil(t, msg.Interactive)
				assert.Equal(t, message.InteractiveButton, msg.Interactive.Type)
				require.NotNil(t, msg.Interactive.Action.Button)
				require.Len(t, msg.Interactive.Action.Button.Buttons, 2)
				assert.Equal(t, "reply", msg.Interactive.Action.Button.Buttons[0].Type)
				assert.Equal(t, "no", msg.Interactive.Action.Button.Buttons[1].Reply.ID)
				require.NotNil(t, msg.Interactive.Footer)
				assert.Equal(t, "Reply below", msg.Interactive.Footer.Text)
			},
		},
		{
			name: "interactive cta url",
			kind: message.KindInteractive,
			params: func() message.Params {
				action := message.NewCtaURLAction("Open", "https://example.com/offer")
				return message.Params{
					To:     "15551234567",
					Body:   &message.Body{Text: "See offer"},
					Action: &action,
				}
			}(),
			wantType: message.TypeInteractive,
			check: func(t *testing.T, msg *message.OutboundMessage) {
				require.NotNil(t, msg.Interactive)
				assert.Equal(t, message.InteractiveCtaURL, msg.Interactive.Type)
				require.NotNil(t, msg.Interactive.Action.CtaURL)
				assert.Equal(t, "cta_url", msg.Interactive.Action.CtaURL.Name)
				assert.Equal(t, "https://example.com/offer", msg.Interactive.Action.CtaURL.Parameters.URL)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := message.Build(tt.kind, tt.params)
			require.NoError(t, err)

			assert.Equal(t, message.MessagingProduct, msg.MessagingProduct)
			assert.Equal(t, message.RecipientIndividual, msg.RecipientType)
			assert.Equal(t, tt.params.To, msg.To)
			assert.Equal(t, tt.wantType, msg.Type)
			tt.check(t, msg)

			decoded := roundTrip(t, msg)
			assert.Equal(t, tt.wantType, decoded.Type)
			tt.check(t, decoded)
		})
	}
}

func TestBuild_ValidationErrors(t *testing.T) {
	action := listAction()
	mismatched := message.Action{Kind: message.InteractiveButton, List: action.List}

	tests := []struct {
		name    string
		kind    message.Kind
		params  message.Params
		wantMsg string
	}{
		{
			name:    "text missing",
			kind:    message.KindText,
			params:  message.Params{To: "1"},
			wantMsg: "text required",
		},
		{
			name:    "recipient missing",
			kind:    message.KindText,
			params:  message.Params{Text: "hi"},
			wantMsg: "to required",
		},
		{
			name:    "reaction without emoji",
			kind:    message.KindReaction,
			params:  message.Params{To: "1", MessageID: "m1"},
			wantMsg: "emoji required",
		},
		{
			name:    "reaction without message id",
			kind:    message.KindReaction,
			params:  message.Params{To: "1", Emoji: "😀"},
			wantMsg: "message_id required",
		},
		{
			name:    "image without media",
			kind:    message.KindImage,
			params:  message.Params{To: "1"},
			wantMsg: "media_link or media_id required",
		},
		{
			name:    "video without media",
			kind:    message.KindVideo,
			params:  message.Params{To: "1"},
			wantMsg: "media_link or media_id required",
		},
		{
			name:    "audio without media",
			kind:    message.KindAudio,
			params:  message.Params{To: "1"},
			wantMsg: "media_link or media_id required",
		},
		{
			name:    "document without media",
			kind:    message.KindDocument,
			params:  message.Params{To: "1"},
			wantMsg: "media_link or media_id required",
		},
		{
			name:    "sticker without media",
			kind:    message.KindSticker,
			params:  message.Params{To: "1"},
			wantMsg: "media_link or media_id required",
		},
		{
			name:    "contact list empty",
			kind:    message.KindContact,
			params:  message.Params{To: "1"},
			wantMsg: "contacts required",
		},
		{
			name: "contact without formatted name",
			kind: message.KindContact,
			params: message.Params{
				To:       "1",
				Contacts: []message.Contact{{Name: message.Name{FirstName: "Jane"}}},
			},
			wantMsg: "name.formatted_name required",
		},
		{
			name:    "interactive without body",
			kind:    message.KindInteractive,
			params:  message.Params{To: "1", Action: &action},
			wantMsg: "body required",
		},
		{
			name:    "interactive without action",
			kind:    message.KindInteractive,
			params:  message.Params{To: "1", Body: &message.Body{Text: "b"}},
			wantMsg: "action required",
		},
		{
			name:    "interactive action kind mismatch",
			kind:    message.KindInteractive,
			params:  message.Params{To: "1", Body: &message.Body{Text: "b"}, Action: &mismatched},
			wantMsg: "invalid action type",
		},
		{
			name:    "reply context without id",
			kind:    message.KindText,
			params:  message.Params{To: "1", Text: "hi", Context: &message.Context{}},
			wantMsg: "message_id required",
		},
		{
			name:    "unknown kind",
			kind:    message.Kind("carrier-pigeon"),
			params:  message.Params{To: "1"},
			wantMsg: "invalid message kind",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := message.Build(tt.kind, tt.params)
			require.Error(t, err)
			assert.Nil(t, msg)

			var vErr *message.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantMsg, vErr.Error())
		})
	}
}

func TestBuild_UnsupportedKinds(t *testing.T) {
	for _, kind := range []message.Kind{message.KindAddress, message.KindMessages} {
		t.Run(string(kind), func(t *testing.T) {
			msg, err := message.Build(kind, message.Params{To: "1", Text: "hi"})
			require.Error(t, err)
			assert.Nil(t, msg)
			assert.True(t, errors.Is(err, message.ErrUnsupportedKind))
		})
	}
}

func TestBuild_TemplateKindIsRejected(t *testing.T) {
	_, err := message.Build(message.KindTemplate, message.Params{To: "1"})

	var vErr *message.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "kind", vErr.Field)
}

func TestBuild_ReactionDropsContext(t *testing.T) {
	msg, err := message.Build(message.KindReaction, message.Params{
		To:        "1",
		Emoji:     "👍",
		MessageID: "wamid.2",
		Context:   &message.Context{MessageID: "wamid.0"},
	})
	require.NoError(t, err)
	assert.Nil(t, msg.Context)
}

func TestBuild_ReplyContext(t *testing.T) {
	msg, err := message.Build(message.KindText, message.Params{
		To:            "1",
		Text:          "answer",
		RecipientType: "group",
		Context:       &message.Context{MessageID: "wamid.0"},
	})
	require.NoError(t, err)

	require.NotNil(t, msg.Context)
	assert.Equal(t, "wamid.0", msg.Context.MessageID)
	assert.Equal(t, "group", msg.RecipientType)
}

func TestBuild_OmitsUnsetOptionals(t *testing.T) {
	msg, err := message.Build(message.KindImage, message.Params{To: "1", MediaID: "m"})
	require.NoError(t, err)

	data, err := json.Marshal(msg)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "image", doc["type"])
	assert.NotContains(t, doc, "context")
	assert.NotContains(t, doc, "text")
	image, ok := doc["image"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"id": "m"}, image)
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want message.Kind
	}{
		{"text", message.KindText},
		{"  Image ", message.KindImage},
		{"contacts", message.KindContact},
		{"CONTACT", message.KindContact},
		{"bogus", message.Kind("bogus")},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, message.ParseKind(tt.in))
		})
	}
}

func TestNewReadReceipt(t *testing.T) {
	receipt, err := message.NewReadReceipt("wamid.9")
	require.NoError(t, err)
	assert.Equal(t, "whatsapp", receipt.MessagingProduct)
	assert.Equal(t, "read", receipt.Status)
	assert.Equal(t, "wamid.9", receipt.MessageID)

	_, err = message.NewReadReceipt(" ")
	assert.Error(t, err)
}
