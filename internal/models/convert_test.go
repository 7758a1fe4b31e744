package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/popeskul/wacloud/internal/models"
	"github.com/popeskul/wacloud/pkg/whatsapp/message"
)

func TestSendMessageRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
		field   string
	}{
		{
			name: "valid text",
			body: `{"kind":"text","to":"1","text":"hi"}`,
		},
		{
			name:    "missing kind",
			body:    `{"to":"1","text":"hi"}`,
			wantErr: true,
			field:   "kind",
		},
		{
			name:    "missing to",
			body:    `{"kind":"text"}`,
			wantErr: true,
			field:   "to",
		},
		{
			name:    "bad media link",
			body:    `{"kind":"image","to":"1","media_link":"not a link"}`,
			wantErr: true,
			field:   "media_link",
		},
		{
			name:    "latitude out of range",
			body:    `{"kind":"location","to":"1","latitude":91}`,
			wantErr: true,
			field:   "latitude",
		},
		{
			name:    "action without type",
			body:    `{"kind":"interactive","to":"1","body":{"text":"b"},"action":{"button":"x"}}`,
			wantErr: true,
			field:   "type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req models.SendMessageRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			err := req.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var vErr *message.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestSendMessageRequest_Params(t *testing.T) {
	body := `{
		"kind": "Interactive",
		"to": "15551234567",
		"header": {"text": "Menu"},
		"body": {"text": "Pick"},
		"action": {
			"type": "list",
			"button": "Open",
			"sections": [{"title": "Main", "rows": [{"id": "1", "title": "One"}]}]
		},
		"context": {"message_id": "wamid.0"}
	}`

	var req models.SendMessageRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	require.NoError(t, req.Validate())

	assert.Equal(t, message.KindInteractive, req.MessageKind())

	p := req.Params()
	require.NotNil(t, p.Action)
	assert.Equal(t, message.InteractiveList, p.Action.Kind)
	require.NotNil(t, p.Action.List)
	assert.Equal(t, "Open", p.Action.List.Button)
	assert.Equal(t, "wamid.0", p.Context.MessageID)

	msg, err := message.Build(req.MessageKind(), p)
	require.NoError(t, err)
	assert.Equal(t, message.TypeInteractive, msg.Type)
	assert.Equal(t, "text", msg.Interactive.Header.Type)
}

func TestActionRequest_ToAction(t *testing.T) {
	tests := []struct {
		name  string
		req   models.ActionRequest
		check func(t *testing.T, a message.Action)
	}{
		{
			name: "buttons",
			req:  models.ActionRequest{Type: "button", Buttons: []models.ButtonRequest{{ID: "y", Title: "Yes"}}},
			check: func(t *testing.T, a message.Action) {
				require.NotNil(t, a.Button)
				assert.Equal(t, "reply", a.Button.Buttons[0].Type)
				assert.Equal(t, "y", a.Button.Buttons[0].Reply.ID)
			},
		},
		{
			name: "cta url",
			req:  models.ActionRequest{Type: "cta_url", DisplayText: "Go", URL: "https://example.com"},
			check: func(t *testing.T, a message.Action) {
				require.NotNil(t, a.CtaURL)
				assert.Equal(t, "https://example.com", a.CtaURL.Parameters.URL)
			},
		},
		{
			name: "unknown type",
			req:  models.ActionRequest{Type: "carousel"},
			check: func(t *testing.T, a message.Action) {
				assert.Nil(t, a.List)
				assert.Nil(t, a.Button)
				assert.Nil(t, a.CtaURL)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, tt.req.ToAction())
		})
	}
}

func TestSendTemplateRequest_Params(t *testing.T) {
	body := `{
		"name": "order_update",
		"to": "1",
		"header": [{"type": "text", "text": "Order 7"}],
		"footer": []
	}`

	var req models.SendTemplateRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	require.NoError(t, req.Validate())

	p := req.Params()
	require.NotNil(t, p.Header)
	assert.Nil(t, p.Body)
	require.NotNil(t, p.Footer)
	assert.Empty(t, p.Footer.Parameters)

	msg, err := message.BuildTemplate(p)
	require.NoError(t, err)
	require.Len(t, msg.Template.Components, 2)
	assert.Equal(t, message.ComponentHeader, msg.Template.Components[0].Type)
	assert.Equal(t, message.ComponentFooter, msg.Template.Components[1].Type)
}
