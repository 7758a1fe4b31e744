package message_test

import (
	"encoding/json"
	"testing"

	"github.com/popeskul/wacloud/pkg/whatsapp/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAction_MarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		action  message.Action
		want    string
		wantErr bool
	}{
		{
			name:   "buttons",
			action: message.NewButtonAction(message.NewReplyButton("ok", "OK")),
			want:   `{"buttons":[{"type":"reply","reply":{"id":"ok","title":"OK"}}]}`,
		},
		{
			name:   "cta url",
			action: message.NewCtaURLAction("Visit", "https://example.com"),
			want:   `{"name":"cta_url","parameters":{"display_text":"Visit","url":"https://example.com"}}`,
		},
		{
			name: "list",
			action: message.NewListAction("Menu", message.Section{
				Title: "S",
				Rows:  []message.Row{{ID: "r1", Title: "Row"}},
			}),
			want: `{"button":"Menu","sections":[{"title":"S","rows":[{"id":"r1","title":"Row"}]}]}`,
		},
		{
			name:    "kind without payload",
			action:  message.Action{Kind: message.InteractiveList},
			wantErr: true,
		},
		{
			name:    "unknown kind",
			action:  message.Action{Kind: "carousel"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.action)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestInteractive_UnmarshalJSON(t *testing.T) {
	raw := `{
		"type": "button",
		"header": {"type": "text", "text": "Head"},
		"body": {"text": "Body"},
		"action": {"buttons": [{"type": "reply", "reply": {"id": "a", "title": "A"}}]}
	}`

	var got message.Interactive
	require.NoError(t, json.Unmarshal([]byte(raw), &got))

	assert.Equal(t, message.InteractiveButton, got.Type)
	assert.Equal(t, message.InteractiveButton, got.Action.Kind)
	require.NotNil(t, got.Action.Button)
	assert.Nil(t, got.Action.List)
	assert.Equal(t, "a", got.Action.Button.Buttons[0].Reply.ID)
	assert.Equal(t, "Head", got.Header.Text)
	assert.Nil(t, got.Footer)

	var bad message.Interactive
	assert.Error(t, json.Unmarshal([]byte(`{"type":"carousel","body":{"text":"x"}}`), &bad))
}

func TestValidate_ReportsJSONPath(t *testing.T) {
	err := message.Validate(message.CtaParameters{DisplayText: "Go", URL: "nope"})

	var vErr *message.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "url", vErr.Field)
	assert.Equal(t, "url is invalid (url)", vErr.Error())
	assert.Error(t, vErr.Unwrap())

	assert.NoError(t, message.Validate(message.CtaParameters{DisplayText: "Go", URL: "https://example.com"}))
}
