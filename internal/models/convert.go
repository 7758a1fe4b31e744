package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/popeskul/wacloud/pkg/whatsapp/message"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the request envelope. Kind specific rules are left to the message builder.
func (r *SendMessageRequest) Validate() error {
	return validationError(validate.Struct(r))
}

func (r *SendTemplateRequest) Validate() error {
	return validationError(validate.Struct(r))
}

func validationError(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &message.ValidationError{Message: err.Error(), Err: err}
	}
	fe := fieldErrs[0]
	if fe.Tag() == "required" {
		return &message.ValidationError{Field: fe.Field(), Message: fmt.Sprintf("%s required", fe.Field()), Err: err}
	}
	return &message.ValidationError{
		Field:   fe.Field(),
		Message: fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag()),
		Err:     err,
	}
}

func (r *SendMessageRequest) MessageKind() message.Kind {
	return message.ParseKind(r.Kind)
}

func (r *SendMessageRequest) Params() message.Params {
	p := message.Params{
		To:              r.To,
		RecipientType:   r.RecipientType,
		Context:         r.Context,
		Text:            r.Text,
		PreviewURL:      r.PreviewURL,
		MessageID:       r.MessageID,
		Emoji:           r.Emoji,
		MediaLink:       r.MediaLink,
		MediaID:         r.MediaID,
		Caption:         r.Caption,
		Filename:        r.Filename,
		Longitude:       r.Longitude,
		Latitude:        r.Latitude,
		LocationName:    r.LocationName,
		LocationAddress: r.LocationAddress,
		Contacts:        r.Contacts,
		Header:          r.Header,
		Body:            r.Body,
		Footer:          r.Footer,
	}
	if r.Action != nil {
		action := r.Action.ToAction()
		p.Action = &action
	}
	return p
}

// ToAction converts the flat request into the tagged action. An unknown type yields an action
// with no payload, which the builder rejects.
func (a *ActionRequest) ToAction() message.Action {
	switch message.InteractiveType(a.Type) {
	case message.InteractiveList:
		return message.NewListAction(a.Button, a.Sections...)
	case message.InteractiveButton:
		buttons := make([]message.ReplyButton, 0, len(a.Buttons))
		for _, b := range a.Buttons {
			buttons = append(buttons, message.NewReplyButton(b.ID, b.Title))
		}
		return message.NewButtonAction(buttons...)
	case message.InteractiveCtaURL:
		return message.NewCtaURLAction(a.DisplayText, a.URL)
	default:
		return message.Action{Kind: message.InteractiveType(a.Type)}
	}
}

func (r *SendTemplateRequest) Params() message.TemplateParams {
	p := message.TemplateParams{
		Name:          r.Name,
		To:            r.To,
		Language:      r.Language,
		RecipientType: r.RecipientType,
	}
	if r.Header != nil {
		p.Header = message.NewHeader(r.Header...)
	}
	if r.Body != nil {
		p.Body = message.NewBody(r.Body...)
	}
	if r.Footer != nil {
		p.Footer = message.NewFooter(r.Footer...)
	}
	return p
}
