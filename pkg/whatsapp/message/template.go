package message

import "fmt"

type ComponentType string

const (
	ComponentHeader ComponentType = "header"
	ComponentBody   ComponentType = "body"
	ComponentFooter ComponentType = "footer"
)

type ParameterType string

const (
	ParameterText     ParameterType = "text"
	ParameterImage    ParameterType = "image"
	ParameterVideo    ParameterType = "video"
	ParameterDocument ParameterType = "document"
	ParameterLocation ParameterType = "location"
	ParameterCurrency ParameterType = "currency"
	ParameterDateTime ParameterType = "date_time"
)

const defaultCurrencyCode = "USD"

var allowedParameters = map[ComponentType]map[ParameterType]bool{
	ComponentHeader: {
		ParameterText:     true,
		ParameterImage:    true,
		ParameterVideo:    true,
		ParameterDocument: true,
		ParameterLocation: true,
	},
	ComponentBody: {
		ParameterText:     true,
		ParameterCurrency: true,
		ParameterDateTime: true,
	},
	ComponentFooter: {
		ParameterText: true,
	},
}

type Template struct {
	Name       string      `json:"name"`
	Language   Language    `json:"language"`
	Components []Component `json:"components"`
}

type Language struct {
	Code string `json:"code"`
}

// Component is one positional block of a template. Parameters are checked against Type.
type Component struct {
	Type       ComponentType `json:"type"`
	Parameters []Parameter   `json:"parameters"`
}

// Parameter is a tagged value; only the field matching Type is set.
type Parameter struct {
	Type     ParameterType     `json:"type"`
	Text     string            `json:"text,omitempty"`
	Image    *MediaLink        `json:"image,omitempty"`
	Video    *MediaLink        `json:"video,omitempty"`
	Document *MediaLink        `json:"document,omitempty"`
	Location *TemplateLocation `json:"location,omitempty"`
	Currency *Currency         `json:"currency,omitempty"`
	DateTime *DateTime         `json:"date_time,omitempty"`
}

type MediaLink struct {
	Link string `json:"link" validate:"required,url"`
}

type TemplateLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
}

type Currency struct {
	FallbackValue string `json:"fallback_value" validate:"required"`
	Code          string `json:"code" validate:"required,len=3"`
	Amount1000    int64  `json:"amount_1000"`
}

// DateTime holds the display value, e.g. "February 25, 1977".
type DateTime struct {
	FallbackValue string `json:"fallback_value"`
}

func NewHeader(params ...Parameter) *Component {
	return newComponent(ComponentHeader, params)
}

func NewBody(params ...Parameter) *Component {
	return newComponent(ComponentBody, params)
}

func NewFooter(params ...Parameter) *Component {
	return newComponent(ComponentFooter, params)
}

func newComponent(t ComponentType, params []Parameter) *Component {
	if params == nil {
		params = []Parameter{}
	}
	return &Component{Type: t, Parameters: params}
}

func TextParameter(text string) Parameter {
	return Parameter{Type: ParameterText, Text: text}
}

func ImageParameter(link string) Parameter {
	return Parameter{Type: ParameterImage, Image: &MediaLink{Link: link}}
}

func VideoParameter(link string) Parameter {
	return Parameter{Type: ParameterVideo, Video: &MediaLink{Link: link}}
}

func DocumentParameter(link string) Parameter {
	return Parameter{Type: ParameterDocument, Document: &MediaLink{Link: link}}
}

func LocationParameter(latitude, longitude float64, name, address string) Parameter {
	return Parameter{
		Type:     ParameterLocation,
		Location: &TemplateLocation{Latitude: latitude, Longitude: longitude, Name: name, Address: address},
	}
}

// CurrencyParameter defaults code to USD when empty.
func CurrencyParameter(fallback, code string, amount1000 int64) Parameter {
	if code == "" {
		code = defaultCurrencyCode
	}
	return Parameter{
		Type:     ParameterCurrency,
		Currency: &Currency{FallbackValue: fallback, Code: code, Amount1000: amount1000},
	}
}

func DateTimeParameter(fallback string) Parameter {
	return Parameter{Type: ParameterDateTime, DateTime: &DateTime{FallbackValue: fallback}}
}

func (c *Component) validate(expected ComponentType) error {
	if c.Type != expected {
		return invalid(string(expected), fmt.Sprintf("%s component expected, got %q", expected, c.Type))
	}
	for i, p := range c.Parameters {
		field := fmt.Sprintf("%s.parameters[%d]", c.Type, i)
		if !allowedParameters[c.Type][p.Type] {
			return invalid(field, fmt.Sprintf("%s parameter not allowed in %s component", p.Type, c.Type))
		}
		if err := p.validate(field); err != nil {
			return err
		}
	}
	return nil
}

func (p Parameter) validate(field string) error {
	var value any
	switch p.Type {
	case ParameterText:
		if p.Text == "" {
			return required(field + ".text")
		}
		return nil
	case ParameterImage:
		value = p.Image
		if p.Image == nil {
			return required(field + ".image")
		}
	case ParameterVideo:
		value = p.Video
		if p.Video == nil {
			return required(field + ".video")
		}
	case ParameterDocument:
		value = p.Document
		if p.Document == nil {
			return required(field + ".document")
		}
	case ParameterLocation:
		if p.Location == nil {
			return required(field + ".location")
		}
		return nil
	case ParameterCurrency:
		value = p.Currency
		if p.Currency == nil {
			return required(field + ".currency")
		}
	case ParameterDateTime:
		if p.DateTime == nil {
			return required(field + ".date_time")
		}
		return nil
	default:
		return invalid(field, fmt.Sprintf("unknown parameter type %q", p.Type))
	}
	return Validate(value)
}
