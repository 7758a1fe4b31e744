// Package whatsapp is a client for the WhatsApp Cloud API messages endpoint.
//
// A Client builds a message document, posts it with bearer authentication and classifies the
// reply:
//
//	client, err := whatsapp.NewClient(whatsapp.Config{APIToken: token, PhoneNumberID: id})
//	result, err := client.Send(ctx, message.KindText, message.Params{To: "15551234567", Text: "hi"})
//
// API errors in the 4xx range come back as a *response.Result of kind api_error; 5xx replies
// are returned as *response.ServerError.
package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/popeskul/wacloud/pkg/whatsapp/message"
	"github.com/popeskul/wacloud/pkg/whatsapp/response"
	"github.com/popeskul/wacloud/pkg/whatsapp/transport"
)

// SDKVersion is reported in the User-Agent header.
const SDKVersion = "0.1.0"

const messagesPath = "messages"

//go:generate mockgen -source=client.go -destination=mocks/mock_transport.go -package=mocks

// Transport performs raw exchanges. *transport.Transport satisfies it.
type Transport interface {
	Get(ctx context.Context, rawURL string, headers http.Header, params url.Values) (*transport.Response, error)
	PostJSON(ctx context.Context, rawURL string, headers http.Header, body any) (*transport.Response, error)
	PostForm(ctx context.Context, rawURL string, headers http.Header, form url.Values) (*transport.Response, error)
}

// Client is safe for concurrent use.
type Client struct {
	cfg        Config
	base       http.Header
	transport  Transport
	classifier response.Classifier
	logger     *zap.Logger
}

func NewClient(cfg Config, opts ...Option) (*Client, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	base := http.Header{}
	base.Set("User-Agent", fmt.Sprintf("wacloud-go/%s go/%s", SDKVersion, strings.TrimPrefix(runtime.Version(), "go")))
	base.Set("Accept", "application/json")

	return &Client{
		cfg:        cfg,
		base:       base,
		transport:  o.buildTransport(cfg),
		classifier: response.Classifier{Host: cfg.Host, StrictDecode: cfg.StrictDecode},
		logger:     o.logger,
	}, nil
}

// Send builds a free-form message of the given kind and posts it.
func (c *Client) Send(ctx context.Context, kind message.Kind, p message.Params) (*response.Result, error) {
	msg, err := message.Build(kind, p)
	if err != nil {
		return nil, err
	}
	return c.SendMessage(ctx, msg)
}

// SendTemplate builds a template message and posts it.
func (c *Client) SendTemplate(ctx context.Context, p message.TemplateParams) (*response.Result, error) {
	msg, err := message.BuildTemplate(p)
	if err != nil {
		return nil, err
	}
	return c.SendMessage(ctx, msg)
}

// SendMessage posts an already built document to the messages endpoint.
func (c *Client) SendMessage(ctx context.Context, msg *message.OutboundMessage) (*response.Result, error) {
	if msg == nil {
		return nil, errors.New("message is nil")
	}
	return c.Post(ctx, messagesPath, msg)
}

// MarkAsRead marks an inbound message as read.
func (c *Client) MarkAsRead(ctx context.Context, messageID string) (*response.Result, error) {
	receipt, err := message.NewReadReceipt(messageID)
	if err != nil {
		return nil, err
	}
	return c.Post(ctx, messagesPath, receipt)
}

// Get issues a GET against a path relative to the phone number node.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (*response.Result, error) {
	target := c.url(path)
	c.logger.Debug("Sending GET request", zap.String("url", target))

	resp, err := c.transport.Get(ctx, target, c.headers(), params)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", path, err)
	}
	return c.classify(resp)
}

// Post sends body as JSON to a path relative to the phone number node.
func (c *Client) Post(ctx context.Context, path string, body any) (*response.Result, error) {
	target := c.url(path)
	c.logger.Debug("Sending POST request", zap.String("url", target))

	resp, err := c.transport.PostJSON(ctx, target, c.headers(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to post %s: %w", path, err)
	}
	return c.classify(resp)
}

// PostForm sends form url-encoded to a path relative to the phone number node.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values) (*response.Result, error) {
	target := c.url(path)
	c.logger.Debug("Sending form POST request", zap.String("url", target))

	resp, err := c.transport.PostForm(ctx, target, c.headers(), form)
	if err != nil {
		return nil, fmt.Errorf("failed to post %s: %w", path, err)
	}
	return c.classify(resp)
}

// MessagesURL returns the endpoint messages are posted to.
func (c *Client) MessagesURL() string {
	return c.url(messagesPath)
}

func (c *Client) url(path string) string {
	u := url.URL{
		Scheme: c.cfg.Scheme,
		Host:   c.cfg.Host,
		Path:   "/" + c.cfg.Version + "/" + c.cfg.PhoneNumberID + "/" + strings.TrimPrefix(path, "/"),
	}
	return u.String()
}

// headers returns a fresh header set for one request.
func (c *Client) headers() http.Header {
	h := c.base.Clone()
	h.Set("Authorization", "Bearer "+c.cfg.APIToken)
	return h
}

func (c *Client) classify(resp *transport.Response) (*response.Result, error) {
	c.logger.Debug("Received response",
		zap.Int("status", resp.StatusCode),
		zap.Any("headers", resp.Header))

	result, err := c.classifier.Classify(resp.StatusCode, resp.Body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.logger.Warn("Authentication error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", resp.Body))
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		c.logger.Warn("Client error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", resp.Body))
	case resp.StatusCode >= 500 && resp.StatusCode < 600:
		c.logger.Warn("Server error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", resp.Body))
	}

	if err != nil {
		return nil, err
	}
	if result.Kind == response.KindEmpty {
		c.logger.Debug("Response body could not be decoded", zap.Int("status", resp.StatusCode))
	}
	return result, nil
}
