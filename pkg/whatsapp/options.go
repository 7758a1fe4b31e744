package whatsapp

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/popeskul/wacloud/pkg/whatsapp/transport"
)

type Option func(*options)

type options struct {
	logger     *zap.Logger
	httpClient *http.Client
	transport  Transport
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithHTTPClient makes the default transport use c. Timeout and pool size from Config are then
// the caller's responsibility.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithTransport replaces the HTTP transport entirely.
func WithTransport(t Transport) Option {
	return func(o *options) {
		o.transport = t
	}
}

func (o *options) buildTransport(cfg Config) Transport {
	if o.transport != nil {
		return o.transport
	}
	var opts []transport.Option
	if o.httpClient != nil {
		opts = append(opts, transport.WithHTTPClient(o.httpClient))
	}
	return transport.New(transport.Config{
		Timeout:    cfg.Timeout,
		PoolSize:   cfg.PoolSize,
		MaxRetries: cfg.MaxRetries,
	}, o.logger, opts...)
}
