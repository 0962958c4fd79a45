package events

import (
	"context"
	"fmt"
	"time"

	"github.com/beka-birhanu/patrol-api/service/i"
	"github.com/nats-io/nats.go"
)

// Config holds NATS connection settings.
type Config struct {
	URL            string
	Name           string
	ReconnectWait  time.Duration
	MaxReconnects  int
	ConnectTimeout time.Duration
}

// NatsPublisher publishes events on core NATS subjects.
type NatsPublisher struct {
	conn   *nats.Conn
	logger i.Logger
}

// NewNatsPublisher connects to NATS and logs connection state changes.
func NewNatsPublisher(cfg Config, logger i.Logger) (*NatsPublisher, error) {
	opts := []nats.Option{
		nats.Name(cfg.Name),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.Timeout(cfg.ConnectTimeout),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warning(fmt.Sprintf("disconnected from NATS: %s", err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info(fmt.Sprintf("reconnected to NATS at %s", nc.ConnectedUrl()))
		}),
	}

	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NatsPublisher{conn: conn, logger: logger}, nil
}

// Publish sends payload on subject. Delivery is at most once.
func (p *NatsPublisher) Publish(ctx context.Context, subject string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.conn.Publish(subject, payload)
}

// Close flushes pending messages and closes the connection.
func (p *NatsPublisher) Close() error {
	err := p.conn.Drain()
	if err != nil {
		p.conn.Close()
	}
	return err
}
