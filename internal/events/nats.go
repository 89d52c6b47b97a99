package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const subjectPrefix = "truthrecruit."

// Subject maps an event type to its NATS subject:
// "analysis_completed" -> "truthrecruit.analysis.completed".
func Subject(typ string) string {
	return subjectPrefix + strings.ReplaceAll(typ, "_", ".")
}

type NATS struct {
	nc     *nats.Conn
	logger *zap.Logger
}

func NewNATS(url string, logger *zap.Logger) (*NATS, error) {
	opts := []nats.Option{
		nats.Name("truthrecruit-engine"),
		nats.Timeout(5 * time.Second),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect nats %s: %w", url, err)
	}
	return &NATS{nc: nc, logger: logger.Named("nats")}, nil
}

func (n *NATS) Publish(_ context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	subject := Subject(e.Type)
	if err := n.nc.Publish(subject, data); err != nil {
		n.logger.Error("failed to publish event",
			zap.String("subject", subject),
			zap.Error(err))
		return fmt.Errorf("publish %s: %w", subject, err)
	}

	n.logger.Debug("published event",
		zap.String("subject", subject),
		zap.String("request_id", e.RequestID))
	return nil
}

func (n *NATS) Close() {
	if n.nc != nil {
		_ = n.nc.Drain()
	}
}
