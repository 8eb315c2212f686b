package middleware

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chiku1101/druggs/internal/domain"
	"github.com/chiku1101/druggs/internal/ports"
)

// Logging decorates a collector with structured run logging. Successful
// runs log at debug; failures at warn, since a single collector failure
// only degrades the analysis.
func Logging(logger *logrus.Logger) ports.Middleware {
	return func(next ports.Collector) ports.Collector {
		return &loggingCollector{next: next, logger: logger}
	}
}

type loggingCollector struct {
	next   ports.Collector
	logger *logrus.Logger
}

func (c *loggingCollector) ID() domain.CollectorID { return c.next.ID() }

func (c *loggingCollector) Timeout() time.Duration { return c.next.Timeout() }

func (c *loggingCollector) Execute(ctx context.Context, subject, condition string) (domain.CategoryEvidence, error) {
	start := time.Now()
	evidence, err := c.next.Execute(ctx, subject, condition)

	entry := c.logger.WithFields(logrus.Fields{
		"collector": string(c.next.ID()),
		"elapsed":   time.Since(start).String(),
	})
	if err != nil {
		entry.WithError(err).Warn("collector run failed")
		return nil, err
	}
	entry.Debug("collector run completed")
	return evidence, nil
}
