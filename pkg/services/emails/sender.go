package emails

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/StricklySoft/jaunts-core/pkg/clock"
	"github.com/StricklySoft/jaunts-core/pkg/models"
)

// LogSender is a Sender that accepts every message and logs its envelope.
// The body is not logged. It stands in for a mail transport in local
// setups.
type LogSender struct {
	logger *slog.Logger
	clock  clock.Clock
}

var _ Sender = (*LogSender)(nil)

// NewLogSender returns a LogSender writing to logger.
func NewLogSender(logger *slog.Logger, clk clock.Clock) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger, clock: clk}
}

// Send logs mail and returns a receipt with a random message id.
func (s *LogSender) Send(ctx context.Context, mail models.Mail) (models.MailReceipt, error) {
	receipt := models.MailReceipt{MessageID: uuid.NewString(), AcceptedAt: s.clock.Now()}
	s.logger.InfoContext(ctx, "mail accepted",
		slog.String("message_id", receipt.MessageID),
		slog.String("to", mail.To),
		slog.String("from", mail.From),
		slog.String("subject", mail.Subject),
	)
	return receipt, nil
}
