package notify

import (
	"context"

	"github.com/jmehdipour/customers-api/internal/metrics"
	"github.com/jmehdipour/customers-api/internal/model"
	"go.uber.org/zap"
)

// Notifier sends the welcome email for newly created customers.
type Notifier struct {
	factory MessageFactory
	sender  Sender
	from    string
	subject string
	log     *zap.Logger
}

func NewNotifier(factory MessageFactory, sender Sender, from, subject string, log *zap.Logger) *Notifier {
	return &Notifier{
		factory: factory,
		sender:  sender,
		from:    from,
		subject: subject,
		log:     log,
	}
}

// SendWelcome renders and sends the welcome email. Send errors are returned
// as is.
func (n *Notifier) SendWelcome(ctx context.Context, c model.Customer) error {
	body := n.factory.WelcomeMessage(c)

	n.log.Info("attempting to send email",
		zap.String("to", c.EmailAddress),
		zap.String("from", n.from),
		zap.String("subject", n.subject),
	)

	if err := n.sender.Send(ctx, n.from, c.EmailAddress, n.subject, body); err != nil {
		metrics.WelcomeEmailsTotal.WithLabelValues("failed").Inc()
		return err
	}
	metrics.WelcomeEmailsTotal.WithLabelValues("sent").Inc()
	return nil
}
