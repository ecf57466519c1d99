package mailservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/rand"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/inkstone-dev/inkstone/internal/common"
)

func NewMailService(mb common.MessageConsumer, host, username, password, sender, contactInbox string, port int, logger *slog.Logger) *MailService {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:           mb,
		m:            NewMailer(host, port, username, password, sender, NewTemplate()),
		contactInbox: contactInbox,
		logger:       logger,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// SendWelcomeEmail consumes user.created events and mails each new account.
func (s *MailService) SendWelcomeEmail() {
	msgs, err := s.mb.Consume(common.UserCreatedKey, common.MailExchange, common.UserCreatedQueue)
	if err != nil {
		s.logger.Error("could not consume message", slog.String("error", err.Error()))
		return
	}

	go s.consume(msgs, func(body []byte) (string, any, string, error) {
		var data struct {
			Email string
			Name  string
		}

		if err := json.Unmarshal(body, &data); err != nil {
			return "", nil, "", err
		}

		payload := struct {
			Name string
		}{
			Name: data.Name,
		}

		return data.Email, payload, "welcome_email.html", nil
	})
}

// SendContactEmail consumes contact.message events and forwards them to the
// site inbox.
func (s *MailService) SendContactEmail() {
	msgs, err := s.mb.Consume(common.ContactMessageKey, common.MailExchange, common.ContactMessageQueue)
	if err != nil {
		s.logger.Error("could not consume message", slog.String("error", err.Error()))
		return
	}

	go s.consume(msgs, func(body []byte) (string, any, string, error) {
		var data struct {
			Name    string
			Email   string
			Message string
		}

		if err := json.Unmarshal(body, &data); err != nil {
			return "", nil, "", err
		}

		return s.contactInbox, data, "contact_email.html", nil
	})
}

// consume drains one delivery channel, mapping each message to a recipient,
// template data and template file, and sends with exponential backoff plus
// jitter.
func (s *MailService) consume(msgs <-chan amqp.Delivery, decode func(body []byte) (string, any, string, error)) {
	for {
		select {
		case msg, ok := <-msgs:
			if !ok {
				return
			}

			recipient, payload, templateFile, err := decode(msg.Body)
			if err != nil {
				s.logger.Error("could not unmarshal message", slog.String("error", err.Error()))
				continue
			}

			const maxRetries = 5
			const baseDelay = 500 * time.Millisecond

			var attempt int
			for attempt = 0; attempt < maxRetries; attempt++ {
				err = s.m.send(recipient, payload, templateFile)
				if err == nil {
					s.logger.Info("email sent", slog.String("email", recipient), slog.String("template", templateFile))
					msg.Ack(false)
					break
				}

				delay := time.Duration(rand.Int63n(int64(baseDelay) << uint(attempt)))
				s.logger.Info("delaying email", slog.String("email", recipient), slog.Int("attempt", attempt), slog.Duration("delay", delay))
				time.Sleep(delay)
			}

			if attempt == maxRetries {
				s.logger.Error("could not send email", slog.String("email", recipient))
				msg.Ack(false)
			}

		case <-s.ctx.Done():
			s.logger.Info("stopping mail consumer due to context cancellation")
			return
		}
	}
}

func (s *MailService) Close() {
	s.cancel()
}
