package passwordresetemail

import (
	e "billstation/internal/core/domain/errors"
	"billstation/internal/core/domain/logging"
	"billstation/internal/core/domain/user"
	"billstation/internal/core/services"
	sendpasswordresetemail "billstation/internal/core/services/send_password_reset_email"
	"billstation/internal/rabbitmq"
	"billstation/internal/rabbitmq/schema"
	"context"

	"github.com/rabbitmq/amqp091-go"
)

type Consumer struct {
	log     logging.Logger
	channel *rabbitmq.Channel
	queue   string
	service services.Service[sendpasswordresetemail.Input, sendpasswordresetemail.Result]
}

func New(
	log logging.Logger,
	channel *rabbitmq.Channel,
	queue string,
	service services.Service[sendpasswordresetemail.Input, sendpasswordresetemail.Result],
) *Consumer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}

	return &Consumer{log: log, channel: channel, queue: queue, service: service}
}

func (c *Consumer) Consume() error {
	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		c.log.Error(context.Background(), "Could not start consuming.", logging.Entry("err", err))
		return err
	}

	go func() {
		for delivery := range deliveries {
			message := &schema.PasswordResetEmail{}
			if err := message.Unmarshal(delivery.Body); err != nil {
				c.log.Error(
					context.Background(),
					"Could not unmarshal password reset email message.",
					logging.Entry("err", err),
				)
				c.Ack(delivery)
				continue
			}

			c.log.Info(
				context.Background(),
				"Got password reset email message.",
				logging.Entry("userID", message.UserID),
			)
			_, err := c.service.Run(
				context.Background(),
				sendpasswordresetemail.Input{
					UserID: user.ID(message.UserID),
					Token:  user.PasswordResetToken(message.Token),
				},
			)
			if err != nil {
				c.log.Error(
					context.Background(),
					"Could not send password reset email, service returned an error.",
					logging.Entry("userID", message.UserID),
					logging.Entry("err", err),
				)
			}
			c.Ack(delivery)
		}
	}()
	return nil
}

func (c *Consumer) Ack(delivery amqp091.Delivery) {
	if err := delivery.Ack(true); err != nil {
		c.log.Error(context.Background(), "Could not ACK AMQP message.", logging.Entry("err", err))
	}
}
