package passwordresetemail

import (
	e "billstation/internal/core/domain/errors"
	"billstation/internal/core/domain/logging"
	"billstation/internal/core/domain/user"
	"billstation/internal/rabbitmq"
	"billstation/internal/rabbitmq/schema"
	"context"

	"github.com/rabbitmq/amqp091-go"
)

// RabbitMQ implements user.PasswordResetTokenSender by handing the
// token off to the email worker queue.
type RabbitMQ struct {
	log        logging.Logger
	channel    *rabbitmq.Channel
	exchange   string
	routingKey string
}

func NewRabbitMQ(log logging.Logger, channel *rabbitmq.Channel, exchange string, routingKey string) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	return &RabbitMQ{log: log, channel: channel, exchange: exchange, routingKey: routingKey}
}

func (s *RabbitMQ) SendPasswordResetToken(
	ctx context.Context,
	u user.User,
	token user.PasswordResetToken,
) error {
	message := schema.PasswordResetEmail{UserID: int64(u.ID), Token: string(token)}
	body, err := message.Marshal()
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", u.ID))
		return err
	}

	err = s.channel.PublishWithContext(ctx, s.exchange, s.routingKey, false, false, amqp091.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", u.ID))
		return err
	}
	s.log.Info(
		ctx,
		"AMQP message has been successfully published.",
		logging.Entry("exchange", s.exchange),
		logging.Entry("RK", s.routingKey),
		logging.Entry("userID", u.ID),
	)
	return nil
}
