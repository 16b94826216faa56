package consumers

import (
	"billstation/internal/app/deps"
	"billstation/internal/app/services"
	dl "billstation/internal/core/domain/logging"
	passwordresetemail "billstation/internal/rabbitmq/consumers/password_reset_email"
	"context"
)

func initPasswordResetEmailConsumer(deps *deps.Deps, services *services.Services) func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	queue := deps.Config.RabbitmqPasswordResetEmailQueue
	passwordResetEmailConsumer := passwordresetemail.New(
		deps.Logger,
		rabbitmqChannel,
		queue,
		services.SendPasswordResetEmail,
	)
	if err = passwordResetEmailConsumer.Consume(); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not start RabbitMQ consuming.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	deps.Logger.Info(context.Background(), "Consumer has started.", dl.Entry("queue", queue))
	return func() { rabbitmqChannel.Close() }
}

func InitConsumers(deps *deps.Deps, services *services.Services) func() {
	shutdownPasswordResetEmailConsumer := initPasswordResetEmailConsumer(deps, services)

	return func() {
		shutdownPasswordResetEmailConsumer()
	}
}
