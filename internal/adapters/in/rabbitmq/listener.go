package rabbitmq

import (
	"context"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suchimauz/pet-clinic-core/internal/config"
	"github.com/suchimauz/pet-clinic-core/internal/core/ports/in"
	"github.com/suchimauz/pet-clinic-core/internal/core/ports/out"
)

// MembershipEventListener сбрасывает кэш карточек участников по событиям из брокера
type MembershipEventListener struct {
	conn       *amqp.Connection
	channel    *amqp.Channel
	useCase    in.MembershipUseCase
	cfg        *config.Config
	logger     out.LoggerPort
	consumerWg sync.WaitGroup
}

func NewMembershipEventListener(useCase in.MembershipUseCase, cfg *config.Config, logger out.LoggerPort) (*MembershipEventListener, error) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return newMembershipEventListener(useCase, cfg, logger, conn, channel), nil
}

func newMembershipEventListener(useCase in.MembershipUseCase, cfg *config.Config, logger out.LoggerPort, conn *amqp.Connection, channel *amqp.Channel) *MembershipEventListener {
	return &MembershipEventListener{
		conn:    conn,
		channel: channel,
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}
}

func (l *MembershipEventListener) Start(ctx context.Context) error {
	exchangeName := l.cfg.RabbitMQ.Exchange

	// Объявляем обменник, если его нет
	var err error
	for attempts := 0; attempts < 3; attempts++ {
		err = l.channel.ExchangeDeclare(
			exchangeName, // имя обменника
			"topic",      // тип обменника
			true,         // durable
			false,        // auto-delete
			false,        // internal
			false,        // no-wait
			nil,          // аргументы
		)
		if err == nil {
			break
		}

		l.logger.Warn("rabbitmq.exchange_declare.retry", out.LogFields{
			"exchange": exchangeName,
			"attempt":  attempts + 1,
			"error":    err.Error(),
		})
		time.Sleep(500 * time.Millisecond)
	}
	if err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", exchangeName, err)
	}

	queue, err := l.channel.QueueDeclare(
		l.cfg.RabbitMQ.Queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", l.cfg.RabbitMQ.Queue, err)
	}

	if err := l.channel.QueueBind(queue.Name, l.cfg.RabbitMQ.Bind, exchangeName, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue %s: %w", queue.Name, err)
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to consume from queue %s: %w", queue.Name, err)
	}

	l.consumerWg.Add(1)
	go l.consume(ctx, queue.Name, msgs)

	l.logger.Info("rabbitmq.consumer.started", out.LogFields{
		"queue": queue.Name,
		"bind":  l.cfg.RabbitMQ.Bind,
	})

	return nil
}

func (l *MembershipEventListener) consume(ctx context.Context, queueName string, msgs <-chan amqp.Delivery) {
	defer l.consumerWg.Done()

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("rabbitmq.consumer.stopping_by_context", out.LogFields{
				"queue": queueName,
			})
			return
		case msg, ok := <-msgs:
			if !ok {
				l.logger.Warn("rabbitmq.consumer.channel_closed", out.LogFields{
					"queue": queueName,
				})
				return
			}

			// Подтверждаем получение сообщения только после успешной обработки
			if err := l.handleEvent(ctx, msg.RoutingKey, msg.Body); err != nil {
				l.logger.Error("rabbitmq.process_message.failed", out.LogFields{
					"queue":      queueName,
					"routingKey": msg.RoutingKey,
					"messageId":  msg.MessageId,
					"error":      err.Error(),
				})

				// Битое сообщение в очередь не возвращаем
				if err := msg.Nack(false, false); err != nil {
					l.logger.Error("rabbitmq.message.nack_failed", out.LogFields{
						"error": err.Error(),
					})
				}
				continue
			}

			if err := msg.Ack(false); err != nil {
				l.logger.Error("rabbitmq.message.ack_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}
	}
}

func (l *MembershipEventListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	if err := l.channel.Close(); err != nil {
		return err
	}
	l.consumerWg.Wait()
	return l.conn.Close()
}
