package rabbitmq

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

// RegistrationQueue — очередь уведомлений о регистрации новых пользователей.
const (
	RegistrationQueue      = "notifications.registration"
	RegistrationRoutingKey = "registered"
)

// RegistrationMessage — сообщение для отправки письма с подтверждением email.
type RegistrationMessage struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	VerificationToken string `json:"verification_token"`
}

// Publisher публикует события сервиса в exchange "notifications".
type Publisher struct {
	ch *amqp.Channel
}

func NewPublisher(ch *amqp.Channel) *Publisher {
	return &Publisher{ch: ch}
}

// PublishRegistration публикует уведомление о регистрации пользователя.
func (p *Publisher) PublishRegistration(msg RegistrationMessage) error {
	const op = "rabbitmq.PublishRegistration"

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = p.ch.Publish(
		"notifications",
		RegistrationRoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
