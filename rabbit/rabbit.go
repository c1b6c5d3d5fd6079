// Package rabbit is a thin wrapper around amqp091-go used by both the API
// server and the theme art worker. Publishing and consuming must use
// separate connections, and each concurrent task its own channel.
package rabbit

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Client struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func Connect(user, password, addr, vhost string) (*amqp.Connection, error) {
	return amqp.Dial(fmt.Sprintf("amqp://%s:%s@%s/%s", user, password, addr, vhost))
}

func NewClient(conn *amqp.Connection) (*Client, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	return &Client{
		conn: conn,
		ch:   ch,
	}, nil
}

// NewQueueClient declares the queue and returns a client on a fresh channel.
func NewQueueClient(conn *amqp.Connection, queue string, durable, autoDelete bool) (*Client, error) {
	client, err := NewClient(conn)
	if err != nil {
		return nil, err
	}

	if _, err := client.ch.QueueDeclare(queue, durable, autoDelete, false, false, nil); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}

func (c *Client) Close() error {
	return c.ch.Close()
}

// CreateBinding declares the direct exchange if needed and binds the queue
// to it under the given routing key.
func (c *Client) CreateBinding(queue, routingKey, exchange string) error {
	if err := c.ch.ExchangeDeclare(exchange, "direct", true, false, false, false, nil); err != nil {
		return err
	}

	return c.ch.QueueBind(queue, routingKey, exchange, false, nil)
}

func (c *Client) Consume(queue, consumer string, autoAck bool) (<-chan amqp.Delivery, error) {
	return c.ch.Consume(queue, consumer, autoAck, false, false, false, nil)
}

func (c *Client) Send(ctx context.Context, exchange, routingKey string, msg amqp.Publishing) error {
	return c.ch.PublishWithContext(ctx, exchange, routingKey, false, false, msg)
}
