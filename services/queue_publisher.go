package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/yeremiapane/restaurant-tables/kds"
	"github.com/yeremiapane/restaurant-tables/utils"
)

const publishTimeout = 2 * time.Second

type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// QueuePublisher forwards floor events to a durable RabbitMQ queue so other
// systems (SMS reminders, reporting) can consume them. Failures are logged and
// never reach the caller.
type QueuePublisher struct {
	conn  *amqp.Connection
	queue string

	mu sync.Mutex // amqp channels are not safe for concurrent publishing
	ch amqpChannel
}

func NewQueuePublisher(url, queue string) (*QueuePublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &QueuePublisher{conn: conn, queue: queue, ch: ch}, nil
}

func (p *QueuePublisher) Broadcast(msg kds.Message) {
	body, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("rabbitmq: marshal %s failed: %v", msg.Event, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         msg.Event,
		Body:         body,
	}); err != nil {
		utils.ErrorLogger.Printf("rabbitmq: publish %s failed: %v", msg.Event, err)
	}
}

func (p *QueuePublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.Close(); err != nil {
		return err
	}
	if p.conn == nil {
		return nil
	}
	return p.conn.Close()
}

// Fanout sends every event to each of its broadcasters in order.
type Fanout []Broadcaster

func (f Fanout) Broadcast(msg kds.Message) {
	for _, b := range f {
		b.Broadcast(msg)
	}
}
