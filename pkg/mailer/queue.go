package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// QueuePublisher hands emails to RabbitMQ for delivery by a Worker. The
// connection is opened lazily and re-opened after a failed publish.
type QueuePublisher struct {
	url   string
	queue string
	log   *zap.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewQueuePublisher(url, queue string, log *zap.Logger) *QueuePublisher {
	return &QueuePublisher{
		url:   url,
		queue: queue,
		log:   log.With(zap.String("mailer", "queue"), zap.String("queue", queue)),
	}
}

func (p *QueuePublisher) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal mail job: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		p.log.Warn("Publish failed, dropping connection", zap.Error(err))
		p.reset()
		return fmt.Errorf("publish mail job: %w", err)
	}

	return nil
}

// channel returns an open channel, dialing the broker if needed. Callers hold p.mu.
func (p *QueuePublisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.reset()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", p.queue, err)
	}

	p.conn, p.ch = conn, ch
	return ch, nil
}

func (p *QueuePublisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

func (p *QueuePublisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
}

// Worker consumes mail jobs and delivers them through a Sender.
type Worker struct {
	url    string
	queue  string
	sender Sender
	log    *zap.Logger

	// retryDelay is the pause before a failed job goes back on the queue.
	retryDelay time.Duration
}

func NewWorker(url, queue string, sender Sender, log *zap.Logger) *Worker {
	return &Worker{
		url:        url,
		queue:      queue,
		sender:     sender,
		log:        log.With(zap.String("component", "mail-worker"), zap.String("queue", queue)),
		retryDelay: 5 * time.Second,
	}
}

// Run consumes until ctx is cancelled, reconnecting with exponential backoff.
func (w *Worker) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(w.url)
		if err != nil {
			w.log.Warn("Failed to dial broker", zap.Error(err), zap.Duration("retry_in", backoff))
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = w.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}

		w.log.Warn("Consume loop ended, reconnecting", zap.Error(err))
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (w *Worker) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(10, 0, false); err != nil {
		w.log.Warn("Set QoS failed", zap.Error(err))
	}

	if _, err := ch.QueueDeclare(w.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	deliveries, err := ch.Consume(w.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	w.log.Info("Mail worker consuming")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			w.process(ctx, d)
		}
	}
}

// process delivers one job. Jobs that can never be sent are dropped, any
// other failure puts the job back on the queue after retryDelay.
func (w *Worker) process(ctx context.Context, d amqp.Delivery) {
	err := w.handle(ctx, d.Body)
	switch {
	case err == nil:
		_ = d.Ack(false)
	case errors.Is(err, ErrInvalidMessage):
		w.log.Error("Dropping undeliverable mail job", zap.Error(err))
		_ = d.Nack(false, false)
	default:
		w.log.Warn("Mail delivery failed, requeueing", zap.Error(err), zap.Duration("retry_in", w.retryDelay))
		sleep(ctx, w.retryDelay)
		_ = d.Nack(false, true)
	}
}

func (w *Worker) handle(ctx context.Context, body []byte) error {
	var msg Message
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("%w: unmarshal: %v", ErrInvalidMessage, err)
	}
	if msg.To == "" {
		return fmt.Errorf("%w: no recipient", ErrInvalidMessage)
	}

	sendCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	return w.sender.Send(sendCtx, msg)
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
