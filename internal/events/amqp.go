package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	reconnectDelay = 5 * time.Second
	publishTimeout = 10 * time.Second
	maxAttempts    = 3
	mailboxSize    = 256
)

var errNotConnected = errors.New("not connected to a server")

// channel is the subset of *amqp.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// dialFunc opens a connection and a channel with the queue declared. The
// returned close function releases both.
type dialFunc func(addr, queue string) (channel, func() error, error)

func dialAMQP(addr, queue string) (channel, func() error, error) {
	conn, err := amqp.Dial(addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to dial broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to open channel: %w", err)
	}
	_, err = ch.QueueDeclare(
		queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, fmt.Errorf("failed to declare queue: %w", err)
	}
	return ch, conn.Close, nil
}

// AMQPPublisher publishes events to a queue from a single goroutine.
// Events are queued in a mailbox; when it is full new events are dropped.
type AMQPPublisher struct {
	addr   string
	queue  string
	dial   dialFunc
	logger *slog.Logger
	wg     sync.WaitGroup

	// mu guards mailbox against sends after Close.
	mu      sync.RWMutex
	mailbox chan Event
	closed  bool

	ch         channel
	closeConn  func() error
	failedDial time.Time
	now        func() time.Time
}

// NewAMQPPublisher starts a publisher for queue on the broker at addr.
// Connection is lazy and retried on failure.
func NewAMQPPublisher(addr, queue string, logger *slog.Logger) *AMQPPublisher {
	return newAMQPPublisher(addr, queue, logger, dialAMQP)
}

func newAMQPPublisher(addr, queue string, logger *slog.Logger, dial dialFunc) *AMQPPublisher {
	p := &AMQPPublisher{
		addr:    addr,
		queue:   queue,
		dial:    dial,
		logger:  logger,
		mailbox: make(chan Event, mailboxSize),
		now:     time.Now,
	}
	p.wg.Add(1)
	go p.run()
	return p
}

// Publish enqueues event. Events published after Close are dropped.
func (p *AMQPPublisher) Publish(_ context.Context, event Event) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.logger.Warn("Publisher closed, dropping event", "type", event.Type, "record_id", event.RecordID)
		return
	}
	select {
	case p.mailbox <- event:
	default:
		p.logger.Warn("Event mailbox full, dropping event", "type", event.Type, "record_id", event.RecordID)
	}
}

// Close drains queued events and disconnects. It is safe to call more
// than once.
func (p *AMQPPublisher) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.mailbox)
	}
	p.mu.Unlock()
	p.wg.Wait()
}

func (p *AMQPPublisher) run() {
	defer p.wg.Done()
	for event := range p.mailbox {
		p.handle(event)
	}
	p.disconnect()
}

func (p *AMQPPublisher) handle(event Event) {
	body, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to encode event", "type", event.Type, "error", err)
		return
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = p.push(body)
		if err == nil {
			p.logger.Debug("Event published", "type", event.Type, "record_id", event.RecordID)
			return
		}
		p.logger.Warn("Event publish failed", "type", event.Type, "attempt", attempt, "error", err)
		p.disconnect()
	}
	p.logger.Error("Dropping event after retries", "type", event.Type, "record_id", event.RecordID)
}

func (p *AMQPPublisher) push(body []byte) error {
	if err := p.connect(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	return p.ch.PublishWithContext(ctx,
		"",      // exchange
		p.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    p.now(),
			Body:         body,
		},
	)
}

// connect dials unless a dial failed less than reconnectDelay ago.
func (p *AMQPPublisher) connect() error {
	if p.ch != nil {
		return nil
	}
	if !p.failedDial.IsZero() && p.now().Sub(p.failedDial) < reconnectDelay {
		return errNotConnected
	}

	ch, closeConn, err := p.dial(p.addr, p.queue)
	if err != nil {
		p.failedDial = p.now()
		return err
	}
	p.failedDial = time.Time{}
	p.ch, p.closeConn = ch, closeConn
	p.logger.Info("Connected to message broker", "queue", p.queue)
	return nil
}

func (p *AMQPPublisher) disconnect() {
	if p.ch != nil {
		if err := p.ch.Close(); err != nil {
			p.logger.Debug("Error closing channel", "error", err)
		}
	}
	if p.closeConn != nil {
		if err := p.closeConn(); err != nil {
			p.logger.Debug("Error closing connection", "error", err)
		}
	}
	p.ch, p.closeConn = nil, nil
}
