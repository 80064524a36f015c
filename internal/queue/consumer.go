package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// logMu serializes appends to the booking log across the two queue
// consumers.
var logMu sync.Mutex

// StartConsumer connects to RabbitMQ, declares the booking.confirmed
// and seat.released queues (durable), and consumes both, appending each
// message to logs/booking.log in a single-line, human-friendly format.
// It runs a reconnect loop with capped backoff and never returns under
// normal operation; processing errors are logged and the offending
// message rejected so the server keeps running.
func StartConsumer() {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(brokerURL())
		if err != nil {
			log.Printf("queue-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeAll(conn); err != nil {
			log.Printf("queue-consumer: consume loop ended: %v; reconnecting", err)
			_ = conn.Close()
			time.Sleep(2 * time.Second)
		}
	}
}

// consumeAll runs one consumer goroutine per queue over a shared
// connection and returns when either stops.
func consumeAll(conn *amqp.Connection) error {
	errCh := make(chan error, 2)
	go func() { errCh <- consumeQueue(conn, bookingConfirmedQueue, handleConfirmed) }()
	go func() { errCh <- consumeQueue(conn, seatReleasedQueue, handleReleased) }()
	return <-errCh
}

func consumeQueue(conn *amqp.Connection, name string, handle func([]byte) error) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("queue-consumer: set QoS failed: %v", err)
	}
	if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(name, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handle(d.Body); err != nil {
			log.Printf("queue-consumer: handle %s message failed: %v", name, err)
			_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func handleConfirmed(body []byte) error {
	var ev BookingConfirmedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	line := fmt.Sprintf("[%s] Booking confirmed | seat_id=%d | seat=%s | zone=%s | customer=%q | phone=%s | booking_date=%s\n",
		ev.ConfirmedAt, ev.SeatID, ev.SeatNumber, ev.Zone, ev.CustomerName, ev.CustomerPhone, ev.BookingDate)
	return appendLog(line)
}

func handleReleased(body []byte) error {
	var ev SeatReleasedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	line := fmt.Sprintf("[%s] Hold expired, seat released | seat_id=%d | seat=%s | zone=%s\n",
		ev.ReleasedAt, ev.SeatID, ev.SeatNumber, ev.Zone)
	return appendLog(line)
}

func appendLog(line string) error {
	logMu.Lock()
	defer logMu.Unlock()

	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	fpath := filepath.Join("logs", "booking.log")
	f, err := os.OpenFile(fpath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
