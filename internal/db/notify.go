package db

import (
	"context"
	"strconv"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// ExchangeChannel is the Postgres NOTIFY channel raised whenever an exchange
// is appended to a patient's conversation log.  The payload is the patient id.
const ExchangeChannel = "chat_exchange"

// ExchangeListener subscribes to exchange-append notifications so external
// consumers (audit trails, care-team alerting) can react without polling.
type ExchangeListener struct {
	listener *pq.Listener
	log      *zap.Logger
}

// NewExchangeListener opens a dedicated listening connection to the database.
func NewExchangeListener(dsn string, log *zap.Logger) (*ExchangeListener, error) {
	l := pq.NewListener(dsn, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Warn("exchange listener event", zap.Int("event", int(ev)), zap.Error(err))
		}
	})
	if err := l.Listen(ExchangeChannel); err != nil {
		_ = l.Close()
		return nil, err
	}
	return &ExchangeListener{listener: l, log: log}, nil
}

// Run blocks, delivering patient ids on the returned channel until ctx is
// cancelled.  Malformed payloads are logged and dropped.
func (e *ExchangeListener) Run(ctx context.Context) <-chan int64 {
	out := make(chan int64)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case n, ok := <-e.listener.Notify:
				if !ok {
					return
				}
				if n == nil {
					// Reconnect notification from the driver.
					continue
				}
				patientID, err := strconv.ParseInt(n.Extra, 10, 64)
				if err != nil {
					e.log.Warn("bad exchange notification payload", zap.String("payload", n.Extra))
					continue
				}
				select {
				case out <- patientID:
				case <-ctx.Done():
					return
				}
			case <-time.After(90 * time.Second):
				// Keep the connection honest during idle periods.
				go func() { _ = e.listener.Ping() }()
			}
		}
	}()
	return out
}

// Close tears down the listening connection.
func (e *ExchangeListener) Close() error {
	return e.listener.Close()
}
