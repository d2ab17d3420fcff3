// Package sessionsweep removes expired bearer sessions in the background.
package sessionsweep

import (
	"context"
	"sync"
	"time"

	"github.com/luminahq/lumina/core/repositories/usersessionsrepo"
	"github.com/luminahq/lumina/infrastructure/workers"
	"github.com/luminahq/lumina/sdk/logger"
)

// checkoutBatchSize bounds one ListExpired fetch.
const checkoutBatchSize = 50

// SweepTask is one expired session to remove.
type SweepTask struct {
	Session usersessionsrepo.UserSession
}

// GetID implements the workers.Task interface.
func (t SweepTask) GetID() string {
	return t.Session.SessionID
}

// SessionStore is the slice of the sessions repository the sweeper needs.
type SessionStore interface {
	ListExpired(ctx context.Context, before time.Time, limit int) ([]usersessionsrepo.UserSession, error)
	Delete(ctx context.Context, sessionID string) error
}

// Processor implements workers.Processor over expired session rows. A
// fetched batch is handed out one row at a time; in-flight ids are tracked
// so concurrent workers never check out the same row.
type Processor struct {
	log      *logger.Logger
	sessions SessionStore

	mu       sync.Mutex
	batch    []usersessionsrepo.UserSession
	inFlight map[string]bool
}

// NewProcessor creates a sweep processor over the session store.
func NewProcessor(log *logger.Logger, sessions SessionStore) *Processor {
	return &Processor{
		log:      log,
		sessions: sessions,
		inFlight: make(map[string]bool),
	}
}

// Checkout hands the next expired session to a worker.
func (p *Processor) Checkout(ctx context.Context, workerID string) (SweepTask, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.batch) == 0 {
		expired, err := p.sessions.ListExpired(ctx, time.Now(), checkoutBatchSize)
		if err != nil {
			return SweepTask{}, err
		}

		for _, session := range expired {
			if !p.inFlight[session.SessionID] {
				p.batch = append(p.batch, session)
			}
		}
	}

	if len(p.batch) == 0 {
		return SweepTask{}, workers.ErrNoWorkAvailable
	}

	session := p.batch[0]
	p.batch = p.batch[1:]
	p.inFlight[session.SessionID] = true

	return SweepTask{Session: session}, nil
}

// Process deletes the expired session row.
func (p *Processor) Process(ctx context.Context, task SweepTask) (SweepTask, error) {
	if err := p.sessions.Delete(ctx, task.Session.SessionID); err != nil {
		return task, err
	}
	return task, nil
}

// Complete releases the row after a successful delete.
func (p *Processor) Complete(ctx context.Context, task SweepTask, processingTimeMS int) error {
	p.release(task)
	p.log.InfoContext(ctx, "expired session purged",
		"session_id", task.Session.SessionID,
		"user_id", task.Session.UserID,
		"processing_ms", processingTimeMS)
	return nil
}

// Fail releases the row so a later sweep can retry it.
func (p *Processor) Fail(ctx context.Context, task SweepTask, err error) error {
	p.release(task)
	p.log.ErrorContext(ctx, "expired session purge failed",
		"session_id", task.Session.SessionID,
		"err", err)
	return nil
}

func (p *Processor) release(task SweepTask) {
	p.mu.Lock()
	delete(p.inFlight, task.Session.SessionID)
	p.mu.Unlock()
}
