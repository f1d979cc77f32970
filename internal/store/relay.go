package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/gastroflow/gastroflow/internal/model"
)

const relayKey = "gastroflow:pending_draft"

// Relay stages an in-progress reservation draft across an authentication
// interruption: the booking form stores its fields here before sending the
// guest to log in, then consumes them exactly once afterwards.  When a
// Redis client is available the draft survives process restarts; otherwise
// it lives in memory.  Losing a draft is never fatal.
type Relay struct {
	mu    sync.Mutex
	rdb   *redis.Client
	draft *model.PendingDraft
	log   *zap.Logger
}

// NewRelay builds a relay.  rdb may be nil, which selects the in-memory
// fallback.
func NewRelay(rdb *redis.Client, log *zap.Logger) *Relay {
	return &Relay{rdb: rdb, log: log}
}

// Stage stores the draft, overwriting any previously staged one.
func (r *Relay) Stage(ctx context.Context, draft model.PendingDraft) {
	if r.rdb != nil {
		body, err := json.Marshal(draft)
		if err == nil {
			if err = r.rdb.Set(ctx, relayKey, body, 0).Err(); err == nil {
				// Redis holds the draft now.  A fallback left over from an
				// earlier outage must not resurface on a later Consume.
				r.mu.Lock()
				r.draft = nil
				r.mu.Unlock()
				return
			}
		}
		r.log.Warn("relay falling back to memory", zap.Error(err))
	}
	r.mu.Lock()
	d := draft
	r.draft = &d
	r.mu.Unlock()
}

// Consume returns the staged draft and deletes it in one step.  The second
// call for the same draft reports no draft, which is expected rather than
// exceptional.
func (r *Relay) Consume(ctx context.Context) (model.PendingDraft, bool) {
	if r.rdb != nil {
		body, err := r.rdb.GetDel(ctx, relayKey).Bytes()
		if err == nil {
			var d model.PendingDraft
			if json.Unmarshal(body, &d) == nil {
				return d, true
			}
		} else if err != redis.Nil {
			r.log.Warn("relay redis read failed", zap.Error(err))
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.draft == nil {
		return model.PendingDraft{}, false
	}
	d := *r.draft
	r.draft = nil
	return d, true
}
