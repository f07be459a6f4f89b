package dashboard

import (
	"encoding/binary"
	"hash/fnv"
	"sync"

	"github.com/google/uuid"

	"github.com/CauaPrates/organiza-ai-app/internal/domain/entity"
)

// Projector memoizes the last projection, keyed on a hash of its inputs.
// A hit returns the same View a fresh Project call would build.
type Projector struct {
	mu   sync.Mutex
	key  uint64
	view View
	ok   bool
}

// Project returns the memoized view when the inputs did not change.
func (p *Projector) Project(userID uuid.UUID, transactions []*entity.Transaction, q ViewQuery) View {
	key := inputHash(userID, transactions, q)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ok && p.key == key {
		return p.view
	}

	p.view = Project(userID, transactions, q)
	p.key = key
	p.ok = true
	return p.view
}

// Reset drops the memoized view.
func (p *Projector) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ok = false
	p.view = View{}
}

func inputHash(userID uuid.UUID, transactions []*entity.Transaction, q ViewQuery) uint64 {
	h := fnv.New64a()
	var buf [8]byte

	writeString := func(s string) {
		binary.BigEndian.PutUint64(buf[:], uint64(len(s)))
		h.Write(buf[:])
		h.Write([]byte(s))
	}

	h.Write(userID[:])
	writeString(q.Search)
	writeString(string(q.Type))
	writeString(q.Category)
	writeString(string(q.SortBy))
	writeString(string(q.SortOrder))

	for _, t := range transactions {
		if t == nil {
			continue
		}
		h.Write(t.ID[:])
		h.Write(t.UserID[:])
		binary.BigEndian.PutUint64(buf[:], uint64(t.UpdatedAt.UnixNano()))
		h.Write(buf[:])
		binary.BigEndian.PutUint64(buf[:], uint64(t.Date.UnixNano()))
		h.Write(buf[:])
		writeString(t.Description)
		writeString(t.Category)
		writeString(string(t.Type))
		writeString(t.Value.String())
	}

	return h.Sum64()
}
