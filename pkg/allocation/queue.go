package allocation

import (
	"sort"

	"github.com/nordicwms/allokera/pkg/domain/entities"
)

// unitQueue is a per-article FIFO queue of buffer units, ordered by
// received timestamp ascending (missing timestamps last) with source id
// as tiebreak. Queues are owned by the engine for the duration of one
// run; no state crosses article boundaries.
type unitQueue struct {
	units []entities.BufferUnit
}

func (q *unitQueue) head() *entities.BufferUnit {
	if q == nil || len(q.units) == 0 {
		return nil
	}
	return &q.units[0]
}

func (q *unitQueue) drop() {
	if len(q.units) > 0 {
		q.units = q.units[1:]
	}
}

// buildQueues groups buffer units by article into FIFO queues
func buildQueues(units []entities.BufferUnit) map[string]*unitQueue {
	queues := make(map[string]*unitQueue)
	for _, u := range units {
		q, ok := queues[u.Article]
		if !ok {
			q = &unitQueue{}
			queues[u.Article] = q
		}
		q.units = append(q.units, u)
	}
	for _, q := range queues {
		sortFIFO(q.units)
	}
	return queues
}

// sortFIFO orders units by received timestamp, source id as tiebreak
func sortFIFO(units []entities.BufferUnit) {
	sort.SliceStable(units, func(i, j int) bool {
		ti, tj := units[i].ReceivedOrder(), units[j].ReceivedOrder()
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return units[i].SourceID < units[j].SourceID
	})
}
