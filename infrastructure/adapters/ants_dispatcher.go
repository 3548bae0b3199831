package adapters

import (
	"github.com/StudyXTeam23/aipodcast/application/ports/outbound"
	"github.com/panjf2000/ants/v2"
)

type antsDispatcher struct {
	pool *ants.Pool
}

// NewAntsDispatcher adapts the shared worker pool to the TaskDispatcher
// port. Every background pipeline run goes through it.
func NewAntsDispatcher(pool *ants.Pool) outbound.TaskDispatcher {
	return &antsDispatcher{pool: pool}
}

func (a *antsDispatcher) Submit(task func()) error {
	return a.pool.Submit(task)
}
