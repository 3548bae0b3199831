package inbound

import (
	"context"

	"github.com/StudyXTeam23/aipodcast/domain"
)

// PipelineRunnerPort executes one Job to its terminal state. Run never
// returns an error: failures are recorded on the Job record and observable
// only by polling it.
type PipelineRunnerPort interface {
	Run(ctx context.Context, job domain.Job)
}
