package bundle

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// BuildOutcome is the typed enumeration of final workflow result states.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
)

// BuildReport captures metrics about one packaging run.
type BuildReport struct {
	RunID           string
	Start           time.Time
	End             time.Time
	Outcome         BuildOutcome
	StageDurations  map[StageName]time.Duration
	StageErrorKinds map[StageName]StageErrorKind
	StagesRun       []StageName // stages executed, in order

	MissingPackages   []string // packages that failed the import probe
	InstalledPackages []string // missing subset actually installed
	ArtifactPath      string
	ArtifactBytes     int64

	Errors []error // fatal errors causing workflow abortion (at most one today)
}

// NewBuildReport constructs an empty report with a fresh run ID.
func NewBuildReport() *BuildReport {
	return &BuildReport{
		RunID:           uuid.NewString(),
		Start:           time.Now(),
		StageDurations:  make(map[StageName]time.Duration),
		StageErrorKinds: make(map[StageName]StageErrorKind),
	}
}

func (r *BuildReport) recordStageSuccess(stage StageName) {
	r.StagesRun = append(r.StagesRun, stage)
}

func (r *BuildReport) recordStageError(stage StageName, se *StageError) {
	r.StagesRun = append(r.StagesRun, stage)
	r.StageErrorKinds[stage] = se.Kind
	r.Errors = append(r.Errors, se)
}

// Finish stamps the end time and derives the typed outcome.
func (r *BuildReport) Finish(err error) {
	r.End = time.Now()
	switch {
	case err == nil:
		r.Outcome = OutcomeSuccess
	case isCanceled(err):
		r.Outcome = OutcomeCanceled
	default:
		r.Outcome = OutcomeFailed
	}
}

// Duration is the wall-clock time of the run.
func (r *BuildReport) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

func isCanceled(err error) bool {
	var se *StageError
	return errors.As(err, &se) && se.Kind == StageErrorCanceled
}
