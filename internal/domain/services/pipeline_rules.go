// Package services provides domain services that enforce business rules
// spanning multiple entities.
package services

import (
	"fmt"

	"github.com/blindcal/blindcal-go/internal/domain/entities/dating"
)

// PipelineRules validates candidate stage transitions. The transition graph
// and the actor guards live here so repositories and handlers stay dumb.
type PipelineRules struct{}

// NewPipelineRules creates the pipeline rules service
func NewPipelineRules() *PipelineRules {
	return &PipelineRules{}
}

// stageGraph maps each stage to the stages it may move to.
var stageGraph = map[dating.PipelineStage][]dating.PipelineStage{
	dating.StageNew:       {dating.StageScreening, dating.StageRejected, dating.StageArchived},
	dating.StageScreening: {dating.StageProposed, dating.StageRejected, dating.StageArchived},
	dating.StageProposed:  {dating.StageApproved, dating.StageRejected},
	dating.StageApproved:  {dating.StageScheduled, dating.StageRejected, dating.StageArchived},
	dating.StageScheduled: {dating.StageCompleted, dating.StageApproved, dating.StageArchived},
	dating.StageCompleted: {dating.StageArchived},
	dating.StageRejected:  {dating.StageArchived},
	dating.StageArchived:  {},
}

// CanTransition reports whether the pipeline graph allows moving from one
// stage to another.
func (r *PipelineRules) CanTransition(from, to dating.PipelineStage) bool {
	for _, next := range stageGraph[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AuthorizeTransition checks that the actor is allowed to perform the
// transition. The single always decides their own pipeline; a wingman's
// reach depends on the delegation's trust level. The proposed stage exists
// so the single gets the final say: only they (or a wingman holding full
// delegation) may move a candidate out of it.
func (r *PipelineRules) AuthorizeTransition(role dating.UserRole, trust dating.TrustLevel, from, to dating.PipelineStage) error {
	if !dating.ValidStage(to) {
		return fmt.Errorf("unknown pipeline stage %q", to)
	}
	if !r.CanTransition(from, to) {
		return fmt.Errorf("cannot move candidate from %s to %s", from, to)
	}

	switch role {
	case dating.RoleSingle:
		return nil
	case dating.RoleWingman:
		if trust == dating.TrustViewOnly {
			return fmt.Errorf("view-only delegation cannot change pipeline stages")
		}
		if from == dating.StageProposed && trust != dating.TrustFullDelegation {
			return fmt.Errorf("only the single can decide on a proposed candidate")
		}
		return nil
	default:
		return fmt.Errorf("role %q cannot change pipeline stages", role)
	}
}
