package workflow

import "fmt"

// Stage identifies one step of the recipe generation pipeline. The pipeline
// is linear with one optional branch: research runs only when a search
// capability is configured.
type Stage string

const (
	StageStart              Stage = "start"
	StageDraftGeneration    Stage = "draft_generation"
	StageResearch           Stage = "research"
	StageTipsAndCompilation Stage = "tips_and_compilation"
	StageCompletenessAudit  Stage = "completeness_audit"
	StageDone               Stage = "done"
)

// transitions is the legal stage sequencing. Draft generation may hand off
// either to research or directly to compilation when research is disabled.
var transitions = map[Stage][]Stage{
	StageStart:              {StageDraftGeneration},
	StageDraftGeneration:    {StageResearch, StageTipsAndCompilation},
	StageResearch:           {StageTipsAndCompilation},
	StageTipsAndCompilation: {StageCompletenessAudit},
	StageCompletenessAudit:  {StageDone},
}

// CanTransition reports whether the pipeline may move from one stage to
// another.
func CanTransition(from, to Stage) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Advance moves the state to the given stage, rejecting illegal jumps so a
// mis-sequenced pipeline fails loudly instead of producing a silently wrong
// breadcrumb.
func (s *State) Advance(to Stage) error {
	if !CanTransition(s.CurrentStage, to) {
		return fmt.Errorf("illegal stage transition %s -> %s", s.CurrentStage, to)
	}
	s.CurrentStage = to
	return nil
}
