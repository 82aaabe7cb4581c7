// SPDX-License-Identifier: EPL-2.0

package wavterrain

import "fmt"

// Stage is a step of a generation run. A run moves strictly forward through
// the stages and ends in StageDone or StageFailed.
type Stage int

const (
	StageIdle Stage = iota
	StageDecoding
	StageResampling
	StageDisplacing
	StageTexturing
	StageDone
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageDecoding:
		return "decoding"
	case StageResampling:
		return "resampling"
	case StageDisplacing:
		return "displacing"
	case StageTexturing:
		return "texturing"
	case StageDone:
		return "done"
	case StageFailed:
		return "failed"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// StageError reports which stage a run failed in. errors.Is and errors.As
// reach the underlying cause.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("wavterrain: %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
