// ABOUTME: Result: the engine's external output shape
// ABOUTME: Grounded on original_source/backend/schedule_app/genetic_algorithm.py's get_statistics plus constraints.py's get_conflicts_report

package ga

import (
	"github.com/aperazzo/timetable-ga/constraint"
	"github.com/aperazzo/timetable-ga/problem"
)

// ClassAssignment is one class's (room, time) pair in the externalized
// chromosome, either of which may be absent (a "bottom" when no candidate
// was ever assigned).
type ClassAssignment struct {
	RoomID *string `json:"room_id,omitempty"`
	TimeID *string `json:"time_pattern_id,omitempty"`
}

// History is the best/avg fitness trace across generations.
type History struct {
	BestPerGen []float64 `json:"best_per_gen"`
	AvgPerGen  []float64 `json:"avg_per_gen"`
}

// Improvement is the total gain from the first to the last recorded best,
// mirroring the original's get_statistics "improvement" field.
func (h History) Improvement() float64 {
	if len(h.BestPerGen) == 0 {
		return 0
	}
	return h.BestPerGen[len(h.BestPerGen)-1] - h.BestPerGen[0]
}

// Result is the engine's public output.
type Result struct {
	Chromosome map[string]ClassAssignment `json:"chromosome"`
	Fitness    float64                    `json:"fitness"`
	History    History                    `json:"history"`
	Report     constraint.Report          `json:"report"`
}

func buildResult(p *problem.Problem, best *Individual, history History) Result {
	out := make(map[string]ClassAssignment, p.NumClasses())
	for ci, class := range p.Classes {
		g := best.Chromosome[ci]
		a := ClassAssignment{}
		if g.Room != problem.None {
			id := p.Rooms[g.Room].ID
			a.RoomID = &id
		}
		if g.Time != problem.None {
			id := p.Times[g.Time].ID
			a.TimeID = &id
		}
		out[class.ID] = a
	}
	return Result{
		Chromosome: out,
		Fitness:    best.Fitness,
		History:    history,
		Report:     best.Report,
	}
}
