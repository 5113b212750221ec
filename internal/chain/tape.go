package chain

import "github.com/born-ml/dualad/internal/dual"

// Tape records stages and their inputs during the forward pass and computes
// the derivative of the composition during the backward pass.
//
// Usage:
//
//	tape := NewTape[float64](3)
//	for _, s := range stages {
//	    tape.Record(s, value)
//	    value = s.F(value)
//	}
//	deriv := tape.Backward(1)
type Tape[T dual.Float] struct {
	stages []Stage[T] // Recorded stages (in execution order)
	inputs []T        // Input value of each recorded stage
}

// NewTape creates a tape with room for depth stages.
func NewTape[T dual.Float](depth int) *Tape[T] {
	return &Tape[T]{
		stages: make([]Stage[T], 0, depth),
		inputs: make([]T, 0, depth),
	}
}

// Record appends a stage together with the value it was applied to.
func (t *Tape[T]) Record(s Stage[T], input T) {
	t.stages = append(t.stages, s)
	t.inputs = append(t.inputs, input)
}

// Inputs returns a copy of the retained forward values, innermost first.
func (t *Tape[T]) Inputs() []T {
	return append([]T(nil), t.inputs...)
}

// Clear resets the tape, removing all recorded stages.
func (t *Tape[T]) Clear() {
	t.stages = t.stages[:0]
	t.inputs = t.inputs[:0]
}

// NumOps returns the number of recorded stages.
func (t *Tape[T]) NumOps() int {
	return len(t.stages)
}

// Backward walks the tape from the outermost stage inwards, multiplying the
// adjoint by each local derivative. seed is the derivative of the final
// output with respect to itself, normally 1.
func (t *Tape[T]) Backward(seed T) T {
	adjoint := seed
	for i := len(t.stages) - 1; i >= 0; i-- {
		adjoint *= t.stages[i].DF(t.inputs[i])
	}
	return adjoint
}
