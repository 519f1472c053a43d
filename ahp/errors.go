package ahp

import "errors"

// ErrInstanceDoesNotMatchIndex is returned when the constraint or variable
// counts realized by an instance differ from the ones recorded in the
// circuit index it is proved against.
var ErrInstanceDoesNotMatchIndex = errors.New("instance does not match the circuit index")

// ErrInadmissiblePublicInput is returned when the padded public variable
// vector does not have an admissible layout (a non-zero power-of-two length).
var ErrInadmissiblePublicInput = errors.New("formatted public input is not admissible")

// ErrNonZeroRemainder is returned when a division by a vanishing polynomial
// leaves a non-zero remainder where the protocol guarantees an exact
// division. It signals an internal contract breach, not a bad input.
var ErrNonZeroRemainder = errors.New("division by vanishing polynomial has a non-zero remainder")
