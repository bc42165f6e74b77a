// Package workflow is the single source of truth for a session's state.
//
// State is mutated exclusively by dispatching actions from a closed sum
// type through a pure reducer: Apply takes a state and an action and
// returns the next state without side effects. The Store wrapper serializes
// dispatches so no two transitions ever interleave, and only hands out
// copies, so callers cannot mutate the authoritative state from outside.
package workflow
