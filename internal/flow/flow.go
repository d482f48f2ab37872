// Package flow implements the prompt operations: each one issues a
// single call to the generative service with a fixed instructional
// template interpolated with request fields, and returns the structured
// output. Validation of inputs and outputs happens at the gateway.
package flow

import "context"

// Generator is the opaque generative-service capability. It must
// tolerate arbitrary latency and occasionally non-conformant output;
// callers never assume idempotence.
type Generator interface {
	GenerateJSON(ctx context.Context, name, prompt string, out any) error
}

// Synthesizer produces raw PCM speech samples for a script.
type Synthesizer interface {
	SynthesizePCM(ctx context.Context, script string) ([]byte, error)
}
