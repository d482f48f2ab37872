package flow

import (
	"context"
	"encoding/base64"

	"gainezis-fintrade/internal/audio"
	"gainezis-fintrade/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

// Speech is the speechSynthesis operation. The synthesizer returns raw
// PCM; the post-processing step here is a pure binary transform that
// wraps the samples in a WAV container and re-encodes them as a base64
// data URI.
type Speech struct {
	tracer trace.Tracer
	synth  Synthesizer
}

func NewSpeech(tracer trace.Tracer, synth Synthesizer) *Speech {
	return &Speech{tracer: tracer, synth: synth}
}

func (s *Speech) Synthesize(ctx context.Context, req domain.SpeechRequest) (*domain.SpeechResult, error) {
	ctx, span := s.tracer.Start(ctx, "flow.text-to-speech")
	defer span.End()

	pcm, err := s.synth.SynthesizePCM(ctx, req.Script)
	if err != nil {
		return nil, err
	}

	wav := audio.EncodeWAV(pcm, audio.DefaultChannels, audio.DefaultSampleRate, audio.DefaultBitsPerSample)
	return &domain.SpeechResult{
		AudioDataURI: "data:audio/wav;base64," + base64.StdEncoding.EncodeToString(wav),
	}, nil
}
