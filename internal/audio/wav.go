// Package audio wraps raw PCM samples in a minimal uncompressed WAV
// container and parses the container header back. The header is the
// fixed 44-byte RIFF layout; everything after it is raw little-endian
// signed 16-bit samples.
package audio

import (
	"encoding/binary"
	"fmt"
)

const (
	// HeaderSize is the fixed size of the canonical PCM WAV header.
	HeaderSize = 44

	pcmFormatTag = 1

	// DefaultChannels, DefaultSampleRate and DefaultBitsPerSample match
	// the speech model output: mono, 24 kHz, 16-bit.
	DefaultChannels      = 1
	DefaultSampleRate    = 24000
	DefaultBitsPerSample = 16
)

// Format describes a decoded WAV header.
type Format struct {
	Channels      int
	SampleRate    int
	BitsPerSample int
	DataLength    int
}

// EncodeWAV prepends a 44-byte PCM header to raw sample data.
func EncodeWAV(pcm []byte, channels, sampleRate, bitsPerSample int) []byte {
	blockAlign := channels * bitsPerSample / 8
	byteRate := sampleRate * blockAlign

	out := make([]byte, HeaderSize+len(pcm))
	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], uint32(36+len(pcm)))
	copy(out[8:12], "WAVE")
	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], 16)
	binary.LittleEndian.PutUint16(out[20:22], pcmFormatTag)
	binary.LittleEndian.PutUint16(out[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(out[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(out[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:36], uint16(bitsPerSample))
	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], uint32(len(pcm)))
	copy(out[HeaderSize:], pcm)
	return out
}

// DecodeHeader parses the 44-byte header and returns the format plus
// the raw sample payload.
func DecodeHeader(wav []byte) (Format, []byte, error) {
	if len(wav) < HeaderSize {
		return Format{}, nil, fmt.Errorf("wav data too short: %d bytes", len(wav))
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		return Format{}, nil, fmt.Errorf("not a RIFF/WAVE stream")
	}
	if string(wav[12:16]) != "fmt " || string(wav[36:40]) != "data" {
		return Format{}, nil, fmt.Errorf("unexpected chunk layout")
	}
	if tag := binary.LittleEndian.Uint16(wav[20:22]); tag != pcmFormatTag {
		return Format{}, nil, fmt.Errorf("unsupported format tag %d", tag)
	}

	format := Format{
		Channels:      int(binary.LittleEndian.Uint16(wav[22:24])),
		SampleRate:    int(binary.LittleEndian.Uint32(wav[24:28])),
		BitsPerSample: int(binary.LittleEndian.Uint16(wav[34:36])),
		DataLength:    int(binary.LittleEndian.Uint32(wav[40:44])),
	}
	data := wav[HeaderSize:]
	if format.DataLength > len(data) {
		return Format{}, nil, fmt.Errorf("data chunk length %d exceeds payload %d", format.DataLength, len(data))
	}
	return format, data[:format.DataLength], nil
}
