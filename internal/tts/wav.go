package tts

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

const (
	defaultBitsPerSample = 16
	defaultSampleRate    = 24000
)

// pcmParams describes raw linear PCM as delivered by the speech service.
type pcmParams struct {
	bitsPerSample int
	sampleRate    int
}

// parseAudioMIME extracts PCM parameters from a MIME type such as
// "audio/L16;codec=pcm;rate=24000". Missing parameters fall back to the
// service defaults.
func parseAudioMIME(mimeType string) pcmParams {
	params := pcmParams{
		bitsPerSample: defaultBitsPerSample,
		sampleRate:    defaultSampleRate,
	}

	for _, part := range strings.Split(mimeType, ";") {
		part = strings.TrimSpace(part)
		switch {
		case strings.HasPrefix(strings.ToLower(part), "rate="):
			if rate, err := strconv.Atoi(part[len("rate="):]); err == nil {
				params.sampleRate = rate
			}
		case strings.HasPrefix(part, "audio/L"):
			if bits, err := strconv.Atoi(part[len("audio/L"):]); err == nil {
				params.bitsPerSample = bits
			}
		}
	}
	return params
}

// EncodeWAV wraps raw signed PCM data in a RIFF/WAVE header so downstream
// tools (and the silence segmenter) can decode it.
func EncodeWAV(pcm []byte, mimeType string) ([]byte, error) {
	params := parseAudioMIME(mimeType)
	if params.bitsPerSample <= 0 || params.sampleRate <= 0 {
		return nil, fmt.Errorf("unusable audio mime type %q", mimeType)
	}

	const numChannels = 1
	bytesPerSample := params.bitsPerSample / 8
	blockAlign := numChannels * bytesPerSample
	byteRate := params.sampleRate * blockAlign

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // linear PCM
	binary.Write(&buf, binary.LittleEndian, uint16(numChannels))
	binary.Write(&buf, binary.LittleEndian, uint32(params.sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(params.bitsPerSample))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)

	return buf.Bytes(), nil
}
