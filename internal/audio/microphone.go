package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dkeye/voxcall/internal/core"
	"github.com/google/uuid"
	"github.com/pion/webrtc/v4"
	"github.com/pion/webrtc/v4/pkg/media"
	"github.com/pion/webrtc/v4/pkg/media/oggreader"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var ErrMicrophoneUnavailable = errors.New("microphone unavailable")

const (
	frameDuration = 20 * time.Millisecond
	streamID      = "microphone"
)

// opusSilence is a single 20ms Opus frame of silence.
var opusSilence = []byte{0xf8, 0xff, 0xfe}

// FileMicrophone implements core.Microphone. It streams an Ogg/Opus file
// and continues with silence once the file ends; an empty path streams
// silence only.
type FileMicrophone struct {
	path string
}

func NewFileMicrophone(path string) *FileMicrophone {
	return &FileMicrophone{path: path}
}

func (m *FileMicrophone) Open(ctx context.Context) (core.LocalTrack, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var (
		file   *os.File
		reader *oggreader.OggReader
	)
	if m.path != "" {
		f, err := os.Open(m.path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMicrophoneUnavailable, err)
		}
		r, _, err := oggreader.NewWith(f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("%w: %w", ErrMicrophoneUnavailable, err)
		}
		file, reader = f, r
	}

	id := "audio-" + uuid.NewString()
	track, err := webrtc.NewTrackLocalStaticSample(
		webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeOpus, ClockRate: opusClockRate, Channels: opusChannels},
		id, streamID,
	)
	if err != nil {
		if file != nil {
			_ = file.Close()
		}
		return nil, err
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	mt := &micTrack{track: track, cancel: cancel, done: make(chan struct{})}
	logger := log.With().Str("module", "microphone").Str("track", id).Logger()
	go mt.loop(loopCtx, file, reader, &logger)
	logger.Info().Str("source", m.path).Msg("microphone opened")
	return mt, nil
}

type micTrack struct {
	track  *webrtc.TrackLocalStaticSample
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func (t *micTrack) ID() string { return t.track.ID() }

func (t *micTrack) Track() webrtc.TrackLocal { return t.track }

func (t *micTrack) Stop() {
	t.once.Do(func() {
		t.cancel()
		<-t.done
	})
}

// loop paces samples onto the track in real time.
func (t *micTrack) loop(ctx context.Context, file *os.File, reader *oggreader.OggReader, logger *zerolog.Logger) {
	defer close(t.done)
	if file != nil {
		defer file.Close()
	}

	ticker := time.NewTicker(frameDuration)
	defer ticker.Stop()

	var lastGranule uint64
	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("microphone stopped")
			return
		case <-ticker.C:
		}

		sample := media.Sample{Data: opusSilence, Duration: frameDuration}
		if reader != nil {
			page, header, err := reader.ParseNextPage()
			switch {
			case errors.Is(err, io.EOF):
				logger.Info().Msg("microphone source exhausted, sending silence")
				reader = nil
				ticker.Reset(frameDuration)
			case err != nil:
				logger.Error().Err(err).Msg("read microphone source")
				reader = nil
				ticker.Reset(frameDuration)
			default:
				samples := header.GranulePosition - lastGranule
				lastGranule = header.GranulePosition
				sample = media.Sample{
					Data:     page,
					Duration: time.Duration(samples) * time.Second / opusClockRate,
				}
				if sample.Duration > 0 {
					ticker.Reset(sample.Duration)
				}
			}
		}
		if err := t.track.WriteSample(sample); err != nil {
			logger.Error().Err(err).Msg("write microphone sample")
			return
		}
	}
}
