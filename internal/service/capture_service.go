package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/pnext5524-creator/sekretar/internal/models"
	appErrors "github.com/pnext5524-creator/sekretar/pkg/errors"
)

// Microphone acquires the capture device for one recording session.
// Acquisition may be denied, which surfaces as a device-access error.
type Microphone interface {
	Acquire(ctx context.Context, mimeType string) (Recording, error)
}

// Recording buffers audio for an acquired session and is released
// exactly once whether transcription succeeds or fails.
type Recording interface {
	Append(chunk []byte) error
	Bytes() []byte
	MimeType() string
	Close() error
}

type captureTranscriber interface {
	Transcribe(ctx context.Context, audioBase64, mimeType string) (string, error)
}

type instructionSink interface {
	AppendInstruction(text string) error
}

type generationStatus interface {
	State() models.WorkspaceState
}

// ChunkMicrophone is the default Microphone backed by an in-memory
// chunk buffer with a total size cap.
type ChunkMicrophone struct {
	MaxBytes int64
}

// Acquire starts a buffered session.
func (m *ChunkMicrophone) Acquire(_ context.Context, mimeType string) (Recording, error) {
	if mimeType == "" {
		mimeType = "audio/webm"
	}
	return &chunkRecording{mimeType: mimeType, maxBytes: m.MaxBytes}, nil
}

type chunkRecording struct {
	mu       sync.Mutex
	buf      []byte
	mimeType string
	maxBytes int64
	closed   bool
}

func (r *chunkRecording) Append(chunk []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return fmt.Errorf("recording already released")
	}
	if r.maxBytes > 0 && int64(len(r.buf)+len(chunk)) > r.maxBytes {
		return fmt.Errorf("audio exceeds %d bytes", r.maxBytes)
	}
	r.buf = append(r.buf, chunk...)
	return nil
}

func (r *chunkRecording) Bytes() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf
}

func (r *chunkRecording) MimeType() string { return r.mimeType }

func (r *chunkRecording) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

// CaptureService converts recorded audio into appended instruction
// text. States are IDLE, RECORDING and TRANSCRIBING; the microphone is
// held only while RECORDING.
type CaptureService struct {
	mu     sync.Mutex
	mic    Microphone
	ai     captureTranscriber
	sink   instructionSink
	gen    generationStatus
	logger *zap.Logger

	state models.CaptureState
	rec   Recording
}

// NewCaptureService constructs a CaptureService appending transcripts
// into the given sink.
func NewCaptureService(mic Microphone, transcriber captureTranscriber, sink instructionSink, logger *zap.Logger) *CaptureService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if mic == nil {
		mic = &ChunkMicrophone{}
	}
	return &CaptureService{mic: mic, ai: transcriber, sink: sink, logger: logger, state: models.CaptureIdle}
}

// AttachGeneration wires the drafting workflow so recording cannot
// start while a generation is in flight.
func (s *CaptureService) AttachGeneration(gen generationStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen = gen
}

// Start acquires the microphone and transitions to RECORDING. Denied
// device access leaves the state IDLE.
func (s *CaptureService) Start(ctx context.Context, mimeType string) error {
	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()
	// Checked outside the lock: the orchestrator queries capture state
	// under its own mutex, so the reverse call must not nest locks.
	if gen != nil && gen.State() == models.WorkspaceProcessing {
		return appErrors.Clone(appErrors.ErrValidation, "дождитесь завершения генерации")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.CaptureIdle {
		return appErrors.Clone(appErrors.ErrValidation, "запись уже идёт")
	}

	rec, err := s.mic.Acquire(ctx, mimeType)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrDeviceAccess.Code, appErrors.ErrDeviceAccess.Status, "не удалось получить доступ к микрофону")
	}

	s.rec = rec
	s.state = models.CaptureRecording
	return nil
}

// Chunk appends raw audio bytes to the active recording.
func (s *CaptureService) Chunk(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.CaptureRecording {
		return appErrors.Clone(appErrors.ErrValidation, "запись не начата")
	}
	if len(data) == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "пустой аудиофрагмент")
	}
	if err := s.rec.Append(data); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "аудиофрагмент отклонён")
	}
	return nil
}

// Stop releases the microphone, transcribes the captured audio and
// appends the transcript to the instruction. The state returns to
// IDLE on both success and transcription failure; a failed
// transcription appends nothing.
func (s *CaptureService) Stop(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.state != models.CaptureRecording {
		s.mu.Unlock()
		return "", appErrors.Clone(appErrors.ErrValidation, "запись не начата")
	}
	rec := s.rec
	s.rec = nil
	s.state = models.CaptureTranscribing
	s.mu.Unlock()

	if err := rec.Close(); err != nil {
		s.logger.Warn("failed to release recording", zap.Error(err))
	}

	audio := rec.Bytes()
	text, err := s.ai.Transcribe(ctx, base64.StdEncoding.EncodeToString(audio), rec.MimeType())

	s.mu.Lock()
	s.state = models.CaptureIdle
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("transcription failed", zap.Error(err), zap.Int("audio_bytes", len(audio)))
		return "", appErrors.Wrap(err, appErrors.ErrExternalService.Code, appErrors.ErrExternalService.Status, "не удалось распознать речь")
	}

	text = strings.TrimSpace(text)
	if text != "" {
		if err := s.sink.AppendInstruction(text); err != nil {
			return "", err
		}
	}
	return text, nil
}

// State reports the current lifecycle state.
func (s *CaptureService) State() models.CaptureState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
