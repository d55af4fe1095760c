package intake

import (
	"errors"
	"fmt"
	"sync"

	"designflow-backend/internal/models"
)

var (
	ErrRecordingActive = errors.New("a recording is already active")
	ErrNotRecording    = errors.New("no active recording")
)

// VoiceClipType is the container every staged clip is captured in.
const VoiceClipType = "audio/webm"

// Recorder models the two-state voice-note toggle of the intake wizard:
// idle or recording, one session at a time. Stopping a session produces
// one immutable staged clip named "Voice Note N" with N auto-incremented
// per recorder. The microphone itself lives with the caller; the recorder
// only owns the session state and clip naming.
type Recorder struct {
	mu        sync.Mutex
	recording bool
	count     int
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// Start begins a recording session. Only one may be active.
func (r *Recorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording {
		return ErrRecordingActive
	}
	r.recording = true
	return nil
}

// Recording reports whether a session is active.
func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// Stop ends the active session and stages its captured bytes as one clip.
func (r *Recorder) Stop(data []byte) (models.StagedAsset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.recording {
		return models.StagedAsset{}, ErrNotRecording
	}
	r.recording = false
	r.count++
	return models.StagedAsset{
		Name: fmt.Sprintf("Voice Note %d", r.count),
		Type: VoiceClipType,
		Data: data,
	}, nil
}
