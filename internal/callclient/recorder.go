package callclient

import (
	"errors"
	"sync"
	"time"
)

var ErrNoStreamAvailable = errors.New("no stream available to record")

// StreamSource entrega a fonte viva de gravação (tela preferida sobre
// câmera). O Controller implementa.
type StreamSource interface {
	RecordingStream() *Stream
}

type Artifact struct {
	Data      []byte
	Chunks    int
	Duration  time.Duration
	CreatedAt time.Time
}

// Recorder acumula chunks da chamada e fecha um artefato único no stop.
type Recorder struct {
	source StreamSource

	mu        sync.Mutex
	recording bool
	startedAt time.Time
	chunks    [][]byte
}

func NewRecorder(source StreamSource) *Recorder {
	return &Recorder{source: source}
}

// Start exige um stream vivo; sem mídia nenhuma não existe o que
// gravar. Chamar com gravação em andamento é no-op.
func (r *Recorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording {
		return nil
	}

	if r.source.RecordingStream() == nil {
		return ErrNoStreamAvailable
	}

	r.recording = true
	r.startedAt = time.Now()
	r.chunks = nil
	return nil
}

func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// Push acumula um chunk capturado. Fora de gravação, descarta.
func (r *Recorder) Push(chunk []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.recording || len(chunk) == 0 {
		return
	}
	r.chunks = append(r.chunks, chunk)
}

// Stop finaliza o artefato e limpa o buffer. Segundo stop devolve
// (nil, nil): não há gravação para fechar.
func (r *Recorder) Stop() (*Artifact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.recording {
		return nil, nil
	}

	var size int
	for _, c := range r.chunks {
		size += len(c)
	}

	data := make([]byte, 0, size)
	for _, c := range r.chunks {
		data = append(data, c...)
	}

	artifact := &Artifact{
		Data:      data,
		Chunks:    len(r.chunks),
		Duration:  time.Since(r.startedAt).Truncate(time.Millisecond),
		CreatedAt: time.Now(),
	}

	r.recording = false
	r.chunks = nil
	return artifact, nil
}
