package callclient

import (
	"context"
	"fmt"
	"sync"
)

// ======================================================
// DISPOSITIVOS
// ======================================================

type TrackKind string

const (
	TrackAudio TrackKind = "audio"
	TrackVideo TrackKind = "video"
)

// Track é uma faixa de mídia local. Mutar/desmutar nunca derruba a
// faixa: só vira a flag.
type Track struct {
	Kind    TrackKind
	Enabled bool
}

type Stream struct {
	Tracks []*Track
}

func (s *Stream) track(kind TrackKind) *Track {
	if s == nil {
		return nil
	}
	for _, t := range s.Tracks {
		if t.Kind == kind {
			return t
		}
	}
	return nil
}

func (s *Stream) AudioTrack() *Track { return s.track(TrackAudio) }
func (s *Stream) VideoTrack() *Track { return s.track(TrackVideo) }

// MediaDevices abstrai a captura local (getUserMedia/getDisplayMedia).
// Os testes plugam um fake que falha seletivamente.
type MediaDevices interface {
	GetUserMedia(ctx context.Context, audio, video bool) (*Stream, error)
	GetDisplayMedia(ctx context.Context) (*Stream, error)
}

type MediaUnavailableError struct {
	Requested string
	Err       error
}

func (e MediaUnavailableError) Error() string {
	return fmt.Sprintf("media unavailable (%s): %v", e.Requested, e.Err)
}

func (e MediaUnavailableError) Unwrap() error { return e.Err }

// ======================================================
// MODOS E AVISOS
// ======================================================

// Mode é o degrau da cadeia de aquisição em que a chamada está.
type Mode string

const (
	ModeVideo     Mode = "video"
	ModeAudioOnly Mode = "audio_only"
	ModeNone      Mode = "none"
)

type Warning string

const (
	WarningNone      Warning = ""
	WarningAudioOnly Warning = "camera_unavailable"
	WarningNoMedia   Warning = "no_media_available"
)

type AcquireResult struct {
	Mode    Mode
	Warning Warning
}

// ======================================================
// CONTROLLER
// ======================================================

// Controller gerencia a mídia local de uma chamada: aquisição com
// degradação em cadeia, mute/câmera, compartilhamento de tela.
type Controller struct {
	devices MediaDevices

	mu        sync.Mutex
	mode      Mode
	local     *Stream
	screen    *Stream
	muted     bool
	cameraOff bool
}

func NewController(devices MediaDevices) *Controller {
	return &Controller{
		devices: devices,
		mode:    ModeNone,
	}
}

// Acquire percorre a cadeia na ordem: áudio+vídeo → só áudio → nada.
// Nunca devolve erro: o último degrau é entrar sem mídia (chat segue
// funcionando), com o aviso mais forte.
func (c *Controller) Acquire(ctx context.Context) AcquireResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s, err := c.devices.GetUserMedia(ctx, true, true); err == nil {
		c.local = s
		c.mode = ModeVideo
		c.muted = false
		c.cameraOff = false
		return AcquireResult{Mode: ModeVideo, Warning: WarningNone}
	}

	if s, err := c.devices.GetUserMedia(ctx, true, false); err == nil {
		c.local = s
		c.mode = ModeAudioOnly
		c.muted = false
		c.cameraOff = true
		return AcquireResult{Mode: ModeAudioOnly, Warning: WarningAudioOnly}
	}

	// sem nenhum dispositivo: entra mudo e sem câmera
	c.local = nil
	c.mode = ModeNone
	c.muted = true
	c.cameraOff = true
	return AcquireResult{Mode: ModeNone, Warning: WarningNoMedia}
}

func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *Controller) Muted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.muted
}

func (c *Controller) CameraOff() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cameraOff
}

// ToggleMute só vira a flag da faixa de áudio. Sem faixa (mode=none) o
// estado fica travado em mudo.
func (c *Controller) ToggleMute() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	audio := c.local.AudioTrack()
	if audio == nil {
		c.muted = true
		return c.muted
	}

	c.muted = !c.muted
	audio.Enabled = !c.muted
	return c.muted
}

// CameraOff desliga o preview sem soltar a faixa de vídeo.
func (c *Controller) CameraOffToggle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	video := c.local.VideoTrack()
	if video == nil {
		c.cameraOff = true
		return c.cameraOff
	}

	c.cameraOff = !c.cameraOff
	video.Enabled = !c.cameraOff
	return c.cameraOff
}

// CameraOn a partir de audio_only/none tenta capturar só vídeo e funde
// a faixa no stream local. Falhou → nada muda, o modo fica como está;
// funcionou → o degrau sobe para video, de qualquer origem.
func (c *Controller) CameraOn(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if video := c.local.VideoTrack(); video != nil {
		video.Enabled = true
		c.cameraOff = false
		return nil
	}

	s, err := c.devices.GetUserMedia(ctx, false, true)
	if err != nil {
		return MediaUnavailableError{Requested: "video", Err: err}
	}

	video := s.VideoTrack()
	if video == nil {
		return MediaUnavailableError{Requested: "video", Err: fmt.Errorf("no video track in stream")}
	}

	if c.local == nil {
		c.local = &Stream{}
	}
	c.local.Tracks = append(c.local.Tracks, video)
	c.cameraOff = false

	// câmera no ar é incompatível com none (none exige câmera desligada)
	c.mode = ModeVideo

	return nil
}

// ======================================================
// SCREEN SHARE
// ======================================================

// StartScreenShare captura a tela. Independente da câmera: a faixa de
// vídeo local não é tocada, só o que aparece no preview muda.
func (c *Controller) StartScreenShare(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.screen != nil {
		return nil
	}

	s, err := c.devices.GetDisplayMedia(ctx)
	if err != nil {
		return MediaUnavailableError{Requested: "display", Err: err}
	}

	c.screen = s
	return nil
}

// StopScreenShare derruba a captura de tela; o preview volta ao que
// era antes.
func (c *Controller) StopScreenShare() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.screen = nil
}

func (c *Controller) Sharing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screen != nil
}

// ActiveView é o stream que a UI mostra: tela compartilhada tem
// prioridade sobre a câmera.
func (c *Controller) ActiveView() *Stream {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.screen != nil {
		return c.screen
	}
	return c.local
}

// RecordingStream é a fonte que o gravador usa: tela preferida, senão
// câmera. Nil quando não há mídia nenhuma.
func (c *Controller) RecordingStream() *Stream {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.screen != nil {
		return c.screen
	}
	return c.local
}

// Release para e solta toda mídia adquirida (câmera, microfone, tela),
// qualquer que seja o degrau alcançado. Encerrar a chamada é o único
// dono dessa limpeza; chamar de novo é no-op.
func (c *Controller) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()

	stopTracks(c.local)
	stopTracks(c.screen)

	c.local = nil
	c.screen = nil
	c.mode = ModeNone
	c.muted = true
	c.cameraOff = true
}

func stopTracks(s *Stream) {
	if s == nil {
		return
	}
	for _, t := range s.Tracks {
		t.Enabled = false
	}
}
