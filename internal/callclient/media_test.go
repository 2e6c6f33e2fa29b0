package callclient

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ======================================================
// FAKE DEVICES
// ======================================================

var errDenied = errors.New("permission denied")

type fakeDevices struct {
	failAudioVideo bool
	failAudioOnly  bool
	failVideoOnly  bool
	failDisplay    bool
}

func (d *fakeDevices) GetUserMedia(_ context.Context, audio, video bool) (*Stream, error) {
	switch {
	case audio && video:
		if d.failAudioVideo {
			return nil, errDenied
		}
		return &Stream{Tracks: []*Track{
			{Kind: TrackAudio, Enabled: true},
			{Kind: TrackVideo, Enabled: true},
		}}, nil

	case audio:
		if d.failAudioOnly {
			return nil, errDenied
		}
		return &Stream{Tracks: []*Track{{Kind: TrackAudio, Enabled: true}}}, nil

	default:
		if d.failVideoOnly {
			return nil, errDenied
		}
		return &Stream{Tracks: []*Track{{Kind: TrackVideo, Enabled: true}}}, nil
	}
}

func (d *fakeDevices) GetDisplayMedia(_ context.Context) (*Stream, error) {
	if d.failDisplay {
		return nil, errDenied
	}
	return &Stream{Tracks: []*Track{{Kind: TrackVideo, Enabled: true}}}, nil
}

// ======================================================
// CADEIA DE AQUISIÇÃO
// ======================================================

func TestAcquire_FullMedia(t *testing.T) {
	c := NewController(&fakeDevices{})

	res := c.Acquire(context.Background())

	assert.Equal(t, ModeVideo, res.Mode)
	assert.Equal(t, WarningNone, res.Warning)
	assert.False(t, c.Muted())
	assert.False(t, c.CameraOff())
}

func TestAcquire_DegradesToAudioOnly(t *testing.T) {
	c := NewController(&fakeDevices{failAudioVideo: true})

	res := c.Acquire(context.Background())

	assert.Equal(t, ModeAudioOnly, res.Mode)
	assert.Equal(t, WarningAudioOnly, res.Warning)
	assert.True(t, c.CameraOff(), "câmera forçada a off no degrau audio_only")
	assert.False(t, c.Muted())
	assert.Nil(t, c.ActiveView().VideoTrack())
}

func TestAcquire_DegradesToNone(t *testing.T) {
	c := NewController(&fakeDevices{failAudioVideo: true, failAudioOnly: true})

	res := c.Acquire(context.Background())

	assert.Equal(t, ModeNone, res.Mode)
	assert.Equal(t, WarningNoMedia, res.Warning)
	assert.True(t, c.Muted())
	assert.True(t, c.CameraOff())
	assert.Nil(t, c.ActiveView())
}

// ======================================================
// MUTE / CÂMERA
// ======================================================

func TestToggleMute_OnlyFlipsTrackFlag(t *testing.T) {
	c := NewController(&fakeDevices{})
	c.Acquire(context.Background())

	audio := c.ActiveView().AudioTrack()
	require.NotNil(t, audio)
	assert.True(t, audio.Enabled)

	assert.True(t, c.ToggleMute())
	assert.False(t, audio.Enabled, "mesma faixa, só a flag muda")

	assert.False(t, c.ToggleMute())
	assert.True(t, audio.Enabled)
}

func TestToggleMute_LockedWithoutAudioTrack(t *testing.T) {
	c := NewController(&fakeDevices{failAudioVideo: true, failAudioOnly: true})
	c.Acquire(context.Background())

	assert.True(t, c.ToggleMute(), "sem faixa de áudio o mudo é permanente")
	assert.True(t, c.Muted())
}

func TestCameraOn_FailedRetryKeepsMode(t *testing.T) {
	devices := &fakeDevices{failAudioVideo: true, failVideoOnly: true}
	c := NewController(devices)

	res := c.Acquire(context.Background())
	require.Equal(t, ModeAudioOnly, res.Mode)

	err := c.CameraOn(context.Background())
	require.Error(t, err)

	var unavailable MediaUnavailableError
	assert.ErrorAs(t, err, &unavailable)
	assert.Equal(t, ModeAudioOnly, c.Mode(), "falha na retentativa não muda o degrau")
	assert.True(t, c.CameraOff())
}

func TestCameraOn_SuccessfulRetryMergesTrack(t *testing.T) {
	devices := &fakeDevices{failAudioVideo: true}
	c := NewController(devices)

	res := c.Acquire(context.Background())
	require.Equal(t, ModeAudioOnly, res.Mode)

	require.NoError(t, c.CameraOn(context.Background()))

	assert.Equal(t, ModeVideo, c.Mode())
	assert.False(t, c.CameraOff())
	require.NotNil(t, c.ActiveView().VideoTrack())
	require.NotNil(t, c.ActiveView().AudioTrack(), "a faixa de áudio original continua lá")
}

// Quem entrou sem mídia nenhuma consegue subir direto para vídeo quando
// a câmera volta; o modo acompanha a faixa nova.
func TestCameraOn_FromNoneUpgradesToVideo(t *testing.T) {
	devices := &fakeDevices{failAudioVideo: true, failAudioOnly: true}
	c := NewController(devices)

	res := c.Acquire(context.Background())
	require.Equal(t, ModeNone, res.Mode)

	require.NoError(t, c.CameraOn(context.Background()))

	assert.Equal(t, ModeVideo, c.Mode(), "câmera no ar não pode conviver com mode none")
	assert.False(t, c.CameraOff())
	assert.True(t, c.Muted(), "sem faixa de áudio o mudo continua travado")
	require.NotNil(t, c.ActiveView())
	assert.NotNil(t, c.ActiveView().VideoTrack())
	assert.Nil(t, c.ActiveView().AudioTrack())
}

// ======================================================
// SCREEN SHARE
// ======================================================

func TestScreenShare_SupersedesPreviewAndRestores(t *testing.T) {
	c := NewController(&fakeDevices{})
	c.Acquire(context.Background())

	camera := c.ActiveView()

	require.NoError(t, c.StartScreenShare(context.Background()))
	assert.True(t, c.Sharing())
	assert.NotSame(t, camera, c.ActiveView(), "tela no ar tem prioridade no preview")

	// compartilhar não mexe na câmera
	require.NotNil(t, camera.VideoTrack())
	assert.True(t, camera.VideoTrack().Enabled)

	c.StopScreenShare()
	assert.False(t, c.Sharing())
	assert.Same(t, camera, c.ActiveView(), "parar restaura a visão anterior")
}

func TestScreenShare_StartTwiceIsNoop(t *testing.T) {
	c := NewController(&fakeDevices{})
	c.Acquire(context.Background())

	require.NoError(t, c.StartScreenShare(context.Background()))
	first := c.ActiveView()

	require.NoError(t, c.StartScreenShare(context.Background()))
	assert.Same(t, first, c.ActiveView())
}

func TestScreenShare_FailureLeavesPreview(t *testing.T) {
	c := NewController(&fakeDevices{failDisplay: true})
	c.Acquire(context.Background())

	camera := c.ActiveView()

	err := c.StartScreenShare(context.Background())
	require.Error(t, err)
	assert.False(t, c.Sharing())
	assert.Same(t, camera, c.ActiveView())
}

// ======================================================
// RELEASE
// ======================================================

func TestRelease_StopsAndDropsEverything(t *testing.T) {
	c := NewController(&fakeDevices{})
	c.Acquire(context.Background())

	camera := c.ActiveView()
	audio := camera.AudioTrack()
	video := camera.VideoTrack()

	require.NoError(t, c.StartScreenShare(context.Background()))
	screen := c.RecordingStream().VideoTrack()

	c.Release()

	assert.False(t, screen.Enabled, "faixa da tela parada")

	assert.False(t, audio.Enabled, "faixa de áudio parada")
	assert.False(t, video.Enabled, "faixa de vídeo parada")
	assert.Nil(t, c.ActiveView())
	assert.Nil(t, c.RecordingStream())
	assert.False(t, c.Sharing())
	assert.Equal(t, ModeNone, c.Mode())
	assert.True(t, c.Muted())
	assert.True(t, c.CameraOff())
}

func TestRelease_SafeWithoutMediaAndIdempotent(t *testing.T) {
	c := NewController(&fakeDevices{failAudioVideo: true, failAudioOnly: true})

	res := c.Acquire(context.Background())
	require.Equal(t, ModeNone, res.Mode)

	// entrar sem mídia nenhuma ainda passa pelo mesmo encerramento
	c.Release()
	c.Release()

	assert.Equal(t, ModeNone, c.Mode())
	assert.Nil(t, c.ActiveView())
}
