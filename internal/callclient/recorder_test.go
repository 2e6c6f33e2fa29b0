package callclient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	stream *Stream
}

func (s staticSource) RecordingStream() *Stream { return s.stream }

func TestRecorder_StartRequiresLiveStream(t *testing.T) {
	r := NewRecorder(staticSource{stream: nil})

	err := r.Start()
	require.ErrorIs(t, err, ErrNoStreamAvailable)
	assert.False(t, r.Recording())
}

func TestRecorder_AccumulatesAndFinalizes(t *testing.T) {
	r := NewRecorder(staticSource{stream: &Stream{}})

	require.NoError(t, r.Start())
	assert.True(t, r.Recording())

	r.Push([]byte("abc"))
	r.Push([]byte("def"))
	r.Push(nil) // chunk vazio é descartado

	artifact, err := r.Stop()
	require.NoError(t, err)
	require.NotNil(t, artifact)

	assert.Equal(t, []byte("abcdef"), artifact.Data)
	assert.Equal(t, 2, artifact.Chunks)
	assert.False(t, r.Recording())
}

func TestRecorder_StartStopIdempotent(t *testing.T) {
	r := NewRecorder(staticSource{stream: &Stream{}})

	require.NoError(t, r.Start())
	r.Push([]byte("abc"))

	// segundo start no meio da gravação não zera o buffer
	require.NoError(t, r.Start())

	artifact, err := r.Stop()
	require.NoError(t, err)
	require.NotNil(t, artifact)
	assert.Equal(t, 1, artifact.Chunks)

	// segundo stop: nada para fechar
	artifact, err = r.Stop()
	require.NoError(t, err)
	assert.Nil(t, artifact)
}

func TestRecorder_PushOutsideRecordingIsDropped(t *testing.T) {
	r := NewRecorder(staticSource{stream: &Stream{}})

	r.Push([]byte("perdido"))

	require.NoError(t, r.Start())
	artifact, err := r.Stop()
	require.NoError(t, err)
	assert.Equal(t, 0, artifact.Chunks)
}

func TestRecorder_BufferClearedBetweenRecordings(t *testing.T) {
	r := NewRecorder(staticSource{stream: &Stream{}})

	require.NoError(t, r.Start())
	r.Push([]byte("primeira"))
	_, err := r.Stop()
	require.NoError(t, err)

	require.NoError(t, r.Start())
	r.Push([]byte("segunda"))

	artifact, err := r.Stop()
	require.NoError(t, err)
	assert.Equal(t, []byte("segunda"), artifact.Data)
}

// Fonte preferida: tela compartilhada ganha da câmera.
func TestRecorder_PrefersScreenShare(t *testing.T) {
	c := NewController(&fakeDevices{})
	c.Acquire(context.Background())

	camera := c.RecordingStream()
	require.NotNil(t, camera)

	require.NoError(t, c.StartScreenShare(context.Background()))
	assert.NotSame(t, camera, c.RecordingStream())

	c.StopScreenShare()
	assert.Same(t, camera, c.RecordingStream())

	r := NewRecorder(c)
	require.NoError(t, r.Start())
}
