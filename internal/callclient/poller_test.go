package callclient

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ======================================================
// FAKE API
// ======================================================

// scriptedAPI devolve estados na ordem programada; o último se repete.
type scriptedAPI struct {
	mu sync.Mutex

	states     []SessionState
	stateErrs  []error
	resolved   *SessionState
	resolveErr error
	messages   map[uint][]Message

	getCalls     int
	resolveCalls int
	msgCalls     int
	lastAfterID  uint
}

func (a *scriptedAPI) GetSession(_ context.Context, sessionID uint) (SessionState, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	i := a.getCalls
	a.getCalls++

	if i >= len(a.states) {
		i = len(a.states) - 1
	}
	if i < len(a.stateErrs) && a.stateErrs[i] != nil {
		return SessionState{}, a.stateErrs[i]
	}
	if i < 0 {
		return SessionState{}, errors.New("no script")
	}

	s := a.states[i]
	if s.ID != sessionID {
		return SessionState{}, errors.New("session not found")
	}
	return s, nil
}

func (a *scriptedAPI) ResolveByConsultation(_ context.Context, _ uint) (SessionState, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.resolveCalls++
	if a.resolveErr != nil {
		return SessionState{}, a.resolveErr
	}
	if a.resolved == nil {
		return SessionState{}, errors.New("no open session")
	}
	return *a.resolved, nil
}

func (a *scriptedAPI) ListMessagesSince(_ context.Context, sessionID uint, afterID uint) ([]Message, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.msgCalls++
	a.lastAfterID = afterID

	var out []Message
	for _, m := range a.messages[sessionID] {
		if m.ID > afterID {
			out = append(out, m)
		}
	}
	return out, nil
}

func fastPoller(api SessionAPI, sessionID, consultationID uint, hooks Hooks) *Poller {
	p := NewPoller(api, sessionID, consultationID, hooks)
	p.interval = 5 * time.Millisecond
	return p
}

func waitDone(t *testing.T, p *Poller) {
	t.Helper()
	select {
	case <-p.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("poller não desmontou a tempo")
	}
}

// ======================================================
// CICLO DE VIDA
// ======================================================

func TestPoller_ActiveThenEnded(t *testing.T) {
	started := time.Now()
	api := &scriptedAPI{
		states: []SessionState{
			{ID: 1, ConsultationID: 9, Status: "waiting"},
			{ID: 1, ConsultationID: 9, Status: "waiting"},
			{ID: 1, ConsultationID: 9, Status: "active", StartedAt: &started},
			{ID: 1, ConsultationID: 9, Status: "active", StartedAt: &started},
			{ID: 1, ConsultationID: 9, Status: "ended", StartedAt: &started},
		},
		messages: map[uint][]Message{
			1: {
				{ID: 1, SessionID: 1, Message: "olá"},
				{ID: 2, SessionID: 1, Message: "tudo bem?"},
			},
		},
	}

	var mu sync.Mutex
	activeCalls := 0
	endedCalls := 0
	var received []Message

	p := fastPoller(api, 1, 9, Hooks{
		OnActive: func(SessionState) {
			mu.Lock()
			activeCalls++
			mu.Unlock()
		},
		OnEnded: func(s SessionState) {
			mu.Lock()
			endedCalls++
			mu.Unlock()
			assert.Equal(t, "ended", s.Status)
		},
		OnMessages: func(msgs []Message) {
			mu.Lock()
			received = append(received, msgs...)
			mu.Unlock()
		},
	})

	p.Run(context.Background())
	waitDone(t, p)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, activeCalls, "OnActive dispara uma única vez")
	assert.Equal(t, 1, endedCalls)
	require.Len(t, received, 2)
	assert.Equal(t, "olá", received[0].Message)
}

func TestPoller_MessagesOnlyNewOnes(t *testing.T) {
	started := time.Now()
	active := SessionState{ID: 1, ConsultationID: 9, Status: "active", StartedAt: &started}
	api := &scriptedAPI{
		states: []SessionState{active, active, active},
		messages: map[uint][]Message{
			1: {{ID: 1, SessionID: 1}, {ID: 2, SessionID: 1}},
		},
	}

	var mu sync.Mutex
	batches := 0

	p := fastPoller(api, 1, 9, Hooks{
		OnMessages: func([]Message) {
			mu.Lock()
			batches++
			mu.Unlock()
		},
	})

	p.Run(context.Background())
	time.Sleep(60 * time.Millisecond)
	p.Stop()
	waitDone(t, p)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, batches, "mensagens já vistas não são reentregues")

	api.mu.Lock()
	defer api.mu.Unlock()
	assert.Equal(t, uint(2), api.lastAfterID, "o cursor avança para o último id visto")
}

// Com a chamada ativa o poller prioriza mensagens; o estado só é
// reconferido de tempos em tempos para pegar o "ended" do outro lado.
func TestPoller_ActivePhasePollsMessagesMoreThanState(t *testing.T) {
	started := time.Now()
	active := SessionState{ID: 1, ConsultationID: 9, Status: "active", StartedAt: &started}
	api := &scriptedAPI{
		states:   []SessionState{active},
		messages: map[uint][]Message{},
	}

	p := fastPoller(api, 1, 9, Hooks{})
	p.Run(context.Background())

	time.Sleep(120 * time.Millisecond)
	p.Stop()
	waitDone(t, p)

	api.mu.Lock()
	defer api.mu.Unlock()
	assert.Greater(t, api.msgCalls, 4, "mensagens são sondadas a cada tick")
	assert.Less(t, api.getCalls, api.msgCalls, "o estado é reconferido menos que as mensagens")
	assert.GreaterOrEqual(t, api.getCalls, 2, "mas nunca deixa de ser reconferido")
}

// ======================================================
// FALLBACK / RETARGET
// ======================================================

func TestPoller_RetargetsOnStaleSession(t *testing.T) {
	// a sessão 1 morreu do lado do servidor; a consulta agora tem a 2
	api := &scriptedAPI{
		states:    []SessionState{{ID: 2, ConsultationID: 9, Status: "waiting"}},
		stateErrs: []error{errors.New("session gone")},
		resolved:  &SessionState{ID: 2, ConsultationID: 9, Status: "waiting"},
	}

	var mu sync.Mutex
	var gotOld, gotNew uint

	p := fastPoller(api, 1, 9, Hooks{
		OnRetarget: func(oldID, newID uint) {
			mu.Lock()
			gotOld, gotNew = oldID, newID
			mu.Unlock()
		},
	})

	p.Run(context.Background())
	time.Sleep(60 * time.Millisecond)
	p.Stop()
	waitDone(t, p)

	mu.Lock()
	assert.Equal(t, uint(1), gotOld)
	assert.Equal(t, uint(2), gotNew)
	mu.Unlock()

	assert.Equal(t, uint(2), p.SessionID(), "o poller passa a seguir a sessão nova")
}

func TestPoller_WarnsAfterConsecutiveFailures(t *testing.T) {
	api := &scriptedAPI{
		states: []SessionState{{}},
		stateErrs: []error{
			errors.New("down"), errors.New("down"), errors.New("down"),
			errors.New("down"), errors.New("down"), errors.New("down"),
		},
		resolveErr: errors.New("down"),
	}

	var mu sync.Mutex
	warnings := 0

	p := fastPoller(api, 1, 9, Hooks{
		OnWarning: func(error) {
			mu.Lock()
			warnings++
			mu.Unlock()
		},
	})

	p.Run(context.Background())
	time.Sleep(80 * time.Millisecond)
	p.Stop()
	waitDone(t, p)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, warnings, "um aviso só; o polling continua em silêncio")

	api.mu.Lock()
	defer api.mu.Unlock()
	assert.GreaterOrEqual(t, api.getCalls, failureWarnThreshold+1, "o aviso não mata o polling")
}

// ======================================================
// TEARDOWN
// ======================================================

func TestPoller_StopIdempotent(t *testing.T) {
	api := &scriptedAPI{
		states: []SessionState{{ID: 1, ConsultationID: 9, Status: "waiting"}},
	}

	p := fastPoller(api, 1, 9, Hooks{})
	p.Run(context.Background())

	// fim explícito, estado terminal e unmount podem todos chamar Stop
	p.Stop()
	p.Stop()
	p.Stop()

	waitDone(t, p)
}

func TestPoller_ContextCancelTearsDown(t *testing.T) {
	api := &scriptedAPI{
		states: []SessionState{{ID: 1, ConsultationID: 9, Status: "waiting"}},
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := fastPoller(api, 1, 9, Hooks{})
	p.Run(ctx)

	cancel()
	waitDone(t, p)
}

// Tick com fetch anterior ainda no ar é pulado, nunca empilhado.
func TestPoller_SkipsTickWhileInFlight(t *testing.T) {
	slow := &slowAPI{delay: 40 * time.Millisecond}

	p := fastPoller(slow, 1, 9, Hooks{})
	p.Run(context.Background())

	time.Sleep(100 * time.Millisecond)
	p.Stop()
	waitDone(t, p)

	calls := slow.calls()
	assert.LessOrEqual(t, calls, 4, "com fetch de 40ms e tick de 5ms não pode haver avalanche de chamadas")
	assert.GreaterOrEqual(t, calls, 1)
}

type slowAPI struct {
	mu    sync.Mutex
	n     int
	delay time.Duration
}

func (a *slowAPI) calls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.n
}

func (a *slowAPI) GetSession(_ context.Context, sessionID uint) (SessionState, error) {
	a.mu.Lock()
	a.n++
	a.mu.Unlock()

	time.Sleep(a.delay)
	return SessionState{ID: sessionID, ConsultationID: 9, Status: "waiting"}, nil
}

func (a *slowAPI) ResolveByConsultation(context.Context, uint) (SessionState, error) {
	return SessionState{}, errors.New("unused")
}

func (a *slowAPI) ListMessagesSince(context.Context, uint, uint) ([]Message, error) {
	return nil, nil
}
