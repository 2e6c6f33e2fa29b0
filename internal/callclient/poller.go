package callclient

import (
	"context"
	"sync"
	"time"
)

const (
	defaultPollInterval = 3 * time.Second
	elapsedTickInterval = time.Second

	// falhas seguidas antes de avisar a UI (o polling nunca para por
	// erro transitório)
	failureWarnThreshold = 3

	// com a chamada ativa o que importa é mensagem nova; o estado só é
	// reconferido a cada N ticks para pegar o "ended" do outro lado
	stateRecheckEvery = 2
)

// Hooks são os pontos de contato com a UI. Qualquer um pode ser nil.
type Hooks struct {
	// OnActive dispara uma única vez, na transição waiting → active.
	OnActive func(SessionState)

	// OnEnded dispara uma única vez, quando a sessão encerra. Depois
	// dele o poller está morto.
	OnEnded func(SessionState)

	// OnMessages entrega apenas mensagens novas (id > último visto).
	OnMessages func([]Message)

	// OnElapsed bate a cada segundo enquanto a chamada está ativa.
	OnElapsed func(time.Duration)

	// OnWarning dispara após falhas de fetch consecutivas demais.
	OnWarning func(error)

	// OnRetarget avisa que a referência de sessão ficou obsoleta e o
	// poller passou a seguir outra sessão da mesma consulta.
	OnRetarget func(oldID, newID uint)
}

// Poller acompanha uma sessão do lado do cliente: sonda o estado a cada
// 3s enquanto espera, troca para o fluxo ativo (timer de duração +
// polling de mensagens) e desmonta tudo quando a sessão encerra.
type Poller struct {
	api      SessionAPI
	hooks    Hooks
	interval time.Duration

	mu             sync.Mutex
	sessionID      uint
	consultationID uint
	lastMessageID  uint
	inFlight       bool
	active         bool
	activeTicks    int
	failures       int
	warned         bool
	startedAt      time.Time

	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}
}

func NewPoller(api SessionAPI, sessionID, consultationID uint, hooks Hooks) *Poller {
	return &Poller{
		api:            api,
		hooks:          hooks,
		interval:       defaultPollInterval,
		sessionID:      sessionID,
		consultationID: consultationID,
		stopCh:         make(chan struct{}),
		done:           make(chan struct{}),
	}
}

func (p *Poller) Run(ctx context.Context) {
	go p.loop(ctx)
}

// Stop desmonta o poller. Pode ser chamado quantas vezes for preciso:
// fim da sessão, encerramento explícito e unmount passam todos por aqui.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		close(p.stopCh)
	})
}

// Done fecha quando o loop terminou de verdade.
func (p *Poller) Done() <-chan struct{} {
	return p.done
}

// SessionID devolve o alvo atual (pode mudar após um retarget).
func (p *Poller) SessionID() uint {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sessionID
}

func (p *Poller) loop(ctx context.Context) {
	var ticks sync.WaitGroup

	defer func() {
		ticks.Wait()
		close(p.done)
	}()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	elapsed := time.NewTicker(elapsedTickInterval)
	defer elapsed.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stopCh:
			return

		case <-elapsed.C:
			p.mu.Lock()
			isActive := p.active
			startedAt := p.startedAt
			p.mu.Unlock()

			if isActive && p.hooks.OnElapsed != nil {
				p.hooks.OnElapsed(time.Since(startedAt).Truncate(time.Second))
			}

		case <-ticker.C:
			// fetch anterior ainda no ar → pula o tick, nunca empilha
			p.mu.Lock()
			if p.inFlight {
				p.mu.Unlock()
				continue
			}
			p.inFlight = true
			p.mu.Unlock()

			ticks.Add(1)
			go func() {
				defer ticks.Done()

				ended := p.tick(ctx)

				p.mu.Lock()
				p.inFlight = false
				p.mu.Unlock()

				if ended {
					p.Stop()
				}
			}()
		}
	}
}

// tick faz uma rodada de polling. Devolve true quando a sessão chegou
// ao estado terminal e o loop deve morrer.
func (p *Poller) tick(ctx context.Context) bool {
	p.mu.Lock()
	sessionID := p.sessionID
	isActive := p.active
	lastMsgID := p.lastMessageID
	if isActive {
		p.activeTicks++
	}
	recheckState := !isActive || p.activeTicks%stateRecheckEvery == 0
	p.mu.Unlock()

	// fase ativa: só mensagens neste tick, o estado fica para o próximo
	if !recheckState {
		p.pollMessages(ctx, sessionID, lastMsgID)
		return false
	}

	s, err := p.api.GetSession(ctx, sessionID)
	if err != nil {
		// a referência pode ter ficado obsoleta (o outro lado recriou a
		// sessão); re-resolve pela consulta antes de contar como falha
		s, err = p.resolveFallback(ctx, sessionID)
		if err != nil {
			p.recordFailure(err)
			return false
		}
	}

	p.recordSuccess()

	switch s.Status {
	case "active":
		if !isActive {
			p.mu.Lock()
			p.active = true
			if s.StartedAt != nil {
				p.startedAt = *s.StartedAt
			} else {
				p.startedAt = time.Now()
			}
			p.mu.Unlock()

			if p.hooks.OnActive != nil {
				p.hooks.OnActive(s)
			}
		}
		p.pollMessages(ctx, s.ID, lastMsgID)
		return false

	case "ended":
		if p.hooks.OnEnded != nil {
			p.hooks.OnEnded(s)
		}
		return true

	default:
		return false
	}
}

func (p *Poller) resolveFallback(ctx context.Context, staleID uint) (SessionState, error) {
	s, err := p.api.ResolveByConsultation(ctx, p.consultationID)
	if err != nil {
		return SessionState{}, err
	}

	if s.ID != staleID {
		p.mu.Lock()
		p.sessionID = s.ID
		p.lastMessageID = 0
		p.mu.Unlock()

		if p.hooks.OnRetarget != nil {
			p.hooks.OnRetarget(staleID, s.ID)
		}
	}

	return s, nil
}

func (p *Poller) pollMessages(ctx context.Context, sessionID, afterID uint) {
	msgs, err := p.api.ListMessagesSince(ctx, sessionID, afterID)
	if err != nil || len(msgs) == 0 {
		return
	}

	p.mu.Lock()
	p.lastMessageID = msgs[len(msgs)-1].ID
	p.mu.Unlock()

	if p.hooks.OnMessages != nil {
		p.hooks.OnMessages(msgs)
	}
}

func (p *Poller) recordFailure(err error) {
	p.mu.Lock()
	p.failures++
	shouldWarn := p.failures >= failureWarnThreshold && !p.warned
	if shouldWarn {
		p.warned = true
	}
	p.mu.Unlock()

	if shouldWarn && p.hooks.OnWarning != nil {
		p.hooks.OnWarning(err)
	}
}

func (p *Poller) recordSuccess() {
	p.mu.Lock()
	p.failures = 0
	p.warned = false
	p.mu.Unlock()
}
