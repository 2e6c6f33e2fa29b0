package callclient

import "sync"

// Call amarra o trio do lado do cliente: poller de estado, mídia local
// e gravador. O encerramento passa todo por End, que é o único
// responsável por soltar os streams adquiridos.
type Call struct {
	Poller   *Poller
	Media    *Controller
	Recorder *Recorder

	endOnce  sync.Once
	artifact *Artifact
}

func NewCall(p *Poller, m *Controller, r *Recorder) *Call {
	return &Call{
		Poller:   p,
		Media:    m,
		Recorder: r,
	}
}

// End desmonta a chamada: fecha a gravação em andamento (se houver),
// solta câmera/microfone/tela e para o poller. Fim explícito, estado
// terminal vindo do servidor e unmount chamam todos aqui; só a
// primeira chamada faz trabalho, e só ela devolve o artefato.
func (c *Call) End() *Artifact {
	c.endOnce.Do(func() {
		if c.Recorder != nil {
			c.artifact, _ = c.Recorder.Stop()
		}
		if c.Media != nil {
			c.Media.Release()
		}
		if c.Poller != nil {
			c.Poller.Stop()
		}
	})

	out := c.artifact
	c.artifact = nil
	return out
}
