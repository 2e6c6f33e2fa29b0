package sweeper

import (
	"context"
	"log"
	"time"

	ucBooking "github.com/vetlinkbr/vetlink-telehealth/internal/usecase/booking"
)

const defaultInterval = 30 * time.Second

// Sweeper é o ator "relógio do sistema": marca como missed os
// agendamentos confirmados cujo slot terminou sem sessão ativa.
type Sweeper struct {
	markMissed *ucBooking.MarkMissedBookings
	interval   time.Duration
}

func New(markMissed *ucBooking.MarkMissedBookings) *Sweeper {
	return &Sweeper{
		markMissed: markMissed,
		interval:   defaultInterval,
	}
}

func (s *Sweeper) Run(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := s.markMissed.Execute(ctx)
				if err != nil {
					log.Println("missed sweep error:", err)
					continue
				}
				if n > 0 {
					log.Printf("missed sweep: %d booking(s) marked", n)
				}
			}
		}
	}()
}
