package controller

import (
	"errors"
	"sync"
	"time"

	"github.com/tu-usuario/catalogo-admin/internal/domain"
)

// successBannerTTL duración del banner de éxito antes de auto-limpiarse.
const successBannerTTL = 3 * time.Second

// Direcciones de ordenamiento.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// banner mensaje de éxito transitorio que se auto-limpia tras ttl. El contador
// seq invalida el timer de un mensaje anterior cuando llega uno nuevo.
type banner struct {
	mu  sync.Mutex
	ttl time.Duration
	msg string
	seq int
}

func newBanner(ttl time.Duration) *banner {
	return &banner{ttl: ttl}
}

// Show publica el mensaje y agenda su limpieza.
func (b *banner) Show(msg string) {
	b.mu.Lock()
	b.msg = msg
	b.seq++
	seq := b.seq
	b.mu.Unlock()

	time.AfterFunc(b.ttl, func() {
		b.mu.Lock()
		if b.seq == seq {
			b.msg = ""
		}
		b.mu.Unlock()
	})
}

// Message devuelve el mensaje vigente, o "" si ya se limpió.
func (b *banner) Message() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.msg
}

// failureMessage banner a mostrar ante un error: el mensaje distinguido de
// sesión expirada tal cual (el logout ya ocurrió y no debe sumarse un banner
// genérico), o el genérico de la acción.
func failureMessage(err error, generic string) string {
	if errors.Is(err, domain.ErrSessionExpired) {
		return err.Error()
	}
	return generic
}
