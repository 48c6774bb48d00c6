package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/tu-usuario/catalogo-admin/internal/domain/entity"
)

// Claves fijas bajo las que se persisten el token y el perfil serializado.
const (
	keyToken = "JWT_TOKEN"
	keyUser  = "USER_DATA"
)

const stateFile = "session.json"

// persistedUser forma en disco del perfil (mismos campos que la respuesta del login).
type persistedUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

// Store guarda la sesión actual (token + perfil) en disco y la publica a los
// suscriptores. La escritura es atómica: ambas claves van en un solo documento
// que se escribe a un archivo temporal y se renombra sobre el anterior.
type Store struct {
	mu      sync.Mutex
	path    string
	current *entity.Session
	subs    map[int]func(*entity.Session)
	nextSub int
}

// NewStore abre el store sobre dir (se crea si no existe) y carga la sesión
// previa si sobrevivió de una ejecución anterior.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("session: crear directorio de estado: %w", err)
	}
	s := &Store{
		path: filepath.Join(dir, stateFile),
		subs: make(map[int]func(*entity.Session)),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("session: leer estado: %w", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		// Estado corrupto: se descarta y el usuario vuelve a iniciar sesión.
		return nil
	}
	var token string
	var user persistedUser
	if err := json.Unmarshal(doc[keyToken], &token); err != nil || token == "" {
		return nil
	}
	if err := json.Unmarshal(doc[keyUser], &user); err != nil {
		return nil
	}
	s.current = &entity.Session{
		Token: token,
		User: entity.User{
			ID:        user.ID,
			Username:  user.Username,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Role:      user.Role,
		},
	}
	return nil
}

// Token devuelve el token actual, o "" si no hay sesión.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// CurrentUser devuelve una copia del perfil actual, o nil si no hay sesión.
func (s *Store) CurrentUser() *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	u := s.current.User
	return &u
}

// Current devuelve una copia de la sesión actual, o nil si no hay.
func (s *Store) Current() *entity.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	c := *s.current
	return &c
}

// Set persiste token y perfil de forma atómica y publica el nuevo valor.
func (s *Store) Set(sess entity.Session) error {
	s.mu.Lock()
	doc := map[string]any{
		keyToken: sess.Token,
		keyUser: persistedUser{
			ID:        sess.User.ID,
			Username:  sess.User.Username,
			Email:     sess.User.Email,
			FirstName: sess.User.FirstName,
			LastName:  sess.User.LastName,
			Role:      sess.User.Role,
		},
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("session: serializar estado: %w", err)
	}
	if err := writeAtomic(s.path, raw); err != nil {
		s.mu.Unlock()
		return err
	}
	s.current = &sess
	subs := s.snapshotSubs()
	val := s.current
	s.mu.Unlock()

	notify(subs, val)
	return nil
}

// Clear elimina el estado persistido y publica la ausencia de sesión.
// Es idempotente: sin sesión activa solo notifica nil.
func (s *Store) Clear() error {
	s.mu.Lock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.mu.Unlock()
		return fmt.Errorf("session: eliminar estado: %w", err)
	}
	s.current = nil
	subs := s.snapshotSubs()
	s.mu.Unlock()

	notify(subs, nil)
	return nil
}

// Subscribe registra un observador y le entrega de inmediato el valor actual
// (semántica replay-latest). Devuelve la función para cancelar la suscripción.
func (s *Store) Subscribe(fn func(*entity.Session)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	cur := s.current
	var replay *entity.Session
	if cur != nil {
		c := *cur
		replay = &c
	}
	s.mu.Unlock()

	fn(replay)
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) snapshotSubs() []func(*entity.Session) {
	out := make([]func(*entity.Session), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}

func notify(subs []func(*entity.Session), val *entity.Session) {
	for _, fn := range subs {
		if val == nil {
			fn(nil)
			continue
		}
		c := *val
		fn(&c)
	}
}

// writeAtomic escribe en un temporal del mismo directorio y renombra sobre el
// destino, de modo que el estado anterior nunca queda a medias.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, stateFile+".tmp-*")
	if err != nil {
		return fmt.Errorf("session: crear temporal: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("session: escribir estado: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("session: cerrar temporal: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("session: publicar estado: %w", err)
	}
	return nil
}
