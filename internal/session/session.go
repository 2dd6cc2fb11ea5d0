package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"

	CookieName = "session"
)

var (
	ErrInvalid = errors.New("invalid session")
	ErrEpoch   = errors.New("session from a previous server run")
	ErrIdle    = errors.New("session idle too long")
)

type Claims struct {
	Subject uint
	Role    string
	Epoch   string
	Seen    time.Time
	Expires time.Time
}

// Manager signs and checks session tokens. Tokens issued before the
// process started carry a different epoch and are refused.
type Manager struct {
	secret []byte
	epoch  string
	ttl    time.Duration
	idle   time.Duration
	now    func() time.Time
}

func NewManager(secret string, ttl, idle time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		epoch:  uuid.NewString(),
		ttl:    ttl,
		idle:   idle,
		now:    time.Now,
	}
}

func (m *Manager) TTL() time.Duration { return m.ttl }

func (m *Manager) Issue(subject uint, role string) (string, error) {
	now := m.now()
	return m.sign(Claims{
		Subject: subject,
		Role:    role,
		Epoch:   m.epoch,
		Seen:    now,
		Expires: now.Add(m.ttl),
	})
}

// Refresh stamps the token as seen now, keeping its expiry.
func (m *Manager) Refresh(c *Claims) (string, error) {
	next := *c
	next.Seen = m.now()
	return m.sign(next)
}

func (m *Manager) Parse(token string) (*Claims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalid
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalid
	}

	sub, ok1 := mc["sub"].(float64)
	role, ok2 := mc["role"].(string)
	epoch, ok3 := mc["epoch"].(string)
	seen, ok4 := mc["seen"].(float64)
	exp, ok5 := mc["exp"].(float64)
	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 {
		return nil, ErrInvalid
	}

	c := &Claims{
		Subject: uint(sub),
		Role:    role,
		Epoch:   epoch,
		Seen:    time.Unix(int64(seen), 0),
		Expires: time.Unix(int64(exp), 0),
	}

	if c.Epoch != m.epoch {
		return nil, ErrEpoch
	}
	if c.Role == RoleAdmin && m.idle > 0 && m.now().Sub(c.Seen) > m.idle {
		return nil, ErrIdle
	}
	return c, nil
}

func (m *Manager) sign(c Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   c.Subject,
		"role":  c.Role,
		"epoch": c.Epoch,
		"seen":  c.Seen.Unix(),
		"exp":   c.Expires.Unix(),
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}
