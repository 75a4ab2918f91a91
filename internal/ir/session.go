package ir

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Session is the explicit owner of the process-wide constant-uniquing table
// and platform configuration for one compilation lifetime, resolving the
// "process-wide constant map" open question by making the lifetime explicit
// rather than global. One process may hold several independent Sessions,
// e.g. one per compilation worker; a Function belongs to exactly one
// Session.
type Session struct {
	Platform PlatformConfig
	Log      *logrus.Logger

	mu        sync.Mutex
	constants map[constKey]*Constant
}

// NewSession creates a Session for the given platform configuration. If log
// is nil, a logger at Warn level (effectively silent for the Debug/Trace
// calls this package makes) is used.
func NewSession(cfg PlatformConfig, log *logrus.Logger) *Session {
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.WarnLevel)
	}
	return &Session{
		Platform:  cfg,
		Log:       log,
		constants: make(map[constKey]*Constant),
	}
}

// PInt returns the session's platform-width signed integer type.
func (s *Session) PInt() Type { return s.Platform.PInt() }

// PUint returns the session's platform-width unsigned integer type.
func (s *Session) PUint() Type { return s.Platform.PUint() }

// IntConst returns the unique Constant for the (v, typ) pair. typ must be an
// integer type.
func (s *Session) IntConst(v int64, typ Type) *Constant {
	if !typ.IsInt() {
		fail("const", "IntConst requires an integer type, got %s", typ)
	}
	return s.internConst(constKey{typ: typ, iv: v})
}

// FloatConst returns the unique Constant for the (v, f64) pair.
func (s *Session) FloatConst(v float64) *Constant {
	return s.internConst(constKey{typ: TypeF64, fv: v})
}

// StringConst returns the unique Constant for the (v, box) pair. Only box
// admits string literals, per the constant-uniquing contract.
func (s *Session) StringConst(v string) *Constant {
	return s.internConst(constKey{typ: TypeBox, sv: v})
}

// BoxedIntConst returns the unique Constant for an integer literal boxed at
// type box (e.g. the literal `0` appearing in JavaScript source, as opposed
// to an already-unboxed i32 zero).
func (s *Session) BoxedIntConst(v int64) *Constant {
	return s.internConst(constKey{typ: TypeBox, iv: v})
}

func (s *Session) internConst(key constKey) *Constant {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.constants[key]; ok {
		return c
	}
	c := &Constant{typ: key.typ, iv: key.iv, fv: key.fv, sv: key.sv}
	s.constants[key] = c
	s.Log.WithField("type", key.typ).Trace("ir: interned new constant")
	return c
}
