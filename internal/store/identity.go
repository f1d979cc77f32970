package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gastroflow/gastroflow/internal/model"
	"github.com/gastroflow/gastroflow/internal/utils"
)

// account pairs an identity with its password hash.  Hashes exist only so
// the mock login behaves like a real one; nothing is persisted.
type account struct {
	identity model.Identity
	hash     string
}

// IdentityStore owns the current identity and every known account.  At most
// one identity is current at a time (single-session model).  Login and
// Register resolve after a simulated network delay and are guarded against
// concurrent double submission.
type IdentityStore struct {
	mu         sync.Mutex
	accounts   map[string]*account // keyed by normalized email
	current    *model.Identity
	inFlight   bool
	latency    time.Duration
	bcryptCost int
	log        *zap.Logger
	onLogout   []func()
}

// NewIdentityStore builds a store pre-seeded with the two demo accounts.
// latency is the simulated backend delay applied to Login and Register;
// pass 0 to disable it (tests do).
func NewIdentityStore(latency time.Duration, bcryptCost int, log *zap.Logger) *IdentityStore {
	s := &IdentityStore{
		accounts:   make(map[string]*account),
		latency:    latency,
		bcryptCost: bcryptCost,
		log:        log,
	}
	s.seed()
	return s
}

// seed installs the fixed demo accounts the mock backend knows about.
func (s *IdentityStore) seed() {
	demo := []struct {
		identity model.Identity
		password string
	}{
		{
			identity: model.Identity{
				ID:              uuid.NewString(),
				Email:           "ana.perez@example.com",
				Nombre:          "Ana",
				Apellidos:       "Pérez",
				FechaNacimiento: "1995-05-20",
				Comuna:          "Providencia",
				Instagram:       "@anaperez",
				Celular:         "+569-12345678",
				Promociones:     true,
			},
			password: "password",
		},
		{
			identity: model.Identity{
				ID:    uuid.NewString(),
				Email: "admin@admin.com",
			},
			password: "admin",
		},
	}
	for _, d := range demo {
		hash, err := utils.HashPassword(d.password, s.bcryptCost)
		if err != nil {
			s.log.Error("seed account hash failed", zap.String("email", d.identity.Email), zap.Error(err))
			continue
		}
		s.accounts[d.identity.Email] = &account{identity: d.identity, hash: hash}
	}
}

// OnLogout registers a hook fired whenever the session ends.  The session
// aggregate uses this to clear identity-scoped collections.
func (s *IdentityStore) OnLogout(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLogout = append(s.onLogout, fn)
}

// RegisterInput carries the registration form fields.  Comuna and
// Instagram are optional; everything else is required.
type RegisterInput struct {
	Email           string
	Password        string
	Nombre          string
	Apellidos       string
	FechaNacimiento string // DD-MM-YYYY
	Celular         string
	Comuna          string
	Instagram       string
	Promociones     bool
}

// Register validates the input, creates a new account and makes it the
// current identity.  It resolves after the simulated delay and rejects a
// second in-flight call with ErrOpInFlight.
func (s *IdentityStore) Register(ctx context.Context, in RegisterInput) (model.Identity, error) {
	release, err := s.acquire()
	if err != nil {
		return model.Identity{}, err
	}
	defer release()

	email := utils.NormalizeEmail(in.Email)
	if !utils.ValidEmail(email) {
		return model.Identity{}, invalidField("email", "email no válido")
	}
	if len(in.Password) < 8 {
		return model.Identity{}, invalidField("password", "la contraseña debe tener al menos 8 caracteres")
	}
	if strings.TrimSpace(in.Nombre) == "" {
		return model.Identity{}, invalidField("nombre", "nombre es requerido")
	}
	if strings.TrimSpace(in.Apellidos) == "" {
		return model.Identity{}, invalidField("apellidos", "apellidos son requeridos")
	}
	dob, err := utils.ParseBirthDate(in.FechaNacimiento)
	if err != nil {
		return model.Identity{}, invalidField("fechaNacimiento", "fecha no válida, usa el formato DD-MM-YYYY")
	}
	phone, err := utils.NormalizePhone(in.Celular)
	if err != nil {
		return model.Identity{}, invalidField("celular", "el celular debe tener 11 dígitos en total")
	}

	if err := s.simulateDelay(ctx); err != nil {
		return model.Identity{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[email]; exists {
		return model.Identity{}, invalidField("email", "el email ya está registrado")
	}
	hash, err := utils.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return model.Identity{}, err
	}
	id := model.Identity{
		ID:              uuid.NewString(),
		Email:           email,
		Nombre:          strings.TrimSpace(in.Nombre),
		Apellidos:       strings.TrimSpace(in.Apellidos),
		FechaNacimiento: dob,
		Comuna:          strings.TrimSpace(in.Comuna),
		Instagram:       strings.TrimSpace(in.Instagram),
		Celular:         phone,
		Promociones:     in.Promociones,
	}
	s.accounts[email] = &account{identity: id, hash: hash}
	s.current = &id
	s.log.Info("identity registered", zap.String("identity_id", id.ID))
	return id, nil
}

// Login checks the credentials against the known accounts and, on success,
// makes that identity current.  Same delay and in-flight rules as Register.
func (s *IdentityStore) Login(ctx context.Context, email, password string) (model.Identity, error) {
	release, err := s.acquire()
	if err != nil {
		return model.Identity{}, err
	}
	defer release()

	if err := s.simulateDelay(ctx); err != nil {
		return model.Identity{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[utils.NormalizeEmail(email)]
	if !ok || !utils.VerifyPassword(acc.hash, password) {
		return model.Identity{}, ErrInvalidCredentials
	}
	id := acc.identity
	s.current = &id
	s.log.Info("identity logged in", zap.String("identity_id", id.ID))
	return id, nil
}

// Logout clears the current identity and fires the registered hooks so that
// session-scoped collections empty out.  Safe to call repeatedly.
func (s *IdentityStore) Logout() {
	s.mu.Lock()
	was := s.current != nil
	s.current = nil
	hooks := s.onLogout
	s.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
	if was {
		s.log.Info("identity logged out")
	}
}

// Current returns the current identity, if any.
func (s *IdentityStore) Current() (model.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return model.Identity{}, false
	}
	return *s.current, true
}

// ByID looks up any known identity by id, current or not.
func (s *IdentityStore) ByID(id string) (model.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acc := range s.accounts {
		if acc.identity.ID == id {
			return acc.identity, true
		}
	}
	return model.Identity{}, false
}

// UpdateInput carries a partial profile update.  Nil pointers mean "leave
// the field alone".  A password change requires all three password fields.
type UpdateInput struct {
	Nombre          *string
	Apellidos       *string
	FechaNacimiento *string // DD-MM-YYYY
	Celular         *string
	Comuna          *string
	Instagram       *string
	Promociones     *bool

	CurrentPassword    string
	NewPassword        string
	ConfirmNewPassword string
}

// UpdateProfile merges the changed fields into the current identity after
// validating each present field with the registration rules.  Email never
// changes.  Past reservation contact snapshots are unaffected.
func (s *IdentityStore) UpdateProfile(in UpdateInput) (model.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return model.Identity{}, ErrNoIdentity
	}
	acc := s.accounts[s.current.Email]

	id := *s.current
	if in.Nombre != nil {
		if strings.TrimSpace(*in.Nombre) == "" {
			return model.Identity{}, invalidField("nombre", "nombre es requerido")
		}
		id.Nombre = strings.TrimSpace(*in.Nombre)
	}
	if in.Apellidos != nil {
		if strings.TrimSpace(*in.Apellidos) == "" {
			return model.Identity{}, invalidField("apellidos", "apellidos son requeridos")
		}
		id.Apellidos = strings.TrimSpace(*in.Apellidos)
	}
	if in.FechaNacimiento != nil {
		if *in.FechaNacimiento == "" {
			id.FechaNacimiento = ""
		} else {
			dob, err := utils.ParseBirthDate(*in.FechaNacimiento)
			if err != nil {
				return model.Identity{}, invalidField("fechaNacimiento", "fecha no válida, usa el formato DD-MM-YYYY")
			}
			id.FechaNacimiento = dob
		}
	}
	if in.Celular != nil {
		phone, err := utils.NormalizePhone(*in.Celular)
		if err != nil {
			return model.Identity{}, invalidField("celular", "el celular debe tener 11 dígitos en total")
		}
		id.Celular = phone
	}
	if in.Comuna != nil {
		id.Comuna = strings.TrimSpace(*in.Comuna)
	}
	if in.Instagram != nil {
		id.Instagram = strings.TrimSpace(*in.Instagram)
	}
	if in.Promociones != nil {
		id.Promociones = *in.Promociones
	}

	var newHash string
	if in.NewPassword != "" || in.CurrentPassword != "" || in.ConfirmNewPassword != "" {
		if in.CurrentPassword == "" {
			return model.Identity{}, invalidField("currentPassword", "contraseña actual es requerida")
		}
		if len(in.NewPassword) < 8 {
			return model.Identity{}, invalidField("newPassword", "la contraseña debe tener al menos 8 caracteres")
		}
		if in.NewPassword != in.ConfirmNewPassword {
			return model.Identity{}, invalidField("confirmNewPassword", "las contraseñas no coinciden")
		}
		if acc == nil || !utils.VerifyPassword(acc.hash, in.CurrentPassword) {
			return model.Identity{}, invalidField("currentPassword", "contraseña actual incorrecta")
		}
		hash, err := utils.HashPassword(in.NewPassword, s.bcryptCost)
		if err != nil {
			return model.Identity{}, err
		}
		newHash = hash
	}

	*s.current = id
	if acc != nil {
		acc.identity = id
		if newHash != "" {
			acc.hash = newHash
		}
	}
	s.log.Info("profile updated", zap.String("identity_id", id.ID))
	return id, nil
}

// acquire claims the in-flight flag for login/register, returning the
// release func.  A second claim before release fails with ErrOpInFlight.
func (s *IdentityStore) acquire() (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return nil, ErrOpInFlight
	}
	s.inFlight = true
	return func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}, nil
}

// simulateDelay sleeps for the configured mock-backend latency, honouring
// context cancellation.
func (s *IdentityStore) simulateDelay(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
