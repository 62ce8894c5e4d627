package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/smartstock-io/smartstock-backend/pkg/enums"
	pkgerrors "github.com/smartstock-io/smartstock-backend/pkg/errors"
	"github.com/smartstock-io/smartstock-backend/pkg/logger"
	redisclient "github.com/smartstock-io/smartstock-backend/pkg/redis"
)

// identityNamespace seeds deterministic ids so the same email logs into the
// same identity across devices without any account table.
var identityNamespace = uuid.MustParse("6e9cbf02-9bd1-4b5e-9f70-4b8a36a9d210")

// Identity is the authenticated principal. No credential is ever verified:
// the role and name are derived from the email string alone.
type Identity struct {
	ID      uuid.UUID  `json:"id"`
	Name    string     `json:"name"`
	Email   string     `json:"email"`
	Role    enums.Role `json:"role"`
	StoreID *uuid.UUID `json:"storeId,omitempty"`
}

// RegisterInput carries the already form-validated registration fields.
type RegisterInput struct {
	Name  string
	Email string
	Role  enums.Role
}

// Store manages identities persisted in durable client storage.
type Store interface {
	Login(ctx context.Context, email, password string) (*Identity, error)
	Register(ctx context.Context, input RegisterInput) (*Identity, error)
	Logout(ctx context.Context, subject string) error
	Current(ctx context.Context, subject string) (*Identity, error)
}

type store struct {
	kv   redisclient.KV
	logg *logger.Logger
}

// NewStore wires the session store against durable storage.
func NewStore(kv redisclient.KV, logg *logger.Logger) (Store, error) {
	if kv == nil {
		return nil, errors.New("kv store is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &store{kv: kv, logg: logg}, nil
}

// Login derives an identity from the email: the name is the local part, the
// role is admin when the email contains "admin", and admins get a synthetic
// store id. The password is accepted unverified; real authentication is
// explicitly out of scope for this deployment.
func (s *store) Login(ctx context.Context, email, password string) (*Identity, error) {
	_ = password

	email = strings.TrimSpace(email)
	local, ok := localPart(email)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "malformed email")
	}

	identity := &Identity{
		ID:    uuid.NewSHA1(identityNamespace, []byte(strings.ToLower(email))),
		Name:  local,
		Email: email,
		Role:  enums.RoleCustomer,
	}
	if strings.Contains(email, "admin") {
		identity.Role = enums.RoleAdmin
		storeID := uuid.NewSHA1(identityNamespace, []byte("store:"+strings.ToLower(email)))
		identity.StoreID = &storeID
	}

	if err := s.persist(ctx, identity); err != nil {
		return nil, err
	}
	return identity, nil
}

// Register always succeeds for input that passed form validation and assigns
// a freshly generated identity.
func (s *store) Register(ctx context.Context, input RegisterInput) (*Identity, error) {
	input.Email = strings.TrimSpace(input.Email)
	if _, ok := localPart(input.Email); !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "malformed email")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if !input.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
	}

	identity := &Identity{
		ID:    uuid.New(),
		Name:  strings.TrimSpace(input.Name),
		Email: input.Email,
		Role:  input.Role,
	}
	if input.Role == enums.RoleAdmin {
		storeID := uuid.New()
		identity.StoreID = &storeID
	}

	if err := s.persist(ctx, identity); err != nil {
		return nil, err
	}
	return identity, nil
}

// Logout clears the persisted identity. The locale preference survives.
func (s *store) Logout(ctx context.Context, subject string) error {
	if strings.TrimSpace(subject) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "subject is required")
	}
	return s.kv.Del(ctx, redisclient.IdentityKey(subject))
}

// Current rehydrates the persisted identity for the subject.
func (s *store) Current(ctx context.Context, subject string) (*Identity, error) {
	raw, err := s.kv.Get(ctx, redisclient.IdentityKey(subject))
	if err != nil {
		if redisclient.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "no active session")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading identity")
	}

	var identity Identity
	if err := json.Unmarshal([]byte(raw), &identity); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decoding stored identity")
	}
	return &identity, nil
}

func (s *store) persist(ctx context.Context, identity *Identity) error {
	payload, err := json.Marshal(identity)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding identity")
	}
	if err := s.kv.Set(ctx, redisclient.IdentityKey(identity.ID.String()), string(payload), 0); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persisting identity")
	}
	return nil
}

func localPart(email string) (string, bool) {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", false
	}
	return email[:at], true
}
