package session

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avelichko/snipcli/internal/client/models"
	"github.com/avelichko/snipcli/internal/client/repositories/credentials"
	"github.com/avelichko/snipcli/internal/common"
	"github.com/avelichko/snipcli/internal/cryptox"
	"github.com/avelichko/snipcli/internal/dbx"
)

// Store persists the single credential slot: one token and one profile
// snapshot. Load returns (nil, nil) when no token is stored — that absence is
// the sole "logged out" signal.
type Store interface {
	Load(ctx context.Context) (*models.Session, error)
	Save(ctx context.Context, sess *models.Session) error
	Clear(ctx context.Context) error
}

// CredentialStore keeps the slot in the local sqlite database, each record
// sealed with the machine-local key so plaintext tokens never touch disk.
type CredentialStore struct {
	db  *sql.DB
	key []byte
}

func NewCredentialStore(db *sql.DB, key []byte) *CredentialStore {
	return &CredentialStore{db: db, key: key}
}

func (s *CredentialStore) Load(ctx context.Context) (*models.Session, error) {
	repo := credentials.NewSQLiteRepository(s.db)

	sealedToken, err := repo.Get(ctx, common.TokenSlotKey)
	if err != nil {
		return nil, err
	}
	if sealedToken == nil {
		return nil, nil
	}

	var token string
	if err := cryptox.Open(sealedToken, s.key, &token); err != nil {
		return nil, fmt.Errorf("unseal token: %w", err)
	}
	if token == "" {
		return nil, nil
	}

	sess := &models.Session{Token: token}

	sealedProfile, err := repo.Get(ctx, common.ProfileSlotKey)
	if err != nil {
		return nil, err
	}
	if sealedProfile != nil {
		if err := cryptox.Open(sealedProfile, s.key, &sess.Profile); err != nil {
			return nil, fmt.Errorf("unseal profile: %w", err)
		}
	}

	return sess, nil
}

// Save writes both records in a single transaction so the slot is never left
// half-updated.
func (s *CredentialStore) Save(ctx context.Context, sess *models.Session) error {
	sealedToken, err := cryptox.Seal(sess.Token, s.key)
	if err != nil {
		return fmt.Errorf("seal token: %w", err)
	}
	sealedProfile, err := cryptox.Seal(sess.Profile, s.key)
	if err != nil {
		return fmt.Errorf("seal profile: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := credentials.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.TokenSlotKey, sealedToken); err != nil {
			return err
		}
		return repo.Set(ctx, common.ProfileSlotKey, sealedProfile)
	})
}

func (s *CredentialStore) Clear(ctx context.Context) error {
	return credentials.NewSQLiteRepository(s.db).Clear(ctx)
}
