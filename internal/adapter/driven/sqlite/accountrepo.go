package sqlite

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ericfisherdev/pdpanel/internal/domain/model"
	"github.com/ericfisherdev/pdpanel/internal/domain/port/driven"
)

// ErrEncryptionKeyNotSet is returned when a stored API access key was sealed
// with a secret key but the repo was constructed without one.
var ErrEncryptionKeyNotSet = errors.New("encryption key not configured: set PDPANEL_SECRET_KEY")

// Stored API access keys carry one of these prefixes.
const (
	sealedPrefix = "gcm:"
	plainPrefix  = "plain:"
)

// Compile-time interface satisfaction check.
var _ driven.AccountStore = (*AccountRepo)(nil)

// AccountRepo is the SQLite implementation of the AccountStore port interface.
// The account lives in a single row keyed by model.AccountAttr. The API access
// key is sealed with AES-256-GCM when a key is configured.
type AccountRepo struct {
	db  *DB
	key []byte // 32-byte AES-256 key; nil stores the access key unsealed.
}

// NewAccountRepo creates a new AccountRepo. key must be 32 bytes for AES-256-GCM, or nil.
func NewAccountRepo(db *DB, key []byte) *AccountRepo {
	return &AccountRepo{db: db, key: key}
}

// Get returns the stored account, or (nil, nil) if none has been saved.
func (r *AccountRepo) Get(ctx context.Context) (*model.Account, error) {
	const query = `SELECT subdomain, api_access_key, api_timeout, updated_at FROM pagerduty_account WHERE attr = ?`

	var account model.Account
	var stored, updatedAt string
	err := r.db.Reader.QueryRowContext(ctx, query, model.AccountAttr).
		Scan(&account.Subdomain, &stored, &account.APITimeout, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}

	account.APIAccessKey, err = r.open(stored)
	if err != nil {
		return nil, fmt.Errorf("decrypt api access key: %w", err)
	}

	account.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}

	return &account, nil
}

// Save creates or overwrites the stored account.
func (r *AccountRepo) Save(ctx context.Context, account model.Account) error {
	sealed, err := r.seal(account.APIAccessKey)
	if err != nil {
		return err
	}

	const query = `INSERT OR REPLACE INTO pagerduty_account (attr, subdomain, api_access_key, api_timeout, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)`
	_, err = r.db.Writer.ExecContext(ctx, query, model.AccountAttr, account.Subdomain, sealed, account.APITimeout)
	if err != nil {
		return fmt.Errorf("save account %q: %w", account.Subdomain, err)
	}
	return nil
}

// Delete removes the stored account. No-op if none exists.
func (r *AccountRepo) Delete(ctx context.Context) error {
	const query = `DELETE FROM pagerduty_account WHERE attr = ?`
	if _, err := r.db.Writer.ExecContext(ctx, query, model.AccountAttr); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

// seal returns the stored form of plaintext: the base64 of nonce || ciphertext || tag
// when a key is configured, the plaintext itself otherwise.
func (r *AccountRepo) seal(plaintext string) (string, error) {
	if r.key == nil {
		return plainPrefix + plaintext, nil
	}

	gcm, err := newGCM(r.key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("rand nonce: %w", err)
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return sealedPrefix + base64.StdEncoding.EncodeToString(ciphertext), nil
}

func (r *AccountRepo) open(stored string) (string, error) {
	if rest, ok := strings.CutPrefix(stored, plainPrefix); ok {
		return rest, nil
	}

	encoded, ok := strings.CutPrefix(stored, sealedPrefix)
	if !ok {
		return "", errors.New("unknown api access key encoding")
	}
	if r.key == nil {
		return "", ErrEncryptionKeyNotSet
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("base64 decode: %w", err)
	}

	gcm, err := newGCM(r.key)
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("gcm.Open: %w", err)
	}

	return string(plaintext), nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cipher.NewGCM: %w", err)
	}
	return gcm, nil
}
