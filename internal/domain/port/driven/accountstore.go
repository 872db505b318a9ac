package driven

import (
	"context"

	"github.com/ericfisherdev/pdpanel/internal/domain/model"
)

// AccountStore defines the driven port for the singleton PagerDuty account
// attribute. The adapter is responsible for protecting the API access key at
// rest; this interface operates on plaintext values.
type AccountStore interface {
	// Get returns the stored account, or (nil, nil) when none has been saved.
	Get(ctx context.Context) (*model.Account, error)

	// Save creates or overwrites the stored account.
	Save(ctx context.Context, account model.Account) error

	// Delete removes the stored account. Deleting a missing account is not an error.
	Delete(ctx context.Context) error
}
