package core

import (
	"context"
)

// Session api caller authentication
type Session interface {
	// Login return the account the access token was issued to
	Login(ctx context.Context, accessToken string) (AccountID, error)
}
