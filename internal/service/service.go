// Package service holds the application use cases. Services validate input,
// enforce ownership and role rules, and translate repository errors into the
// sentinels below, which the HTTP layer maps to status codes.
package service

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"time"

	"storeadmin/internal/repository"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("resource not found")
	ErrReaderNil  = errors.New("reader is nil")
	ErrForbidden  = errors.New("you are not allowed to perform this action")
	ErrConflict   = errors.New("resource was modified concurrently, retry")
	ErrInUse      = errors.New("resource is still in use")

	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrInvalidTransition = errors.New("order status transition is not allowed")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrPromotionInvalid  = errors.New("promotion code is not valid for this order")
	ErrPromotionTaken    = errors.New("promotion code already exists")

	ErrAlreadyReviewed = errors.New("product already reviewed")

	ErrSlugTaken          = errors.New("organization slug is already taken")
	ErrAlreadyMember      = errors.New("user is already a member")
	ErrInvitationPending  = errors.New("an invitation for this email is already pending")
	ErrInvitationInvalid  = errors.New("invitation is no longer valid")
	ErrInvitationExpired  = errors.New("invitation has expired")
	ErrMembershipInactive = errors.New("membership is not active")
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// page normalizes limit/offset into a repository query.
func page(limit, offset int) repository.PageQuery {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return repository.PageQuery{Limit: limit, Offset: offset}
}

// notFound maps a missing row to ErrNotFound and passes other errors through.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

type clock func() time.Time

func utcNow() time.Time { return time.Now().UTC() }
