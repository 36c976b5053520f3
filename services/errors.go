package services

import (
	"errors"

	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/models"
)

// Shared errors used across services and the HTTP mapping layer.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed         = errors.New("validation failed")
	ErrPasswordTooShort         = errors.New("password is too short")
	ErrEmailRequired            = errors.New("email is required")
	ErrFullNameRequired         = errors.New("full name is required")
	ErrTournamentNameRequired   = errors.New("tournament name is required")
	ErrTournamentDatesRequired  = errors.New("tournament start date is required")
	ErrTournamentInvalidDates   = errors.New("tournament end date must be after start date")
	ErrMatchSamePlayer          = errors.New("a match requires two distinct players")
	ErrMatchPlayerNotRegistered = errors.New("player is not registered for this tournament")
	ErrMatchAlreadyCompleted    = errors.New("match is already completed")
	ErrMatchSetsRequired        = errors.New("at least one set is required to complete a match")
	ErrMatchNegativeGames       = errors.New("set game counts must be non-negative")
	ErrMatchInvalidSetNumbers   = errors.New("set numbers must be unique and start at 1")
	ErrInvalidRole              = errors.New("invalid role provided")
	ErrInvalidVerification      = errors.New("invalid verification status provided")
	ErrOnlyPlayersCanRegister   = errors.New("only users with the player role can join a tournament")

	// Conflicts
	ErrUserEmailConflict        = errors.New("email address is already in use")
	ErrTournamentNameConflict   = errors.New("tournament name already exists")
	ErrPlayerAlreadyRegistered  = errors.New("player is already registered for this tournament")

	// Authentication / authorization
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")
	ErrAccountNotVerified     = errors.New("account is pending verification")

	// Entity-specific lookups
	ErrUserNotFound       = errors.New("user not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrPlayerNotFound     = errors.New("player registration not found")
)

// authorizeMutation gates privileged writes. An admin awaiting verification
// gets a distinct error so the client can explain the pending state.
func authorizeMutation(actor *models.User) error {
	if actor.CanMutate() {
		return nil
	}
	if actor.Role == models.RoleAdmin && actor.VerificationStatus != models.VerificationApproved {
		return ErrAccountNotVerified
	}
	return ErrForbiddenOperation
}
