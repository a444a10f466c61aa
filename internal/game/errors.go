package game

import (
	"errors"
	"fmt"
)

// Rejections returned by the engine. Every one of them leaves the input game
// untouched; callers re-prompt and try again.
var (
	ErrInsufficientPlayers      = errors.New("at least two active players are required")
	ErrNoActivePlayers          = errors.New("no active players")
	ErrPlayerNotFound           = errors.New("player not found")
	ErrPlayerNotActive          = errors.New("player on turn is not active")
	ErrDuplicatePlayer          = errors.New("duplicate player id")
	ErrCallRequired             = errors.New("cannot check, a call is required")
	ErrNothingToCall            = errors.New("nothing to call")
	ErrInvalidFoldState         = errors.New("only an active player can fold")
	ErrNotBettable              = errors.New("cannot bet, a bet already exists")
	ErrRaiseNotAllowed          = errors.New("raise not allowed")
	ErrRaiseBelowCurrentBet     = errors.New("amount must exceed the current bet")
	ErrExceedsStack             = errors.New("amount exceeds stack")
	ErrBetBelowMinimum          = errors.New("bet below minimum")
	ErrRaiseBelowMinimum        = errors.New("raise below minimum")
	ErrInsufficientStackToRaise = errors.New("stack too small to raise")
	ErrNoChipsToAllIn           = errors.New("no chips to go all-in")
	ErrRoundNotComplete         = errors.New("betting round is not complete")
	ErrUnknownAction            = errors.New("unknown action")

	ErrHandComplete     = errors.New("hand is already complete")
	ErrHandInProgress   = errors.New("hand is still in progress")
	ErrNotShowdown      = errors.New("hand is not at showdown")
	ErrShowdownNotReady = errors.New("betting is still open")
	ErrIneligibleWinner = errors.New("winner is not eligible for pot")
	ErrMissingWinner    = errors.New("pot has no winner")
	ErrWinnerCount      = errors.New("winner lists do not match pots")
	ErrNothingToUndo    = errors.New("nothing to undo")

	ErrInvalidState = errors.New("invalid game state")
)

// The two reasons a raise is refused. Both match ErrRaiseNotAllowed.
var (
	ErrNoBetToRaise = fmt.Errorf("%w: no bet to raise", ErrRaiseNotAllowed)
	ErrReopenClosed = fmt.Errorf("%w: betting was not reopened", ErrRaiseNotAllowed)
)
