package controller

import "errors"

var (
	ErrUnauthorized      = errors.New("insufficient permission")
	ErrCapacityExceeded  = errors.New("league is full")
	ErrInvalidTeam       = errors.New("team is not available")
	ErrNoPicksYet        = errors.New("no picks yet")
	ErrNoMatchupsLoaded  = errors.New("no matchups loaded for the week")
	ErrPicksHidden       = errors.New("picks are hidden until every game has kicked off")
	ErrResultsIncomplete = errors.New("not every game of the week is final")
	ErrWeekResolved      = errors.New("week already resolved")
)
