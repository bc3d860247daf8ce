package tui

import "github.com/Veraticus/coinpurse/internal/model"

// Every async result carries the screen generation it was issued from.
// Results from a screen that has since been left are dropped.

type loadedMsg struct {
	err error
	gen int
}

type loginMsg struct {
	err    error
	result model.AuthResult
	gen    int
}

type recoveryMsg struct {
	err error
	gen int
}

type mutationMsg struct {
	err    error
	notice string
	gen    int
	// next is the screen to show once the mutation succeeded.
	next Screen
}
