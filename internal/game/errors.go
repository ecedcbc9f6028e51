package game

import "errors"

var (
	// ErrOutOfBounds is returned for a (col,row) outside the grid.
	ErrOutOfBounds = errors.New("cell out of bounds")
	// ErrCellOccupied is returned when placing into a cell that already
	// holds a unit, or one already changed this tick.
	ErrCellOccupied = errors.New("cell occupied")
	// ErrInsufficientResources is returned when the balance cannot cover a placement.
	ErrInsufficientResources = errors.New("insufficient resources")
	// ErrCollectibleGone is returned when collecting an id that is no longer active.
	ErrCollectibleGone = errors.New("collectible not active")
	// ErrGameOver is returned by Apply once the engine is terminal.
	ErrGameOver = errors.New("game over")
)
