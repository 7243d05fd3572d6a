// Package grid owns the seat matrix for one checkout visit.  The grid
// is the source of truth for seat state: rendering reads from it and
// never the other way around.
package grid

import (
	"errors"
	"fmt"

	"github.com/kamilags232/cinestar-checkout/internal/model"
)

// rowLetters labels grid rows in order.  Ten rows is far more than the
// canonical 5x8 hall but keeps New usable for bigger layouts.
const rowLetters = "ABCDEFGHIJ"

// ErrUnknownSeat is returned when an operation names a seat id that
// does not exist in the grid.
var ErrUnknownSeat = errors.New("unknown seat")

// Grid is a fixed matrix of seats created exactly once per visit.
// Seats are stored in row-major order and indexed by id for lookups.
type Grid struct {
	rows  int
	cols  int
	seats []*model.Seat
	byID  map[string]*model.Seat
}

// New builds a rows x cols grid with every seat Available.  Seat ids
// combine the row letter with the 1-based column number, so the first
// row of the canonical layout is A1..A8.
func New(rows, cols int) (*Grid, error) {
	if rows < 1 || rows > len(rowLetters) || cols < 1 {
		return nil, fmt.Errorf("invalid grid size %dx%d", rows, cols)
	}
	g := &Grid{
		rows:  rows,
		cols:  cols,
		seats: make([]*model.Seat, 0, rows*cols),
		byID:  make(map[string]*model.Seat, rows*cols),
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			s := &model.Seat{
				ID:     fmt.Sprintf("%c%d", rowLetters[r], c+1),
				Row:    r,
				Col:    c,
				Status: model.SeatAvailable,
			}
			g.seats = append(g.seats, s)
			g.byID[s.ID] = s
		}
	}
	return g, nil
}

// Toggle flips a seat between Available and Selected.  Occupied seats
// are never selectable: toggling one is a no-op, not an error, so a
// stale click on a just-sold seat stays harmless.
func (g *Grid) Toggle(id string) error {
	s, ok := g.byID[id]
	if !ok {
		return ErrUnknownSeat
	}
	switch s.Status {
	case model.SeatAvailable:
		s.Status = model.SeatSelected
	case model.SeatSelected:
		s.Status = model.SeatAvailable
	}
	return nil
}

// MarkOccupied reconciles the backend's occupied set into the grid
// with full-replace semantics.  Seats in the set become Occupied, and
// any local selection on them is cleared.  Seats not in the set are
// downgraded back to Available only when they were previously
// Occupied; the customer's current selections are never touched.
func (g *Grid) MarkOccupied(ids []string) {
	occupied := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		occupied[id] = struct{}{}
	}
	for _, s := range g.seats {
		if _, ok := occupied[s.ID]; ok {
			s.Status = model.SeatOccupied
		} else if s.Status == model.SeatOccupied {
			s.Status = model.SeatAvailable
		}
	}
}

// Selected returns the ids of all selected seats ordered by grid
// position (row-major).
func (g *Grid) Selected() []string {
	var out []string
	for _, s := range g.seats {
		if s.Status == model.SeatSelected {
			out = append(out, s.ID)
		}
	}
	return out
}

// Status reports the current status of a seat.
func (g *Grid) Status(id string) (model.SeatStatus, bool) {
	s, ok := g.byID[id]
	if !ok {
		return "", false
	}
	return s.Status, true
}

// Seats returns a snapshot of every seat in row-major order for
// rendering.  Mutating the returned slice does not affect the grid.
func (g *Grid) Seats() []model.Seat {
	out := make([]model.Seat, len(g.seats))
	for i, s := range g.seats {
		out[i] = *s
	}
	return out
}

// Size returns the grid dimensions.
func (g *Grid) Size() (rows, cols int) {
	return g.rows, g.cols
}
