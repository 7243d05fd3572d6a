package model

// SeatStatus enumerates the states a seat can be in during a checkout
// visit.  A seat moves to Selected only from Available, and an
// occupancy sync that reports a seat as sold forces it to Occupied
// regardless of any local selection.
type SeatStatus string

const (
	SeatAvailable SeatStatus = "AVAILABLE" // free and selectable
	SeatOccupied  SeatStatus = "OCCUPIED"  // sold according to the backend
	SeatSelected  SeatStatus = "SELECTED"  // picked by the customer in this visit
)

// Seat is a single position in the hall grid as seen by one checkout
// visit.  The ID combines the row letter with the 1-based column
// number (e.g. "C4") and doubles as the identifier sent to the
// backend in occupancy and order payloads.
//
// Fields:
//  ID     – row letter + column number, unique within the grid.
//  Row    – 0-based row index.
//  Col    – 0-based column index.
//  Status – current availability state.
type Seat struct {
	ID     string     `json:"id"`
	Row    int        `json:"row"`
	Col    int        `json:"col"`
	Status SeatStatus `json:"status"`
}
