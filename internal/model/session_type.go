package model

import "strings"

// SessionType describes one presentation format offered for a
// showing.  The Value is a two-part code "<KIND>-<LANG>" (e.g.
// "3D-dub"); only the KIND prefix ever affects pricing.  The Label is
// the human-readable text shown in recaps and sent to the backend.
//
// Fields:
//  Value – the two-part session code.
//  Label – display text for the code.
type SessionType struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// sessionTypes lists the presentation formats the checkout offers.
// Fixed configuration, never mutated.
var sessionTypes = []SessionType{
	{Value: "2D-dub", Label: "2D Dublado"},
	{Value: "2D-leg", Label: "2D Legendado"},
	{Value: "3D-dub", Label: "3D Dublado"},
	{Value: "3D-leg", Label: "3D Legendado"},
	{Value: "IMAX-leg", Label: "IMAX Legendado"},
}

// SessionTypes returns the configured presentation formats in display
// order.
func SessionTypes() []SessionType {
	out := make([]SessionType, len(sessionTypes))
	copy(out, sessionTypes)
	return out
}

// SessionTypeLabel returns the display label for a session code.  An
// unknown code falls back to the raw value so recaps never render
// empty.
func SessionTypeLabel(value string) string {
	for _, st := range sessionTypes {
		if st.Value == value {
			return st.Label
		}
	}
	return value
}

// SessionKind extracts the pricing-relevant prefix of a session code:
// the part before the first '-'.  "3D-dub" yields "3D"; a code with
// no dash is returned as-is.
func SessionKind(value string) string {
	kind, _, _ := strings.Cut(value, "-")
	return kind
}
