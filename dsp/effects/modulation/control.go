package modulation

// ControlSource names what drives the wah center frequency.
type ControlSource int

const (
	// ControlEnvelope derives the sweep from the input amplitude envelope.
	ControlEnvelope ControlSource = iota
	// ControlPedal takes the sweep from an attached Pedal.
	ControlPedal
)

// String returns "envelope" or "pedal".
func (c ControlSource) String() string {
	if c == ControlPedal {
		return "pedal"
	}

	return "envelope"
}
