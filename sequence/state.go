package sequence

// State names the sequencer's position in the light sequence.
type State uint8

const (
	Inactive State = iota
	OrangeSet
	FadeOut
	BetweenFades
	FadeIn
	BlueSet
	IdleUntilTouchFinished
)

func (s State) String() string {
	switch s {
	case Inactive:
		return "inactive"
	case OrangeSet:
		return "orange-set"
	case FadeOut:
		return "fade-out"
	case BetweenFades:
		return "between-fades"
	case FadeIn:
		return "fade-in"
	case BlueSet:
		return "blue-set"
	case IdleUntilTouchFinished:
		return "idle-until-touch-finished"
	default:
		return "unknown"
	}
}
