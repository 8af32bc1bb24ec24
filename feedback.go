package eggmatch

// Tone classifies a feedback message.
type Tone uint8

const (
	ToneNone      Tone = iota // cleared
	ToneNeutral               // an item was picked up
	TonePositive              // an item matched its target
	ToneNegative              // shapes differed
	ToneCelebrate             // every target is matched
)

func (t Tone) String() string {
	switch t {
	case ToneNeutral:
		return "neutral"
	case TonePositive:
		return "positive"
	case ToneNegative:
		return "negative"
	case ToneCelebrate:
		return "celebrate"
	default:
		return "none"
	}
}

// ParseTone maps a tone name back to its value. Unknown names report false.
func ParseTone(s string) (Tone, bool) {
	for t := ToneNone; t <= ToneCelebrate; t++ {
		if t.String() == s {
			return t, true
		}
	}
	return ToneNone, false
}

// Feedback is the last outcome shown to the player.
type Feedback struct {
	Text  string
	Color Color
	Tone  Tone
}

// FeedbackSink receives every feedback write. The board's label implements it.
type FeedbackSink interface {
	SetFeedback(Feedback)
}

// Messages holds the text shown for each tone.
type Messages struct {
	PickUp   string
	Match    string
	Mismatch string
	Complete string
}

// DefaultMessages returns the built-in English messages.
func DefaultMessages() Messages {
	return Messages{
		PickUp:   "Picked up an egg...",
		Match:    "Correct! The shapes are the same!",
		Mismatch: "Hmm... that shape doesn't look the same. Try again?",
		Complete: "Great job! Every egg is in the right place!",
	}
}

// withDefaults fills empty messages from DefaultMessages.
func (m Messages) withDefaults() Messages {
	d := DefaultMessages()
	if m.PickUp == "" {
		m.PickUp = d.PickUp
	}
	if m.Match == "" {
		m.Match = d.Match
	}
	if m.Mismatch == "" {
		m.Mismatch = d.Mismatch
	}
	if m.Complete == "" {
		m.Complete = d.Complete
	}
	return m
}

// feedback builds the Feedback value for a tone.
func (m Messages) feedback(t Tone) Feedback {
	switch t {
	case ToneNeutral:
		return Feedback{Text: m.PickUp, Color: ColorInk, Tone: t}
	case TonePositive:
		return Feedback{Text: m.Match, Color: ColorGreen, Tone: t}
	case ToneNegative:
		return Feedback{Text: m.Mismatch, Color: ColorRed, Tone: t}
	case ToneCelebrate:
		return Feedback{Text: m.Complete, Color: ColorBlue, Tone: t}
	default:
		return Feedback{}
	}
}
