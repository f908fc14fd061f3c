package checkpoint

import "errors"

var (
	ErrSessionEnded  = errors.New("session already ended")
	ErrEmptyBag      = errors.New("merchant bag is empty")
	ErrNoNegotiation = errors.New("no negotiation in progress")
)

// InvalidCounterOfferError reports a counter that fails to raise the last
// offer. It is recovered where it occurs: the state machine re-prompts the
// same round instead of aborting.
type InvalidCounterOfferError struct {
	Offer     int
	LastOffer int
}

func (e InvalidCounterOfferError) Error() string {
	return "counter offer must exceed the previous offer"
}

type InvalidStateError string

func (e InvalidStateError) Error() string { return "invalid state: " + string(e) }

func ErrInvalidState(msg string) error { return InvalidStateError(msg) }

type InvalidPersonalityError string

func (e InvalidPersonalityError) Error() string { return "invalid personality: " + string(e) }

func ErrInvalidPersonality(msg string) error { return InvalidPersonalityError(msg) }
