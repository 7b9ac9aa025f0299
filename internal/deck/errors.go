package deck

import (
	"errors"
	"fmt"
)

// ErrIntegrity is wrapped by every corpus validation failure.
// Use errors.Is(err, deck.ErrIntegrity) to detect a malformed corpus.
var ErrIntegrity = errors.New("deck: corpus integrity violation")

var (
	ErrEmptyWord           = fmt.Errorf("%w: word has no cards", ErrIntegrity)
	ErrUnnamedWord         = fmt.Errorf("%w: word has no name", ErrIntegrity)
	ErrDuplicateWord       = fmt.Errorf("%w: duplicate word name", ErrIntegrity)
	ErrDuplicateCardType   = fmt.Errorf("%w: duplicate card type within word", ErrIntegrity)
	ErrDanglingConfusion   = fmt.Errorf("%w: confusion pair references unknown word", ErrIntegrity)
	ErrSelfConfusion       = fmt.Errorf("%w: word confused with itself", ErrIntegrity)
	ErrSeenWithoutSchedule = fmt.Errorf("%w: seen word has no delay", ErrIntegrity)
)
