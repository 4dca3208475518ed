package cli

import (
	"errors"
	"strconv"

	"predmarket-cli/internal/services"
)

// flowMessage extracts the user-facing message from a service error.
// Flow errors carry their own display message; anything else is shown
// as-is.
func flowMessage(err error) string {
	var fe *services.FlowError
	if errors.As(err, &fe) {
		return fe.Message
	}
	return err.Error()
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("expected a positive numeric id")
	}
	return id, nil
}

// parseOutcome maps user input to a market outcome: yes/y/true → YES,
// no/n/false → NO.
func parseOutcome(s string) (bool, error) {
	switch s {
	case "yes", "y", "true":
		return true, nil
	case "no", "n", "false":
		return false, nil
	}
	return false, errors.New("expected yes or no")
}

func outcomeLabel(outcome bool) string {
	if outcome {
		return "YES"
	}
	return "NO"
}
