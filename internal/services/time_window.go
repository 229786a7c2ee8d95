package services

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"logistics-route-service/internal/config"
)

// Window is an allowed arrival interval in minutes from midnight.
type Window struct {
	Start int
	End   int
}

// WindowParseError reports a malformed delivery-window preference string.
// One bad record must not abort a batch: callers substitute the default
// window and keep going.
type WindowParseError struct {
	Pref   string
	Reason string
}

func (e *WindowParseError) Error() string {
	return fmt.Sprintf("parse delivery window %q: %s", e.Pref, e.Reason)
}

// ParseWindow parses a "HH:MM-HH:MM" preference into minute offsets.
func ParseWindow(s string) (Window, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return Window{}, &WindowParseError{Pref: s, Reason: "missing interval separator"}
	}

	start, err := parseClock(parts[0])
	if err != nil {
		return Window{}, &WindowParseError{Pref: s, Reason: err.Error()}
	}
	end, err := parseClock(parts[1])
	if err != nil {
		return Window{}, &WindowParseError{Pref: s, Reason: err.Error()}
	}

	return Window{Start: start, End: end}, nil
}

func parseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%q is not a HH:MM clock value", s)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("non-numeric hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("non-numeric minute in %q", s)
	}

	return h*60 + m, nil
}

// ResolveTimeWindows derives one arrival window per stop.
//
// The depot (index 0) gets the operating window (0, duration ceiling).
// Customers with a preference string get the parsed interval; customers
// without one, or with a malformed one, get the configured default. Parse
// failures are logged and recovered here so a single bad record cannot
// abort the batch.
func ResolveTimeWindows(stops []Stop, cfg config.Planner) []Window {
	windows := make([]Window, len(stops))
	if len(stops) == 0 {
		return windows
	}

	windows[0] = Window{Start: 0, End: cfg.RouteDurationCeilingMin}
	fallback := Window{Start: cfg.DefaultWindowStart, End: cfg.DefaultWindowEnd}

	for i := 1; i < len(stops); i++ {
		windows[i] = fallback

		pref := stops[i].Order.Customer.PreferredWindow
		if pref == "" {
			continue
		}

		w, err := ParseWindow(pref)
		if err != nil {
			log.Printf(
				"op=resolve_windows order=%s err=%v (using default window)",
				stops[i].Order.Number, err,
			)
			continue
		}
		windows[i] = w
	}

	return windows
}
