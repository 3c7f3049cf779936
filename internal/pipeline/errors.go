package pipeline

import "errors"

// ErrNoSources is returned when the nonfiction or literature pool is empty. Both pools
// back every level, so the run cannot start without them.
var ErrNoSources = errors.New("no sources loaded")
