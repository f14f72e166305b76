package redraw

// scheduler throttles the frame pipeline to one draw every skip calls.
type scheduler struct {
	framesDrawn uint64
	skip        int
}

func newScheduler(skip int) scheduler {
	if skip == 0 {
		skip = 1
	}
	return scheduler{skip: skip}
}

// tick counts one invocation and reports whether this one should draw.
func (s *scheduler) tick() bool {
	s.framesDrawn++
	return s.framesDrawn%uint64(s.skip) == 0
}

func (s *scheduler) setSkip(n int) error {
	if n < 1 {
		return &ConfigError{Field: "FramerateSkip", Reason: "must be >= 1"}
	}
	s.skip = n
	return nil
}
