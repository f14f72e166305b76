package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const chimeRate = beep.SampleRate(44100)

// chime plays short tones for viewer events. The zero value is silent.
type chime struct {
	ready bool
}

// init opens the speaker. Failure leaves the chime silent.
func (c *chime) init() error {
	if err := speaker.Init(chimeRate, chimeRate.N(time.Second/10)); err != nil {
		return err
	}
	c.ready = true
	return nil
}

// play sounds a tone of freq Hz for d.
func (c *chime) play(freq float64, d time.Duration) {
	if !c.ready {
		return
	}
	sine, err := generators.SineTone(chimeRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(chimeRate.N(d), sine))
}

func (c *chime) close() {
	if c.ready {
		speaker.Close()
		c.ready = false
	}
}
