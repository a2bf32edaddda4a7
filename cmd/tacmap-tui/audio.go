package main

import (
	"time"

	"tacmap/internal/logging"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	toneLength = 40 * time.Millisecond

	localTone  = 880
	remoteTone = 660
)

// tones plays short cues. A zero value is silent.
type tones struct {
	ready bool
}

func (t *tones) init() error {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	t.ready = true
	return nil
}

func (t *tones) play(freq int) {
	if !t.ready {
		return
	}
	sine, err := generators.SineTone(sampleRate, float64(freq))
	if err != nil {
		logging.Debug("tone %d Hz: %v", freq, err)
		return
	}
	speaker.Play(beep.Take(sampleRate.N(toneLength), sine))
}

func (t *tones) close() {
	if t.ready {
		speaker.Close()
		t.ready = false
	}
}
