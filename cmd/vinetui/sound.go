package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/decker502/grow/pkg/game"
)

const (
	toneSampleRate = beep.SampleRate(44100)
	toneGain       = -0.75
)

// tonePlayer 用 beep 播放与图形版相同的提示音
type tonePlayer struct {
	enabled bool
}

// newTonePlayer 初始化扬声器；失败时静音运行
func newTonePlayer(mute bool) *tonePlayer {
	if mute {
		return &tonePlayer{}
	}
	if err := speaker.Init(toneSampleRate, toneSampleRate.N(time.Second/10)); err != nil {
		logger.WithError(err).Warn("audio initialization failed, running muted")
		return &tonePlayer{}
	}
	return &tonePlayer{enabled: true}
}

// play 依次播放音效的每个音符
func (p *tonePlayer) play(id game.SoundID) {
	if p == nil || !p.enabled {
		return
	}
	seq, err := toneSequence(id)
	if err != nil {
		logger.WithError(err).WithField("sound", id.String()).Warn("failed to build tone")
		return
	}
	if seq != nil {
		speaker.Play(seq)
	}
}

// toneSequence 把音符列表拼成一个 streamer，未知音效返回 nil
func toneSequence(id game.SoundID) (beep.Streamer, error) {
	freqs, note, ok := game.ToneSpec(id)
	if !ok {
		return nil, nil
	}
	n := toneSampleRate.N(time.Duration(note * float64(time.Second)))
	notes := make([]beep.Streamer, 0, len(freqs))
	for _, f := range freqs {
		sine, err := generators.SineTone(toneSampleRate, f)
		if err != nil {
			return nil, err
		}
		notes = append(notes, beep.Take(n, sine))
	}
	// 正弦波满幅太响
	return &effects.Gain{Streamer: beep.Seq(notes...), Gain: toneGain}, nil
}

func (p *tonePlayer) close() {
	if p != nil && p.enabled {
		speaker.Close()
	}
}
