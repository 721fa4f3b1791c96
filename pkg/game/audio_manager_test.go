package game

import (
	"encoding/binary"
	"testing"
)

// TestSynthToneLength 测试合成 PCM 的长度和淡入
func TestSynthToneLength(t *testing.T) {
	buf := synthTone(1000, []float64{100, 200}, 0.1)

	// 每个音 100 个采样，每个采样 2 声道 x 2 字节
	if len(buf) != 2*100*4 {
		t.Fatalf("len = %d, want %d", len(buf), 2*100*4)
	}
	if first := int16(binary.LittleEndian.Uint16(buf[0:2])); first != 0 {
		t.Errorf("first sample = %d, want 0 (fade in)", first)
	}
	if l, r := binary.LittleEndian.Uint16(buf[40:42]), binary.LittleEndian.Uint16(buf[42:44]); l != r {
		t.Errorf("left %d != right %d", l, r)
	}
}

// TestAudioManagerSilent 测试没有音频上下文或音效关闭时不播放
func TestAudioManagerSilent(t *testing.T) {
	am := NewAudioManager(nil, nil)
	if am.PlaySound(SoundPlant) {
		t.Error("PlaySound without audio context should return false")
	}
	am.PreloadSounds()
	if am.GetSoundVolume() != 0.8 {
		t.Errorf("default volume = %v, want 0.8", am.GetSoundVolume())
	}

	sm, _ := NewSettingsManager(nil)
	sm.Update(func(gs *GameSettings) { gs.SoundEnabled = false })
	am = NewAudioManager(nil, sm)
	if am.PlaySound(SoundSolved) {
		t.Error("PlaySound with sound disabled should return false")
	}

	am.SetSoundVolume(0.25)
	if sm.GetSettings().SoundVolume != 0.25 {
		t.Errorf("SetSoundVolume not stored: %v", sm.GetSettings().SoundVolume)
	}
}

func TestSoundIDString(t *testing.T) {
	for id, want := range map[SoundID]string{SoundPlant: "plant", SoundRetract: "retract", SoundBlocked: "blocked", SoundSolved: "solved"} {
		if id.String() != want {
			t.Errorf("%d.String() = %q, want %q", int(id), id.String(), want)
		}
	}
}

func TestToneSpec(t *testing.T) {
	freqs, note, ok := ToneSpec(SoundSolved)
	if !ok || len(freqs) != 4 || note <= 0 {
		t.Errorf("ToneSpec(SoundSolved) = %v, %v, %v", freqs, note, ok)
	}
	if _, _, ok := ToneSpec(SoundID(99)); ok {
		t.Error("unknown sound should have no tone spec")
	}
}
