package game

import (
	"encoding/binary"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioSampleRate 音频采样率
const AudioSampleRate = 44100

// SoundID 音效标识
type SoundID int

const (
	// SoundPlant 种下一段藤蔓
	SoundPlant SoundID = iota
	// SoundRetract 回退擦除
	SoundRetract
	// SoundBlocked 被阻挡（只在每次笔画第一次被阻挡时播放）
	SoundBlocked
	// SoundSolved 谜题完成
	SoundSolved
)

// String 返回音效名称
func (id SoundID) String() string {
	switch id {
	case SoundPlant:
		return "plant"
	case SoundRetract:
		return "retract"
	case SoundBlocked:
		return "blocked"
	case SoundSolved:
		return "solved"
	default:
		return "unknown"
	}
}

// toneSpec 合成音效的参数：依次播放的频率（Hz），每个音的时长（秒）
type toneSpec struct {
	freqs []float64
	note  float64
}

var toneSpecs = map[SoundID]toneSpec{
	SoundPlant:   {freqs: []float64{660}, note: 0.06},
	SoundRetract: {freqs: []float64{440}, note: 0.05},
	SoundBlocked: {freqs: []float64{180}, note: 0.08},
	SoundSolved:  {freqs: []float64{523.25, 659.25, 783.99, 1046.5}, note: 0.12},
}

// ToneSpec 返回音效的音符频率和每个音符的时长（秒），供其他前端合成同样的提示音
func ToneSpec(id SoundID) (freqs []float64, note float64, ok bool) {
	spec, ok := toneSpecs[id]
	if !ok {
		return nil, 0, false
	}
	return spec.freqs, spec.note, true
}

// AudioManager 音频管理器
//
// 所有音效都在首次使用时合成为 PCM 并缓存播放器，不依赖音频资源文件。
// 音量和开关从 SettingsManager 读取；context 为 nil 时静音（测试和无音频设备环境）。
type AudioManager struct {
	context         *audio.Context
	settingsManager *SettingsManager
	soundPlayers    map[SoundID]*audio.Player
}

// NewAudioManager 创建音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文，可为 nil（静音）
//   - sm: SettingsManager 实例，可为 nil（使用默认音量）
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		context:         ctx,
		settingsManager: sm,
		soundPlayers:    make(map[SoundID]*audio.Player),
	}
}

// PlaySound 播放音效
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(id SoundID) bool {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}

	player := am.getSoundPlayer(id)
	if player == nil {
		return false
	}

	player.SetVolume(am.getSoundVolume())
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", id, err)
	}
	player.Play()
	return true
}

// SetSoundVolume 设置音效音量并应用到已缓存的播放器
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.Update(func(gs *GameSettings) { gs.SoundVolume = volume })
	}
	for _, player := range am.soundPlayers {
		player.SetVolume(clampVolume(volume))
	}
}

// GetSoundVolume 获取当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	return am.getSoundVolume()
}

// PreloadSounds 预先合成所有音效，避免首次播放时卡顿
func (am *AudioManager) PreloadSounds() {
	if am.context == nil {
		return
	}
	for id := range toneSpecs {
		am.getSoundPlayer(id)
	}
	log.Printf("[AudioManager] Preloaded %d sounds", len(am.soundPlayers))
}

func (am *AudioManager) getSoundPlayer(id SoundID) *audio.Player {
	if am.context == nil {
		return nil
	}
	if player, exists := am.soundPlayers[id]; exists {
		return player
	}

	spec, ok := toneSpecs[id]
	if !ok {
		log.Printf("[AudioManager] Warning: Sound not found: %s", id)
		return nil
	}

	player := am.context.NewPlayerFromBytes(synthTone(AudioSampleRate, spec.freqs, spec.note))
	am.soundPlayers[id] = player
	return player
}

func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return 0.8 // 默认值
}

// synthTone 合成依次播放的正弦音，输出 16 位小端立体声 PCM
//
// 每个音都带 5ms 的淡入淡出，避免爆音。
func synthTone(sampleRate int, freqs []float64, note float64) []byte {
	perNote := int(float64(sampleRate) * note)
	fade := sampleRate / 200
	if fade*2 > perNote {
		fade = perNote / 2
	}

	buf := make([]byte, 0, perNote*len(freqs)*4)
	for _, f := range freqs {
		for i := 0; i < perNote; i++ {
			env := 1.0
			if fade > 0 {
				if i < fade {
					env = float64(i) / float64(fade)
				} else if i >= perNote-fade {
					env = float64(perNote-1-i) / float64(fade)
				}
			}
			v := math.Sin(2*math.Pi*f*float64(i)/float64(sampleRate)) * env * 0.3
			s := uint16(int16(v * math.MaxInt16))
			buf = binary.LittleEndian.AppendUint16(buf, s)
			buf = binary.LittleEndian.AppendUint16(buf, s)
		}
	}
	return buf
}
