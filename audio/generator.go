package audio

import (
	"math"
	"time"

	"github.com/lixenwraith/evergreen/parameter"
	"github.com/lixenwraith/evergreen/vmath"
)

// Waveform types
const (
	waveSine = iota
	waveSquare
	waveSaw
	waveNoise
)

// floatBuffer is mono float64 samples at unity gain
type floatBuffer []float64

// oscillator generates raw waveform samples at a fixed frequency
func oscillator(waveType int, freq float64, samples int, rng *vmath.FastRand) floatBuffer {
	return sweep(waveType, freq, freq, samples, rng)
}

// sweep generates a waveform whose frequency moves linearly from f0 to f1
func sweep(waveType int, f0, f1 float64, samples int, rng *vmath.FastRand) floatBuffer {
	buf := make(floatBuffer, samples)
	phase := 0.0
	for i := 0; i < samples; i++ {
		switch waveType {
		case waveSine:
			buf[i] = math.Sin(2 * math.Pi * phase)
		case waveSquare:
			if phase < 0.5 {
				buf[i] = 1.0
			} else {
				buf[i] = -1.0
			}
		case waveSaw:
			buf[i] = 2.0 * (phase - 0.5)
		case waveNoise:
			buf[i] = rng.Centered(2)
		}

		u := float64(i) / float64(max(samples-1, 1))
		phase += vmath.Lerp(f0, f1, u) / float64(parameter.AudioSampleRate)
		if phase >= 1.0 {
			phase -= 1.0
		}
	}
	return buf
}

// applyEnvelope applies a linear attack/release envelope in place
func applyEnvelope(buf floatBuffer, attack, release time.Duration) {
	total := len(buf)
	attackSamples := durationToSamples(attack)
	releaseSamples := durationToSamples(release)

	releaseStart := max(total-releaseSamples, attackSamples)
	for i := 0; i < total; i++ {
		vol := 1.0
		if i < attackSamples && attackSamples > 0 {
			vol = float64(i) / float64(attackSamples)
		} else if i >= releaseStart && releaseSamples > 0 {
			vol = float64(total-i) / float64(releaseSamples)
		}
		buf[i] *= vol
	}
}

// applyDecay applies exp(-rate*t) in place
func applyDecay(buf floatBuffer, rate float64) {
	for i := range buf {
		t := float64(i) / float64(parameter.AudioSampleRate)
		buf[i] *= math.Exp(-rate * t)
	}
}

// mixFloatBuffers adds b into a (in place), extending a if needed
func mixFloatBuffers(a, b floatBuffer, bScale float64) floatBuffer {
	if len(b) > len(a) {
		extended := make(floatBuffer, len(b))
		copy(extended, a)
		a = extended
	}
	for i := range b {
		a[i] += b[i] * bScale
	}
	return a
}

// normalize scales buf so its peak is at most peak
func normalize(buf floatBuffer, peak float64) {
	m := 0.0
	for _, v := range buf {
		m = max(m, math.Abs(v))
	}
	if m <= peak || m == 0 {
		return
	}
	s := peak / m
	for i := range buf {
		buf[i] *= s
	}
}

func durationToSamples(d time.Duration) int {
	return int(d.Seconds() * float64(parameter.AudioSampleRate))
}

// --- Cue generators (unity gain) ---

// generateChime is a bell: fundamental plus two inharmonic partials
func generateChime(rng *vmath.FastRand) floatBuffer {
	n := durationToSamples(parameter.ChimeDuration)
	buf := oscillator(waveSine, parameter.ChimeFreq, n, rng)
	buf = mixFloatBuffers(buf, oscillator(waveSine, parameter.ChimeFreq*2.76, n, rng), 0.4)
	buf = mixFloatBuffers(buf, oscillator(waveSine, parameter.ChimeFreq*5.4, n, rng), 0.15)
	applyDecay(buf, parameter.ChimeDecay)
	applyEnvelope(buf, 5*time.Millisecond, 50*time.Millisecond)
	normalize(buf, 1)
	return buf
}

// generateWhoosh is a swept tone over a noise bed
func generateWhoosh(up bool, rng *vmath.FastRand) floatBuffer {
	n := durationToSamples(parameter.WhooshDuration)
	f0, f1 := parameter.WhooshFreqLow, parameter.WhooshFreqHigh
	if !up {
		f0, f1 = f1, f0
	}
	buf := sweep(waveSaw, f0, f1, n, rng)
	buf = mixFloatBuffers(buf, oscillator(waveNoise, 0, n, rng), 0.3)
	half := parameter.WhooshDuration / 2
	applyEnvelope(buf, half, half)
	normalize(buf, 0.8)
	return buf
}

func generateTick(rng *vmath.FastRand) floatBuffer {
	n := durationToSamples(parameter.TickDuration)
	buf := oscillator(waveSquare, parameter.TickFreq, n, rng)
	applyEnvelope(buf, 0, parameter.TickDuration)
	return buf
}

// generateCue dispatches to a specific generator
func generateCue(c Cue, rng *vmath.FastRand) floatBuffer {
	switch c {
	case CueChime:
		return generateChime(rng)
	case CueScatter:
		return generateWhoosh(true, rng)
	case CueGather:
		return generateWhoosh(false, rng)
	case CueTick:
		return generateTick(rng)
	default:
		return nil
	}
}
