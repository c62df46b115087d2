package timeline

import "math"

// TickMillis is the playback loop period. Each tick advances the cutoff by
// TickMillis * speed of timeline time.
const TickMillis = 120

var validSpeeds = map[int]bool{1: true, 2: true, 4: true, 8: true}

// Playback is the replay slider state. Position runs 0..1000 across the
// timeline window.
type Playback struct {
	Enabled  bool `json:"enabled"`
	Playing  bool `json:"playing"`
	Speed    int  `json:"speed"`
	Position int  `json:"position"`
}

// NewPlayback returns the disabled default (slider parked at the end).
func NewPlayback() Playback {
	return Playback{Speed: 2, Position: 1000}
}

// SetEnabled toggles playback. Enabling parks the slider at 1000; either
// way the transport stops.
func (p *Playback) SetEnabled(on bool) {
	p.Enabled = on
	p.Playing = false
	if on {
		p.Position = 1000
	}
}

// SetSpeed accepts only the fixed multipliers 1/2/4/8.
func (p *Playback) SetSpeed(speed int) bool {
	if !validSpeeds[speed] {
		return false
	}
	p.Speed = speed
	return true
}

// SetPosition clamps into [0,1000].
func (p *Playback) SetPosition(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > 1000 {
		pos = 1000
	}
	p.Position = pos
}

// Advance moves the slider by one tick's worth of timeline time, mapped
// through the window. Clamps at 1000 and auto-stops at the end. No-op
// unless enabled and playing.
func (p *Playback) Advance(minT, maxT int64) {
	if !p.Enabled || !p.Playing {
		return
	}

	total := maxT - minT
	if total < 1 {
		total = 1
	}
	stepMs := float64(TickMillis * p.Speed)

	currentT := float64(minT) + float64(total)*float64(p.Position)/1000.0
	nextT := currentT + stepMs
	nextP := int(math.Round((nextT - float64(minT)) / float64(total) * 1000.0))

	if nextP >= 1000 {
		p.Position = 1000
		p.Playing = false
		return
	}
	if nextP < 0 {
		nextP = 0
	}
	p.Position = nextP
}
