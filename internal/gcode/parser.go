package gcode

import (
	"regexp"
	"strconv"
	"strings"
)

// MoveType classifies one step of a marking program.
type MoveType int

const (
	MoveTravel   MoveType = iota // XY motion that leaves no mark
	MoveMark                     // XY motion with the pen down or the beam on
	MoveToolDown                 // pen lowered or beam switched on
	MoveToolUp                   // pen raised or beam switched off
)

func (t MoveType) String() string {
	switch t {
	case MoveMark:
		return "mark"
	case MoveToolDown:
		return "tool-down"
	case MoveToolUp:
		return "tool-up"
	default:
		return "travel"
	}
}

var (
	wordRe       = regexp.MustCompile(`([A-Z])\s*([-+]?\d*\.?\d+)`)
	parenComment = regexp.MustCompile(`\([^)]*\)`)
)

// Move is one parsed step. Tool changes have From equal to To.
type Move struct {
	Type     MoveType
	Line     int // 1-based source line
	FromX    float64
	FromY    float64
	ToX      float64
	ToY      float64
	Z        float64 // height after the step
	FeedRate float64
}

// machine is the modal state a marking program drives.
type machine struct {
	laser     bool    // beam switched with M3/M5, Grbl laser mode
	penBelow  float64 // the pen touches the surface below this height
	x, y, z   float64
	feed      float64
	power     float64
	motion    int // last G0 or G1
	beamOn    bool
}

func newMachine(s Settings) *machine {
	p := GetProfile(s.Profile)
	m := &machine{
		laser:    !p.UsesZ,
		penBelow: (s.MarkZ + s.TravelZ) / 2,
		z:        s.TravelZ,
	}
	if s.TravelZ <= s.MarkZ {
		m.penBelow = s.MarkZ + 1e-6
	}
	return m
}

// toolDown reports whether an XY move in the current state leaves a mark.
// In Grbl laser mode the beam never fires during G0.
func (m *machine) toolDown() bool {
	if m.laser {
		return m.beamOn && m.motion == 1
	}
	return m.z < m.penBelow
}

// ParseGCode reads a marking program written for the profile in s and
// returns its steps. A move counts as marking by the tool state at the
// time: pen height for Z profiles, beam state for laser profiles. Motion
// commands are modal, so bare coordinate lines continue the last G0/G1.
func ParseGCode(code string, s Settings) []Move {
	m := newMachine(s)
	var moves []Move

	for i, raw := range strings.Split(code, "\n") {
		line := raw
		if idx := strings.Index(line, ";"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(parenComment.ReplaceAllString(line, " "))
		if line == "" {
			continue
		}

		x, y, z := m.x, m.y, m.z
		moved := false
		beam := 0 // +1 on, -1 off
		for _, w := range wordRe.FindAllStringSubmatch(strings.ToUpper(line), -1) {
			v, err := strconv.ParseFloat(w[2], 64)
			if err != nil {
				continue
			}
			switch w[1] {
			case "G":
				if v == 0 || v == 1 {
					m.motion = int(v)
				}
			case "M":
				switch v {
				case 3, 4:
					beam = 1
				case 5:
					beam = -1
				}
			case "S":
				m.power = v
			case "F":
				m.feed = v
			case "X":
				x, moved = v, true
			case "Y":
				y, moved = v, true
			case "Z":
				z, moved = v, true
			}
		}

		step := func(t MoveType) Move {
			return Move{Type: t, Line: i + 1, FromX: m.x, FromY: m.y, ToX: m.x, ToY: m.y, Z: m.z, FeedRate: m.feed}
		}

		if m.laser && beam != 0 {
			on := beam > 0 && m.power > 0
			if on != m.beamOn {
				m.beamOn = on
				if on {
					moves = append(moves, step(MoveToolDown))
				} else {
					moves = append(moves, step(MoveToolUp))
				}
			}
		}
		if !moved {
			continue
		}

		if z != m.z {
			wasDown := m.toolDown()
			m.z = z
			if !m.laser && m.toolDown() != wasDown {
				if wasDown {
					moves = append(moves, step(MoveToolUp))
				} else {
					moves = append(moves, step(MoveToolDown))
				}
			}
		}
		if x == m.x && y == m.y {
			continue
		}

		mv := step(MoveTravel)
		if m.toolDown() {
			mv.Type = MoveMark
		}
		mv.ToX, mv.ToY = x, y
		moves = append(moves, mv)
		m.x, m.y = x, y
	}

	return moves
}
