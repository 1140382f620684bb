// Package input turns raw terminal bytes into per-frame game input.
package input

import (
	"bufio"
	"io"
	"time"
)

// keyHoldDuration is how long a movement key counts as held after its last
// byte arrived. Terminals only report repeats, never releases.
const keyHoldDuration = 30 * time.Millisecond

// Input is one frame's input state.
//
// Left, Right and Shoot are level-triggered (held). Enter, Escape, Pause,
// Quit and Number are edge-triggered: they are set only on the frame their key
// arrived. Number is the 1-based answer choice, 0 when none was pressed.
type Input struct {
	Quit   bool
	Left   bool
	Right  bool
	Shoot  bool
	Enter  bool
	Escape bool
	Pause  bool
	Number int

	// Aim is set by pointer front-ends; X/Y are logical playfield coordinates.
	Aim        bool
	AimX, AimY float64
}

type keyState struct {
	left  time.Time
	right time.Time
	shoot time.Time
}

// Stream delivers input bytes via a channel and tracks held keys.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
}

// StartStream spawns a goroutine that reads from r and feeds the stream.
func StartStream(r io.Reader) *Stream {
	s := newStream()
	br := bufio.NewReader(r)
	go func() {
		for {
			b, err := br.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

func newStream() *Stream {
	return &Stream{ch: make(chan byte, 128)}
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadInput drains all available bytes from the stream without blocking.
func ReadInput(s *Stream) Input {
	return readInputAt(s, time.Now())
}

func readInputAt(s *Stream, now time.Time) Input {
	var buf []byte
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	var in Input
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI (ESC [) and SS3 (ESC O) arrow sequences.
		if b == '\x1b' && i+2 < len(buf) && (buf[i+1] == '[' || buf[i+1] == 'O') {
			switch buf[i+2] {
			case 'C':
				s.state.right = now
				i += 2
				continue
			case 'D':
				s.state.left = now
				i += 2
				continue
			case 'A', 'B':
				i += 2
				continue
			}
		}
		applyByte(&s.state, &in, b, now)
	}

	in.Left = now.Sub(s.state.left) < keyHoldDuration
	in.Right = now.Sub(s.state.right) < keyHoldDuration
	in.Shoot = now.Sub(s.state.shoot) < keyHoldDuration
	if s.closed {
		in.Quit = true
	}
	return in
}

func applyByte(state *keyState, in *Input, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		in.Quit = true
	case 'a', 'A', 'h', 'H':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case ' ', 'w', 'W', 'k', 'K':
		state.shoot = now
	case '\n', '\r':
		in.Enter = true
	case '\x1b':
		in.Escape = true
	case 'p', 'P':
		in.Pause = true
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		in.Number = int(b - '0')
	}
}
