package replay

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/redrock/engine/internal/action"
)

// Recording layout: a header record, then one record per frame.
//
//	header: magic "RRRP" | version C | tick Q (ns)
//	frame:  elapsed Q (ns) | count H | count × (kind C | held C | dyaw F | dpitch F)
const (
	magic   = "RRRP"
	version = 1

	actionSize = 10
	// frame records are capped by the 2-byte length prefix
	maxActionsPerFrame = (maxFrameLen - 2 - 8 - 2) / actionSize
)

var ErrBadHeader = errors.New("replay: not a recording")

// Frame is one recorded Update call.
type Frame struct {
	Elapsed time.Duration
	Actions []action.Action
}

// Recorder appends frames to a stream.
type Recorder struct {
	w      io.Writer
	frames uint64
}

// NewRecorder writes the header and returns a recorder for w. The tick length
// is stored so a replay can refuse a mismatched simulation rate.
func NewRecorder(w io.Writer, tick time.Duration) (*Recorder, error) {
	hw := NewWriter()
	for i := 0; i < len(magic); i++ {
		hw.WriteC(magic[i])
	}
	hw.WriteC(version)
	hw.WriteQ(uint64(tick))
	if err := WriteFrame(w, hw.Bytes()); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	return &Recorder{w: w}, nil
}

// Record appends one frame.
func (rec *Recorder) Record(elapsed time.Duration, actions []action.Action) error {
	if len(actions) > maxActionsPerFrame {
		return fmt.Errorf("frame %d: %d actions exceeds %d", rec.frames, len(actions), maxActionsPerFrame)
	}
	fw := NewWriter()
	fw.WriteQ(uint64(elapsed))
	fw.WriteH(uint16(len(actions)))
	for _, a := range actions {
		fw.WriteC(byte(a.Kind))
		if a.Held {
			fw.WriteC(1)
		} else {
			fw.WriteC(0)
		}
		fw.WriteF(a.DYaw)
		fw.WriteF(a.DPitch)
	}
	if err := WriteFrame(rec.w, fw.Bytes()); err != nil {
		return fmt.Errorf("frame %d: %w", rec.frames, err)
	}
	rec.frames++
	return nil
}

func (rec *Recorder) Frames() uint64 { return rec.frames }

// Player reads frames back from a recording.
type Player struct {
	r      io.Reader
	tick   time.Duration
	frames uint64
}

// NewPlayer reads and checks the header.
func NewPlayer(r io.Reader) (*Player, error) {
	payload, err := ReadFrame(r)
	if err != nil {
		if err == io.EOF {
			return nil, ErrBadHeader
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	hr := NewReader(payload)
	var m [4]byte
	for i := range m {
		m[i] = hr.ReadC()
	}
	ver := hr.ReadC()
	tick := time.Duration(hr.ReadQ())
	if hr.Err() != nil || string(m[:]) != magic {
		return nil, ErrBadHeader
	}
	if ver != version {
		return nil, fmt.Errorf("replay: unsupported version %d", ver)
	}
	return &Player{r: r, tick: tick}, nil
}

// Tick is the tick length the recording was made with.
func (p *Player) Tick() time.Duration { return p.tick }

// Next returns the next frame, or io.EOF after the last one.
func (p *Player) Next() (Frame, error) {
	payload, err := ReadFrame(p.r)
	if err != nil {
		if err == io.EOF {
			return Frame{}, io.EOF
		}
		return Frame{}, fmt.Errorf("frame %d: %w", p.frames, err)
	}
	fr := NewReader(payload)
	f := Frame{Elapsed: time.Duration(fr.ReadQ())}
	n := int(fr.ReadH())
	if fr.Remaining() != n*actionSize {
		return Frame{}, fmt.Errorf("frame %d: %d actions in %d bytes", p.frames, n, fr.Remaining())
	}
	f.Actions = make([]action.Action, 0, n)
	for i := 0; i < n; i++ {
		a := action.Action{
			Kind: action.Kind(fr.ReadC()),
			Held: fr.ReadC() != 0,
		}
		a.DYaw = fr.ReadF()
		a.DPitch = fr.ReadF()
		if a.Kind < action.KindLeft || a.Kind > action.KindQuit {
			return Frame{}, fmt.Errorf("frame %d: unknown action kind %d", p.frames, a.Kind)
		}
		f.Actions = append(f.Actions, a)
	}
	if err := fr.Err(); err != nil {
		return Frame{}, fmt.Errorf("frame %d: %w", p.frames, err)
	}
	p.frames++
	return f, nil
}
