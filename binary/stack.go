package binary

import "github.com/wippyai/ion-binary/ion"

// frameMode says what precedes each value in a frame.
type frameMode uint8

const (
	modeSequence frameMode = iota // top level, list, sexp
	modeStruct                    // a field id VarUInt precedes each value
)

// unbounded is the limit of the top-level frame.
const unbounded int64 = -1

// frame is one open container, or the top level.
type frame struct {
	limit   int64 // absolute offset at which the container ends
	depth   int   // depth of the values inside the frame
	ionType ion.Type
	mode    frameMode
}

func (f frame) bounded() bool {
	return f.limit != unbounded
}

// frameStack holds the open frames; the top-level frame is never popped.
type frameStack struct {
	frames []frame
}

func newFrameStack() frameStack {
	return frameStack{frames: []frame{{limit: unbounded, ionType: ion.TypeNone}}}
}

func (s *frameStack) top() frame {
	return s.frames[len(s.frames)-1]
}

// depth is the nesting depth of values in the top frame.
func (s *frameStack) depth() int {
	return len(s.frames) - 1
}

func (s *frameStack) push(t ion.Type, limit int64) frame {
	f := frame{
		limit:   limit,
		depth:   len(s.frames),
		ionType: t,
		mode:    modeSequence,
	}
	if t == ion.TypeStruct {
		f.mode = modeStruct
	}
	s.frames = append(s.frames, f)
	return f
}

func (s *frameStack) pop() frame {
	f := s.top()
	if len(s.frames) > 1 {
		s.frames = s.frames[:len(s.frames)-1]
	}
	return f
}
