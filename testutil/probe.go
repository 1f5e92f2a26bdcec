package testutil

// Probe is a wrapped-component stand-in that counts renders and remembers
// the props it last received. When given a recorder it journals each render.
type Probe struct {
	Name      string
	Renders   int
	LastProps any

	recorder interface{ Record(stage string) }
}

// NewProbe creates a probe journaling into rec (typically a *RecordingHost).
// rec may be nil.
func NewProbe(name string, rec interface{ Record(stage string) }) *Probe {
	return &Probe{Name: name, recorder: rec}
}

// DisplayName lets the wrapper factory derive per-probe display names.
func (p *Probe) DisplayName() string { return p.Name }

func (p *Probe) Render(props any) {
	p.Renders++
	p.LastProps = props
	if p.recorder != nil {
		p.recorder.Record("render:" + p.Name)
	}
}
