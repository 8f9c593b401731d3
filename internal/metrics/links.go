package metrics

import "github.com/san-kum/pagefx/internal/particle"

// LinkCount averages the number of drawn links per frame.
type LinkCount struct {
	name    string
	samples int
	total   int
}

func NewLinkCount() *LinkCount {
	return &LinkCount{name: "links"}
}

func (l *LinkCount) Name() string { return l.name }

func (l *LinkCount) OnFrame(frame int, net *particle.Network) {
	l.total += len(net.Links())
	l.samples++
}

func (l *LinkCount) Value() float64 {
	if l.samples == 0 {
		return 0
	}
	return float64(l.total) / float64(l.samples)
}

func (l *LinkCount) Reset() {
	l.total = 0
	l.samples = 0
}

// MeanLinkAlpha averages link opacity over every link drawn.
type MeanLinkAlpha struct {
	name  string
	links int
	sum   float64
}

func NewMeanLinkAlpha() *MeanLinkAlpha {
	return &MeanLinkAlpha{name: "link_alpha"}
}

func (m *MeanLinkAlpha) Name() string { return m.name }

func (m *MeanLinkAlpha) OnFrame(frame int, net *particle.Network) {
	for _, l := range net.Links() {
		m.sum += l.Alpha
		m.links++
	}
}

func (m *MeanLinkAlpha) Value() float64 {
	if m.links == 0 {
		return 0
	}
	return m.sum / float64(m.links)
}

func (m *MeanLinkAlpha) Reset() {
	m.sum = 0
	m.links = 0
}
