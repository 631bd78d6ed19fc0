package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/pdesim/internal/fdm"
)

const (
	progressWidth = 40
	peakHistory   = 120
)

// FrameMsg reports one observed frame to a Progress model.
type FrameMsg struct {
	T, NT int
	Peak  float64
}

// DoneMsg ends the progress view.
type DoneMsg struct{}

// Progress is a bubbletea model showing how far a run has got: the frame
// counter, a bar, the current peak |u| and the stability badge.
type Progress struct {
	scheme string
	stab   fdm.Stability
	t, nt  int
	peak   float64
	peaks  []float64
	done   bool
}

func NewProgress(scheme string, stab fdm.Stability, nt int) Progress {
	return Progress{
		scheme: scheme,
		stab:   stab,
		nt:     nt,
		peaks:  make([]float64, 0, peakHistory),
	}
}

func (m Progress) Init() tea.Cmd { return nil }

func (m Progress) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FrameMsg:
		m.t, m.nt, m.peak = msg.T, msg.NT, msg.Peak
		if len(m.peaks) == peakHistory {
			m.peaks = m.peaks[1:]
		}
		m.peaks = append(m.peaks, msg.Peak)
	case DoneMsg:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Progress) View() string {
	last := max(m.nt-1, 1)
	frac := min(max(float64(m.t)/float64(last), 0), 1)
	filled := int(frac * progressWidth)
	bar := MetricValue.Render(strings.Repeat("█", filled)) +
		Subtle.Render(strings.Repeat("░", progressWidth-filled))

	var b strings.Builder
	b.WriteString(Title.Render(m.scheme) + "  " + StabilityBadge(m.stab) + "\n")
	fmt.Fprintf(&b, "%s %s %d/%d\n", bar, MetricLabel.Render("frame"), m.t, last)
	fmt.Fprintf(&b, "%s %s  %s\n", MetricLabel.Render("peak |u|"),
		MetricValue.Render(fmt.Sprintf("%.4g", m.peak)), Sparkline(m.peaks, progressWidth))
	if m.done {
		b.WriteString(Subtle.Render("done") + "\n")
	}
	return b.String()
}

// ProgressObserver forwards sampled frames to Send, normally a running
// tea.Program's Send. Every frame with T%Every == 0 is sent, plus the last.
type ProgressObserver struct {
	Send  func(tea.Msg)
	Every int
}

// NewProgressObserver samples about a hundred updates over nt levels.
func NewProgressObserver(send func(tea.Msg), nt int) *ProgressObserver {
	return &ProgressObserver{Send: send, Every: max(nt/100, 1)}
}

func (o *ProgressObserver) OnFrame(h *fdm.History) {
	if h.T%max(o.Every, 1) != 0 && h.T != h.NT-1 {
		return
	}
	o.Send(FrameMsg{T: h.T, NT: h.NT, Peak: h.Current().MaxAbs()})
}
