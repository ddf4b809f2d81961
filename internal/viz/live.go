package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/isinglab/internal/glauber"
	"github.com/san-kum/isinglab/internal/lattice"
)

const (
	historyCapacity = 240
	minTemperature  = 0.1
	tempStep        = 0.1
)

type TickMsg time.Time

// Model drives the live single-temperature view: one lattice sweep per
// frame, rendered as a colored spin grid with running observables.
type Model struct {
	dyn        *glauber.Dynamics
	grid       [][]int8
	temp       float64
	seed       int64
	fps        int
	sweeps     int
	running    bool
	magHistory []float64
}

// NewModel builds the visual-mode model. The lattice starts from a fresh
// random configuration drawn from seed.
func NewModel(lat *lattice.Lattice, seed int64, temp float64, fps int) Model {
	dyn := glauber.New(lat, seed)
	dyn.Reset()
	if fps <= 0 {
		fps = 30
	}
	return Model{
		dyn:        dyn,
		grid:       lat.Snapshot(),
		temp:       temp,
		seed:       seed,
		fps:        fps,
		running:    true,
		magHistory: make([]float64, 0, historyCapacity),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and advances the simulation one frame per
// tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.dyn.Reset()
			m.grid = m.dyn.Lattice().Snapshot()
			m.sweeps = 0
			m.magHistory = m.magHistory[:0]
		case "up", "k":
			m.temp += tempStep
		case "down", "j":
			if m.temp-tempStep >= minTemperature {
				m.temp -= tempStep
			}
		}
		return m, nil

	case TickMsg:
		if m.running {
			m.grid = m.dyn.AdvanceFrame(m.temp)
			m.sweeps++

			lat := m.dyn.Lattice()
			mag := float64(lat.TotalMagnetization()) / float64(lat.Sites())
			if len(m.magHistory) == historyCapacity {
				m.magHistory = m.magHistory[1:]
			}
			m.magHistory = append(m.magHistory, mag)
		}
		return m, m.tick()
	}

	return m, nil
}

func (m Model) View() string {
	var grid strings.Builder
	for _, row := range m.grid {
		for _, s := range row {
			if s > 0 {
				grid.WriteString(spinUpStyle.Render("██"))
			} else {
				grid.WriteString(spinDownStyle.Render("██"))
			}
		}
		grid.WriteString("\n")
	}

	lat := m.dyn.Lattice()
	sites := float64(lat.Sites())
	attempts, accepted := m.dyn.Counters()
	acceptance := 0.0
	if attempts > 0 {
		acceptance = float64(accepted) / float64(attempts)
	}

	var stats strings.Builder
	stats.WriteString(headerStyle.Render(fmt.Sprintf("glauber %dx%d", lat.Size(), lat.Size())))
	stats.WriteString("\n")
	stats.WriteString(statRow("temperature", fmt.Sprintf("%.2f", m.temp)))
	stats.WriteString(statRow("sweep", fmt.Sprintf("%d", m.sweeps)))
	stats.WriteString(statRow("energy/site", fmt.Sprintf("%.4f", float64(lat.TotalEnergy())/sites)))
	stats.WriteString(statRow("m/site", fmt.Sprintf("%+.4f", float64(lat.TotalMagnetization())/sites)))
	stats.WriteString(statRow("acceptance", fmt.Sprintf("%.1f%%", acceptance*100)))
	stats.WriteString(statRow("seed", fmt.Sprintf("%d", m.seed)))
	if !m.running {
		stats.WriteString("\n" + pausedStyle.Render("paused"))
	}

	if len(m.magHistory) > 1 {
		stats.WriteString("\n\n")
		stats.WriteString(asciigraph.Plot(m.magHistory,
			asciigraph.Height(6),
			asciigraph.Width(28),
			asciigraph.Caption("magnetization"),
		))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(grid.String()),
		statsStyle.Render(stats.String()),
	)

	help := helpStyle.Render("space pause · r reset · ↑/↓ temperature · q quit")
	return body + "\n" + help
}

func statRow(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}
