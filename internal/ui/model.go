// Package ui is the interactive terminal front end: pick an export, review
// the detected column mapping, convert it and read the summary.
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/nconklindev/shopmigrate/internal/config"
	"github.com/nconklindev/shopmigrate/internal/converter"
	"github.com/nconklindev/shopmigrate/internal/logger"
	"github.com/nconklindev/shopmigrate/internal/report"
	"github.com/nconklindev/shopmigrate/internal/types"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type state int

const (
	stateFilePicker state = iota
	statePreview
	stateProcessing
	stateComplete
	stateError
)

type Model struct {
	state        state
	cfg          *config.Config
	log          *logger.Logger
	filepicker   filepicker.Model
	selectedFile string
	preview      *types.Preview
	result       *types.ConversionResult
	err          error
	width        int
	height       int
	progress     progress.Model
	progressChan chan float64
	resultChan   chan conversionResultMsg
}

type conversionResultMsg struct {
	result *types.ConversionResult
	err    error
}

type previewLoadedMsg struct {
	preview *types.Preview
	err     error
}

type conversionCompleteMsg struct {
	result *types.ConversionResult
	err    error
}

type progressMsg float64

type waitForProgressMsg struct{}

// InitialModel returns the model in the file picker state. A nil cfg uses
// the built-in defaults and a nil log discards output, since log lines would
// corrupt the alternate screen.
func InitialModel(cfg *config.Config, log *logger.Logger) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logger.Discard()
	}

	fp := filepicker.New()
	fp.AllowedTypes = []string{".csv", ".xlsx"}
	fp.CurrentDirectory, _ = os.Getwd()

	fp.Styles.Cursor = lipgloss.NewStyle().Foreground(colorAccent)
	fp.Styles.Symlink = lipgloss.NewStyle().Foreground(colorSoft)
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(colorSoft)
	fp.Styles.File = lipgloss.NewStyle().Foreground(colorText)
	fp.Styles.Permission = lipgloss.NewStyle().Foreground(colorMuted)
	fp.Styles.Selected = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	fp.Styles.FileSize = lipgloss.NewStyle().Foreground(colorMuted)

	return Model{
		state:      stateFilePicker,
		cfg:        cfg,
		log:        log,
		filepicker: fp,
		progress:   progress.New(progress.WithGradient("#5BB974", "#A8DAB5")),
	}
}

func (m Model) Init() tea.Cmd {
	return m.filepicker.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.filepicker.SetHeight(max(msg.Height-14, 5))
		m.progress.Width = max(min(msg.Width-12, 60), 20)
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case stateFilePicker:
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			}

		case statePreview:
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "esc", "b":
				m.preview = nil
				m.state = stateFilePicker
				return m, nil
			case "enter":
				m.state = stateProcessing
				return m.convertFile()
			}

		case stateComplete, stateError:
			switch msg.String() {
			case "ctrl+c", "q", "enter", "esc":
				return m, tea.Quit
			}
		}

	case previewLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		m.preview = msg.preview
		m.state = statePreview
		return m, nil

	case conversionCompleteMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		m.result = msg.result
		m.state = stateComplete
		return m, nil

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case progressMsg:
		if m.state == stateProcessing {
			cmd := m.progress.SetPercent(float64(msg))
			return m, tea.Batch(cmd, waitForProgress(m.progressChan, m.resultChan))
		}
		return m, nil

	case waitForProgressMsg:
		return m, waitForProgress(m.progressChan, m.resultChan)
	}

	if m.state == stateFilePicker {
		var cmd tea.Cmd
		m.filepicker, cmd = m.filepicker.Update(msg)

		if didSelect, path := m.filepicker.DidSelectFile(msg); didSelect {
			m.selectedFile = path
			return m, m.loadPreview(path)
		}

		return m, cmd
	}

	return m, nil
}

func (m Model) loadPreview(path string) tea.Cmd {
	cfg := m.cfg
	return func() tea.Msg {
		p, err := converter.Inspect(path, cfg)
		return previewLoadedMsg{preview: p, err: err}
	}
}

func (m Model) convertFile() (Model, tea.Cmd) {
	m.progressChan = make(chan float64, 100)
	m.resultChan = make(chan conversionResultMsg, 1)

	progressChan := m.progressChan
	resultChan := m.resultChan
	input := m.selectedFile
	output := m.preview.OutputFile
	opts := converter.Options{Config: m.cfg, Logger: m.log}

	start := func() tea.Msg {
		go func() {
			result, err := converter.Convert(input, output, opts, progressChan)
			resultChan <- conversionResultMsg{result: result, err: err}
			close(progressChan)
			close(resultChan)
		}()
		return waitForProgressMsg{}
	}

	return m, tea.Batch(start, m.progress.Init())
}

func waitForProgress(progressChan chan float64, resultChan chan conversionResultMsg) tea.Cmd {
	return func() tea.Msg {
		if progressChan == nil {
			return nil
		}

		p, ok := <-progressChan
		if !ok {
			res, ok := <-resultChan
			if ok {
				return conversionCompleteMsg(res)
			}
			return nil
		}

		return progressMsg(p)
	}
}

func (m Model) View() string {
	switch m.state {
	case stateFilePicker:
		return m.viewFilePicker()
	case statePreview:
		return m.viewPreview()
	case stateProcessing:
		return m.viewProcessing()
	case stateComplete:
		return m.viewComplete()
	case stateError:
		return m.viewError()
	}
	return ""
}

func (m Model) viewFilePicker() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("shopmigrate - store export to import file"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render("Select a product export (CSV or XLSX)"))
	s.WriteString("\n\n")
	s.WriteString(m.filepicker.View())
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("Press q to quit"))

	return s.String()
}

func (m Model) viewPreview() string {
	var s strings.Builder
	p := m.preview

	s.WriteString(TitleStyle.Render("Column mapping"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render(fmt.Sprintf("%s  (%d rows, %s headers)",
		truncatePath(p.File, m.width), p.Rows, p.Language)))
	s.WriteString("\n\n")

	s.WriteString(MappedStyle.Render(strings.TrimSuffix(report.Preview(p), "\n")))
	s.WriteString("\n\n")

	if len(p.Unmapped) > 0 {
		s.WriteString(WarnStyle.Render(fmt.Sprintf("%d column(s) will not be imported", len(p.Unmapped))))
		s.WriteString("\n")
	}
	s.WriteString(fmt.Sprintf("Output: %s\n", truncatePath(p.OutputFile, m.width)))
	s.WriteString(HelpStyle.Render("enter: convert • esc: pick another file • q: quit"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewProcessing() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("Converting..."))
	s.WriteString("\n\n")
	s.WriteString("Grouping variants and writing the import file")
	s.WriteString("\n\n")
	s.WriteString(m.progress.View())

	return BoxStyle.Render(s.String())
}

func (m Model) viewComplete() string {
	var s strings.Builder
	r := m.result

	s.WriteString(TitleStyle.Render("✓ Conversion complete"))
	s.WriteString("\n\n")
	s.WriteString(SuccessStyle.Render(fmt.Sprintf("Output: %s", truncatePath(r.OutputFile, m.width))))
	s.WriteString("\n\n")
	s.WriteString(strings.TrimSuffix(report.Summary(r), "\n"))
	s.WriteString("\n")

	if n := r.SkippedTotal(); n > 0 {
		s.WriteString("\n")
		s.WriteString(WarnStyle.Render(fmt.Sprintf("%d row(s) skipped:", n)))
		s.WriteString("\n")
		for _, d := range r.Diagnostics[:min(len(r.Diagnostics), 5)] {
			s.WriteString("  " + d + "\n")
		}
		if more := len(r.Diagnostics) - 5 + r.Dropped; more > 0 {
			s.WriteString(fmt.Sprintf("  ... and %d more\n", more))
		}
	}

	s.WriteString(HelpStyle.Render("Press any key to exit"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewError() string {
	var s strings.Builder

	s.WriteString(ErrorStyle.Render("✗ Error"))
	s.WriteString("\n\n")
	s.WriteString(m.err.Error())
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("Press any key to exit"))

	return BoxStyle.Render(s.String())
}

// truncatePath shortens path from the left to fit a terminal of width cells.
func truncatePath(path string, width int) string {
	maxLen := max(width-20, 30)
	r := []rune(path)
	if len(r) <= maxLen {
		return path
	}
	return "..." + string(r[len(r)-maxLen+3:])
}
