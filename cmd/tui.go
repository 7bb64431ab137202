package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/infotech-symposium/event-registration/registration"
	"github.com/infotech-symposium/event-registration/submission"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			Padding(0, 1)

	styleHelp = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)

	styleMuted = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	styleBox = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	styleNotice = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(0, 2)

	styleOK = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Padding(0, 1)

	styleErr = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Padding(0, 1)
)

func renderSuccess(outcome submission.Outcome) string {
	message := "Registration successful!"
	if outcome.Message != "" {
		message = outcome.Message
	}
	return styleOK.Render("✅ " + message)
}

// renderSubmitError turns a failed submission into the notice shown to the
// user, with the inline field errors listed underneath.
func renderSubmitError(err error) string {
	var subErr *submission.Error
	if !errors.As(err, &subErr) {
		return styleErr.Render(err.Error())
	}

	var sb strings.Builder
	var fieldErrs registration.FieldErrors
	if errors.As(err, &fieldErrs) {
		if blocking := fieldErrs.Blocking(); blocking != nil {
			sb.WriteString(styleNotice.Render(blocking.Message))
			sb.WriteString("\n")
		}
	}

	if subErr.Reason == submission.REASON_REGISTRATION_CLOSED {
		sb.WriteString(styleNotice.Render(subErr.Message))
		return sb.String()
	}
	sb.WriteString(styleErr.Render(subErr.Message))

	for _, f := range orderedFields(fieldErrs) {
		sb.WriteString("\n")
		sb.WriteString(styleMuted.Render(fmt.Sprintf("  • %s: %s", f, fieldErrs[f].Message)))
	}
	return sb.String()
}

// orderedFields lists the fields with errors in the order the form shows
// them.
func orderedFields(fieldErrs registration.FieldErrors) []registration.Field {
	order := append([]registration.Field{}, registration.TextFields...)
	order = append(order, registration.FieldEvents, registration.FieldReceipt, registration.FieldTerms)

	var fields []registration.Field
	for _, f := range order {
		if _, ok := fieldErrs[f]; ok {
			fields = append(fields, f)
		}
	}
	return fields
}

type summaryKeyMap struct {
	Copy     key.Binding
	Download key.Binding
	Quit     key.Binding
}

var summaryKeys = summaryKeyMap{
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy"),
	),
	Download: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "download"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "close"),
	),
}

type countdownMsg time.Time

func tickCountdown() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return countdownMsg(t)
	})
}

// summaryModel shows the registration summary with copy and download
// actions and keeps the countdown banner current.
type summaryModel struct {
	viewport    viewport.Model
	summary     string
	fileName    string
	downloadDir string
	countdown   string
	status      string
}

// renderMarkdown styles the summary for the terminal. Copy and download
// always use the plain text.
func renderMarkdown(summary string, width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return summary
	}

	out, err := renderer.Render(summary)
	if err != nil {
		return summary
	}
	return out
}

func newSummaryModel(outcome submission.Outcome, downloadDir string, now time.Time) summaryModel {
	vp := viewport.New(80, 20)
	vp.SetContent(renderMarkdown(outcome.Summary, vp.Width))

	return summaryModel{
		viewport:    vp,
		summary:     outcome.Summary,
		fileName:    outcome.SummaryFileName,
		downloadDir: downloadDir,
		countdown:   registration.Countdown(now),
	}
}

func (m summaryModel) Init() tea.Cmd {
	return tickCountdown()
}

func (m summaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width - 2
		m.viewport.Height = msg.Height - 6
		m.viewport.SetContent(renderMarkdown(m.summary, m.viewport.Width))
		return m, nil
	case countdownMsg:
		m.countdown = registration.Countdown(time.Time(msg))
		return m, tickCountdown()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, summaryKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, summaryKeys.Copy):
			if err := clipboardWriteAll(m.summary); err != nil {
				m.status = styleErr.Render("❌ Failed to copy to clipboard")
			} else {
				m.status = styleOK.Render("✅ Summary copied to clipboard!")
			}
			return m, nil
		case key.Matches(msg, summaryKeys.Download):
			path, err := m.download()
			if err != nil {
				m.status = styleErr.Render("❌ " + err.Error())
			} else {
				m.status = styleOK.Render("✅ Saved to " + path)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m summaryModel) download() (string, error) {
	path := filepath.Join(m.downloadDir, m.fileName)
	if err := os.WriteFile(path, []byte(m.summary), 0o644); err != nil {
		return "", fmt.Errorf("failed to save summary: %w", err)
	}
	return path, nil
}

func (m summaryModel) View() string {
	help := styleHelp.Render(fmt.Sprintf("%s • %s • %s • ↑/↓ scroll",
		summaryKeys.Copy.Help().Key+" "+summaryKeys.Copy.Help().Desc,
		summaryKeys.Download.Help().Key+" "+summaryKeys.Download.Help().Desc,
		summaryKeys.Quit.Help().Key+" "+summaryKeys.Quit.Help().Desc,
	))

	return lipgloss.JoinVertical(lipgloss.Left,
		styleTitle.Render("Registration Summary"),
		styleMuted.Render(" "+m.countdown),
		styleBox.Render(m.viewport.View()),
		m.status,
		help,
	)
}

// showSummary opens the summary viewer. Downloads go to the working
// directory, falling back to the config directory.
func showSummary(outcome submission.Outcome, fallbackDir string) error {
	dir, err := os.Getwd()
	if err != nil {
		dir = fallbackDir
	}

	_, err = tea.NewProgram(newSummaryModel(outcome, dir, time.Now()), tea.WithAltScreen()).Run()
	return err
}
