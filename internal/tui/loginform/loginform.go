// ABOUTME: Login form as a bubbletea model
// ABOUTME: Wraps a huh form and emits submit/cancel messages

package loginform

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/fitnessai/fitcoach-cli/internal/tui/styles"
)

// SubmitMsg is sent when the user submits credentials
type SubmitMsg struct {
	Username string
	Password string
}

// CancelledMsg is sent when the form is cancelled
type CancelledMsg struct{}

// LoginForm collects credentials as a bubbletea model
type LoginForm struct {
	form     *huh.Form
	username string
	password string
	errMsg   string
	width    int
}

// createTheme returns a custom huh theme matching the web frontend colors
func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	indigo := lipgloss.Color("#6366F1")      // Indigo-500 - primary
	indigoLight := lipgloss.Color("#818CF8") // Indigo-400 - accents
	gray := lipgloss.Color("#9CA3AF")        // Gray-400 - muted
	grayLight := lipgloss.Color("#E5E7EB")   // Gray-200 - text
	red := lipgloss.Color("#F87171")         // Red-400 - errors
	slate := lipgloss.Color("#334155")       // Slate-700 - borders

	t.Group.Title = lipgloss.NewStyle().
		Foreground(indigo).
		Bold(true).
		MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().
		Foreground(gray).
		MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(indigo)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(indigoLight).
		Bold(true)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(red).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(red)

	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(indigo)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(indigo)
	t.Focused.TextInput.Text = lipgloss.NewStyle().
		Foreground(grayLight)

	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(indigo).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(gray).
		Background(slate).
		Padding(0, 2).
		MarginRight(1)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(gray)

	return t
}

// Theme exposes the shared form theme for other form screens.
func Theme() *huh.Theme {
	return createTheme()
}

// New creates a login form
func New() *LoginForm {
	f := &LoginForm{}
	f.form = f.createForm()
	return f
}

func (f *LoginForm) createForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Placeholder("your username").
				Value(&f.username).
				Validate(required("Username")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&f.password).
				Validate(required("Password")),
		).Title("Sign in to FitCoach").
			Description("Press Enter to move between fields, Esc to quit"),
	).WithTheme(createTheme())
}

func required(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

// SetError displays a failure message above the form and resets it for
// another attempt.
func (f *LoginForm) SetError(msg string) {
	f.errMsg = msg
	f.password = ""
	f.form = f.createForm()
}

// SetWidth sets the form width for proper rendering
func (f *LoginForm) SetWidth(width int) {
	f.width = width
}

// Init implements tea.Model
func (f *LoginForm) Init() tea.Cmd {
	return f.form.Init()
}

// Update implements tea.Model
func (f *LoginForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return f, func() tea.Msg { return CancelledMsg{} }
	}

	form, cmd := f.form.Update(msg)
	if m, ok := form.(*huh.Form); ok {
		f.form = m
	}

	if f.form.State == huh.StateCompleted {
		username, password := f.username, f.password
		return f, func() tea.Msg {
			return SubmitMsg{Username: username, Password: password}
		}
	}

	return f, cmd
}

// View implements tea.Model
func (f *LoginForm) View() string {
	var sb strings.Builder
	if f.errMsg != "" {
		sb.WriteString(styles.ErrorBanner.Render(f.errMsg))
		sb.WriteString("\n")
	}
	sb.WriteString(f.form.View())
	return sb.String()
}
