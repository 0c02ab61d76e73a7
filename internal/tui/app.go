// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Routes between screens based on session state and keyboard input

package tui

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fitnessai/fitcoach-cli/internal/api"
	"github.com/fitnessai/fitcoach-cli/internal/session"
	"github.com/fitnessai/fitcoach-cli/internal/tui/dashboard"
	"github.com/fitnessai/fitcoach-cli/internal/tui/icons"
	"github.com/fitnessai/fitcoach-cli/internal/tui/loginform"
	"github.com/fitnessai/fitcoach-cli/internal/tui/profileform"
	"github.com/fitnessai/fitcoach-cli/internal/tui/styles"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenLoading Screen = iota
	ScreenLogin
	ScreenDashboard
	ScreenProfileForm
)

// sessionReadyMsg is sent when the stored session has been restored
type sessionReadyMsg struct{}

// loginResultMsg is sent when a login attempt completes
type loginResultMsg struct {
	result session.Result
}

// dataLoadedMsg is sent when dashboard data has been fetched
type dataLoadedMsg struct {
	profile    *api.Profile
	activities []api.Activity
	err        error
}

// profileSavedMsg is sent when a profile update completes
type profileSavedMsg struct {
	result session.Result
}

// App is the root model for the TUI
type App struct {
	sess    *session.Manager
	client  *api.Client
	screen  Screen
	width   int
	height  int
	err     error
	notice  string
	spinner spinner.Model

	profile    *api.Profile
	activities []api.Activity

	// Child models
	dashboard   *dashboard.Dashboard
	loginScreen *loginform.LoginForm
	profileWiz  *profileform.ProfileForm
}

// New creates a new TUI application
func New(sess *session.Manager, client *api.Client) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return &App{
		sess:    sess,
		client:  client,
		screen:  ScreenLoading,
		spinner: sp,
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.restoreSession())
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.dashboard != nil {
			a.dashboard.SetSize(a.contentWidth(), a.contentHeight())
		}
		if a.loginScreen != nil {
			a.loginScreen.SetWidth(a.contentWidth())
		}
		if a.profileWiz != nil {
			return a.updateProfileForm(msg)
		}
		return a, nil

	case tea.KeyMsg:
		// Handle global quit
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Route to current screen
		switch a.screen {
		case ScreenLogin:
			return a.updateLogin(msg)
		case ScreenDashboard:
			return a.updateDashboard(msg)
		case ScreenProfileForm:
			return a.updateProfileForm(msg)
		}
		return a, nil

	case spinner.TickMsg:
		if a.screen == ScreenLoading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case sessionReadyMsg:
		return a.routeBySession()

	case loginform.SubmitMsg:
		a.screen = ScreenLoading
		return a, a.login(msg.Username, msg.Password)

	case loginform.CancelledMsg:
		return a, tea.Quit

	case loginResultMsg:
		if !msg.result.Success {
			a.showLogin(loginFailureText(msg.result))
			return a, a.loginScreen.Init()
		}
		a.notice = ""
		return a.afterAuthenticated()

	case dataLoadedMsg:
		return a.handleDataLoaded(msg)

	case profileform.CompleteMsg:
		a.profileWiz = nil
		a.screen = ScreenLoading
		return a, tea.Batch(a.spinner.Tick, a.saveProfile(msg.Update))

	case profileform.CancelledMsg:
		a.profileWiz = nil
		if a.dashboard == nil {
			a.dashboard = dashboard.New(a.profile, a.activities, a.contentWidth(), a.contentHeight())
		}
		a.screen = ScreenDashboard
		return a, nil

	case profileSavedMsg:
		if !msg.result.Success {
			a.notice = loginFailureText(msg.result)
		} else {
			a.notice = "Profile saved."
		}
		return a.afterAuthenticated()

	default:
		// Forward unknown messages to the active form (needed for huh internals)
		if a.screen == ScreenLogin && a.loginScreen != nil {
			return a.updateLogin(msg)
		}
		if a.screen == ScreenProfileForm && a.profileWiz != nil {
			return a.updateProfileForm(msg)
		}
	}

	return a, nil
}

func (a *App) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.loginScreen == nil {
		return a, nil
	}
	model, cmd := a.loginScreen.Update(msg)
	a.loginScreen = model.(*loginform.LoginForm)
	return a, cmd
}

func (a *App) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "r":
		a.screen = ScreenLoading
		return a, tea.Batch(a.spinner.Tick, a.loadData())
	case "p":
		a.profileWiz = profileform.New(a.profile)
		a.screen = ScreenProfileForm
		return a, a.profileWiz.Init()
	}
	return a, nil
}

func (a *App) updateProfileForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.profileWiz == nil {
		return a, nil
	}
	model, cmd := a.profileWiz.Update(msg)
	a.profileWiz = model.(*profileform.ProfileForm)
	return a, cmd
}

// routeBySession sends the user to the right screen for their session
// state: anonymous users land on the login form, authenticated ones on
// the dashboard.
func (a *App) routeBySession() (tea.Model, tea.Cmd) {
	if !a.sess.IsAuthenticated() {
		a.showLogin("")
		return a, a.loginScreen.Init()
	}
	return a.afterAuthenticated()
}

// afterAuthenticated kicks off the dashboard data load
func (a *App) afterAuthenticated() (tea.Model, tea.Cmd) {
	a.screen = ScreenLoading
	return a, tea.Batch(a.spinner.Tick, a.loadData())
}

// showLogin switches to the login screen with an optional error banner
func (a *App) showLogin(errMsg string) {
	a.loginScreen = loginform.New()
	if errMsg != "" {
		a.loginScreen.SetError(errMsg)
	}
	a.loginScreen.SetWidth(a.contentWidth())
	a.screen = ScreenLogin
}

func (a *App) handleDataLoaded(msg dataLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// A refresh failure ends the session; everything else keeps
		// the user on the dashboard with an error notice.
		if !a.sess.IsAuthenticated() {
			a.showLogin("Session expired. Please log in again.")
			return a, a.loginScreen.Init()
		}
		a.err = msg.err
	} else {
		a.err = nil
		a.profile = msg.profile
		a.activities = msg.activities
	}

	// A fresh account has to finish its profile before the dashboard is
	// useful, so route it into the wizard first.
	if a.profile != nil && !a.profile.IsComplete() {
		a.notice = ""
		a.profileWiz = profileform.New(a.profile)
		a.screen = ScreenProfileForm
		return a, a.profileWiz.Init()
	}

	a.dashboard = dashboard.New(a.profile, a.activities, a.contentWidth(), a.contentHeight())
	a.screen = ScreenDashboard
	return a, nil
}

// restoreSession creates a command restoring the stored session
func (a *App) restoreSession() tea.Cmd {
	return func() tea.Msg {
		a.sess.Bootstrap(context.Background())
		return sessionReadyMsg{}
	}
}

// login creates a command running a login attempt
func (a *App) login(username, password string) tea.Cmd {
	return func() tea.Msg {
		result := a.sess.Login(context.Background(), username, password)
		return loginResultMsg{result: result}
	}
}

// loadData creates a command fetching the dashboard data
func (a *App) loadData() tea.Cmd {
	return func() tea.Msg {
		profile, err := a.client.GetProfile(context.Background())
		if err != nil {
			return dataLoadedMsg{err: err}
		}
		activities, err := a.client.ListActivities(context.Background(), url.Values{})
		if err != nil {
			return dataLoadedMsg{err: err}
		}
		return dataLoadedMsg{profile: profile, activities: activities}
	}
}

// saveProfile creates a command applying a profile update
func (a *App) saveProfile(update api.ProfileUpdate) tea.Cmd {
	return func() tea.Msg {
		result := a.sess.UpdateProfile(context.Background(), update)
		return profileSavedMsg{result: result}
	}
}

// loginFailureText flattens a failed result into one banner line
func loginFailureText(result session.Result) string {
	for _, field := range sortedFieldNames(result.FieldErrors) {
		if msgs := result.FieldErrors[field]; len(msgs) > 0 {
			return fmt.Sprintf("%s: %s", field, msgs[0])
		}
	}
	return result.Error
}

func sortedFieldNames(fields map[string][]string) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (a *App) contentWidth() int {
	if a.width <= 0 {
		return 80
	}
	return a.width - 2
}

func (a *App) contentHeight() int {
	if a.height <= 0 {
		return 24
	}
	return a.height - 4
}

// View implements tea.Model
func (a *App) View() string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n\n")

	switch a.screen {
	case ScreenLoading:
		sb.WriteString(fmt.Sprintf("%s Loading...", a.spinner.View()))
	case ScreenLogin:
		if a.loginScreen != nil {
			sb.WriteString(a.loginScreen.View())
		}
	case ScreenDashboard:
		if a.notice != "" {
			sb.WriteString(styles.Subtitle.Render(a.notice))
			sb.WriteString("\n")
		}
		if a.err != nil {
			sb.WriteString(styles.ErrorBanner.Render(api.ErrorMessage(a.err)))
			sb.WriteString("\n")
		}
		if a.dashboard != nil {
			sb.WriteString(a.dashboard.View())
		}
	case ScreenProfileForm:
		if a.profileWiz != nil {
			sb.WriteString(a.profileWiz.View())
		}
	}

	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// renderHeader renders the app title bar
func (a *App) renderHeader() string {
	title := fmt.Sprintf("%s FitCoach", icons.App.String())
	return styles.Title.Render(title)
}

// renderFooter renders context-sensitive key hints
func (a *App) renderFooter() string {
	var hints []string
	switch a.screen {
	case ScreenLogin:
		hints = []string{keyHint("enter", "submit"), keyHint("esc", "quit")}
	case ScreenDashboard:
		hints = []string{keyHint("r", "refresh"), keyHint("p", "edit profile"), keyHint("q", "quit")}
	case ScreenProfileForm:
		hints = []string{keyHint("enter", "next"), keyHint("esc", "back")}
	default:
		hints = []string{keyHint("ctrl+c", "quit")}
	}
	return styles.Help.Render(strings.Join(hints, "  "))
}

func keyHint(key, action string) string {
	return fmt.Sprintf("%s %s", styles.KeyStyle.Render(key), action)
}

// Run starts the TUI
func Run(sess *session.Manager, client *api.Client) error {
	app := New(sess, client)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
