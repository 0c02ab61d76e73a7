// ABOUTME: Profile setup wizard as a bubbletea model
// ABOUTME: Uses huh forms with visual progress indicator for step navigation

package profileform

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/fitnessai/fitcoach-cli/internal/api"
	"github.com/fitnessai/fitcoach-cli/internal/tui/icons"
	"github.com/fitnessai/fitcoach-cli/internal/tui/loginform"
	"github.com/fitnessai/fitcoach-cli/internal/tui/styles"
)

// CompleteMsg is sent when the wizard finishes successfully
type CompleteMsg struct {
	Update api.ProfileUpdate
}

// CancelledMsg is sent when the wizard is cancelled
type CancelledMsg struct{}

// ProfileForm manages the profile setup flow as a bubbletea model
type ProfileForm struct {
	form  *huh.Form
	step  int
	width int

	// Form field values (strings for huh)
	firstName string
	lastName  string
	gender    string
	age       string
	weight    string
	height    string
	goal      string
	activity  string
	diet      string
	level     string
}

// Step names for progress indicator
var stepNames = []string{"Basics", "Body", "Goals"}

var genderOptions = []huh.Option[string]{
	huh.NewOption("Male", "Male"),
	huh.NewOption("Female", "Female"),
	huh.NewOption("Other", "Other"),
}

// Choice keys must match the backend profile model exactly; anything
// else fails serializer validation.
var goalOptions = []huh.Option[string]{
	huh.NewOption("Muscle gain", "muscle_gain"),
	huh.NewOption("Fat loss", "fat_loss"),
	huh.NewOption("Maintenance", "maintenance"),
	huh.NewOption("Endurance", "endurance"),
}

var activityOptions = []huh.Option[string]{
	huh.NewOption("Sedentary (little/no exercise)", "sedentary"),
	huh.NewOption("Lightly active (1-3 days/week)", "lightly_active"),
	huh.NewOption("Moderately active (3-5 days/week)", "moderately_active"),
	huh.NewOption("Very active (6-7 days a week)", "very_active"),
	huh.NewOption("Extra active (very physical job)", "extra_active"),
}

var dietOptions = []huh.Option[string]{
	huh.NewOption("Vegetarian", "veg"),
	huh.NewOption("Non-vegetarian", "non-veg"),
	huh.NewOption("Both", "both"),
}

var levelOptions = []huh.Option[string]{
	huh.NewOption("Beginner", "beginner"),
	huh.NewOption("Intermediate", "intermediate"),
	huh.NewOption("Advanced", "advanced"),
}

// New creates a profile wizard prefilled from the current profile
func New(profile *api.Profile) *ProfileForm {
	f := &ProfileForm{
		step:     1,
		gender:   "Male",
		goal:     "muscle_gain",
		activity: "moderately_active",
		diet:     "both",
		level:    "intermediate",
	}

	if profile != nil {
		f.firstName = profile.FirstName
		f.lastName = profile.LastName
		if profile.Gender != "" {
			f.gender = profile.Gender
		}
		if profile.Age != nil {
			f.age = strconv.Itoa(*profile.Age)
		}
		if profile.Weight != nil {
			f.weight = strconv.FormatFloat(*profile.Weight, 'f', 1, 64)
		}
		if profile.Height != nil {
			f.height = strconv.FormatFloat(*profile.Height, 'f', 1, 64)
		}
		if profile.Goal != "" {
			f.goal = profile.Goal
		}
		if profile.ActivityLevel != "" {
			f.activity = profile.ActivityLevel
		}
		if profile.DietPreference != "" {
			f.diet = profile.DietPreference
		}
		if profile.ExperienceLevel != "" {
			f.level = profile.ExperienceLevel
		}
	}

	f.form = f.createStep1Form()
	return f
}

func (f *ProfileForm) createStep1Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("First name").
				Value(&f.firstName),
			huh.NewInput().
				Title("Last name").
				Value(&f.lastName),
			huh.NewSelect[string]().
				Title("Gender").
				Description("Use ↑/↓ to select, Enter to confirm").
				Options(genderOptions...).
				Value(&f.gender),
		).Title("Step 1: Basics").
			Description("Who are you?"),
	).WithTheme(loginform.Theme())
}

func (f *ProfileForm) createStep2Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Age").
				Placeholder("e.g., 28").
				CharLimit(3).
				Value(&f.age).
				Validate(validateIntRange("Age", 13, 120)),
			huh.NewInput().
				Title("Weight (kg)").
				Placeholder("e.g., 72.5").
				CharLimit(6).
				Value(&f.weight).
				Validate(validateFloatRange("Weight", 20, 500)),
			huh.NewInput().
				Title("Height (cm)").
				Placeholder("e.g., 178").
				CharLimit(6).
				Value(&f.height).
				Validate(validateFloatRange("Height", 100, 250)),
		).Title("Step 2: Body").
			Description("Used to compute BMI, BMR, and calorie targets"),
	).WithTheme(loginform.Theme())
}

func (f *ProfileForm) createStep3Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Fitness goal").
				Options(goalOptions...).
				Value(&f.goal),
			huh.NewSelect[string]().
				Title("Activity level").
				Options(activityOptions...).
				Value(&f.activity),
			huh.NewSelect[string]().
				Title("Diet preference").
				Options(dietOptions...).
				Value(&f.diet),
			huh.NewSelect[string]().
				Title("Experience level").
				Options(levelOptions...).
				Value(&f.level),
		).Title("Step 3: Goals").
			Description("What are you training for?"),
	).WithTheme(loginform.Theme())
}

func validateIntRange(name string, lo, hi int) func(string) error {
	return func(s string) error {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("%s must be a whole number", name)
		}
		if v < lo || v > hi {
			return fmt.Errorf("%s must be between %d and %d", name, lo, hi)
		}
		return nil
	}
}

func validateFloatRange(name string, lo, hi float64) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("%s must be a number", name)
		}
		if v < lo || v > hi {
			return fmt.Errorf("%s must be between %.0f and %.0f", name, lo, hi)
		}
		return nil
	}
}

// Init implements tea.Model
func (f *ProfileForm) Init() tea.Cmd {
	return f.form.Init()
}

// Update implements tea.Model
func (f *ProfileForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.width = msg.Width
		form, cmd := f.form.Update(msg)
		if m, ok := form.(*huh.Form); ok {
			f.form = m
		}
		return f, cmd

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return f, func() tea.Msg { return CancelledMsg{} }
		}
	}

	form, cmd := f.form.Update(msg)
	if m, ok := form.(*huh.Form); ok {
		f.form = m
	}

	if f.form.State == huh.StateCompleted {
		return f.advanceStep()
	}

	return f, cmd
}

func (f *ProfileForm) advanceStep() (tea.Model, tea.Cmd) {
	switch f.step {
	case 1:
		f.step = 2
		f.form = f.createStep2Form()
		return f, f.form.Init()

	case 2:
		f.step = 3
		f.form = f.createStep3Form()
		return f, f.form.Init()

	case 3:
		update := f.buildUpdate()
		return f, func() tea.Msg {
			return CompleteMsg{Update: update}
		}
	}

	return f, nil
}

// buildUpdate converts the collected strings into a profile patch.
// Values were validated per step, so parse failures just leave the
// field unset.
func (f *ProfileForm) buildUpdate() api.ProfileUpdate {
	var update api.ProfileUpdate

	if f.firstName != "" {
		update.FirstName = &f.firstName
	}
	if f.lastName != "" {
		update.LastName = &f.lastName
	}
	update.Gender = &f.gender
	if age, err := strconv.Atoi(strings.TrimSpace(f.age)); err == nil {
		update.Age = &age
	}
	if weight, err := strconv.ParseFloat(strings.TrimSpace(f.weight), 64); err == nil {
		update.Weight = &weight
	}
	if height, err := strconv.ParseFloat(strings.TrimSpace(f.height), 64); err == nil {
		update.Height = &height
	}
	update.Goal = &f.goal
	update.ActivityLevel = &f.activity
	update.DietPreference = &f.diet
	update.ExperienceLevel = &f.level

	return update
}

// SetWidth sets the wizard width for proper rendering
func (f *ProfileForm) SetWidth(width int) {
	f.width = width
}

// View implements tea.Model
func (f *ProfileForm) View() string {
	var sb strings.Builder

	sb.WriteString(f.renderProgress())
	sb.WriteString("\n\n")
	sb.WriteString(f.form.View())

	return sb.String()
}

// renderProgress renders the step progress indicator
func (f *ProfileForm) renderProgress() string {
	var steps []string
	for i, name := range stepNames {
		stepNum := i + 1
		var indicator string
		var nameStyle lipgloss.Style

		if stepNum < f.step {
			indicator = lipgloss.NewStyle().Foreground(styles.Secondary).Render(icons.CheckOK.String())
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		} else if stepNum == f.step {
			indicator = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render("●")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
		} else {
			indicator = lipgloss.NewStyle().Foreground(styles.Muted).Render("○")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		}

		steps = append(steps, fmt.Sprintf("%s %s", indicator, nameStyle.Render(name)))
	}

	return strings.Join(steps, "    ")
}
