package dialog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorDim = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorRed = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}

	formTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "30", Dark: "45"})
	formLabelStyle = lipgloss.NewStyle().Bold(true)
	formErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
	formHintStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	fieldPath = iota
	fieldName
	fieldCount
)

// Form is the terminal add-project form.
type Form struct {
	inputs    [fieldCount]textinput.Model
	focus     int
	err       error
	confirmed bool
	cancelled bool
	path      string
	name      string
}

// NewForm creates a form pre-filled with path and name.
func NewForm(path, name string) *Form {
	pi := textinput.New()
	pi.Placeholder = "/path/to/project"
	pi.CharLimit = 4096
	pi.Width = 60
	pi.SetValue(path)

	ni := textinput.New()
	ni.Placeholder = "Defaults to the folder name"
	ni.CharLimit = 200
	ni.Width = 60
	ni.SetValue(name)

	f := &Form{inputs: [fieldCount]textinput.Model{pi, ni}}
	f.inputs[fieldPath].Focus()
	return f
}

// Init implements tea.Model.
func (f *Form) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "ctrl+c":
			f.cancelled = true
			return f, tea.Quit
		case "tab", "down":
			f.setFocus(f.focus + 1)
			return f, nil
		case "shift+tab", "up":
			f.setFocus(f.focus - 1)
			return f, nil
		case "ctrl+s":
			return f, f.submit()
		case "enter":
			if f.focus < fieldCount-1 {
				f.setFocus(f.focus + 1)
				return f, nil
			}
			return f, f.submit()
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f *Form) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = (i + fieldCount) % fieldCount
	f.inputs[f.focus].Focus()
}

func (f *Form) submit() tea.Cmd {
	path, name, err := Validate(f.inputs[fieldPath].Value(), f.inputs[fieldName].Value())
	if err != nil {
		f.err = err
		if errors.Is(err, ErrInvalidPath) {
			f.setFocus(fieldPath)
		}
		return nil
	}
	f.err = nil
	f.path, f.name = path, name
	f.confirmed = true
	return tea.Quit
}

// View implements tea.Model.
func (f *Form) View() string {
	if f.confirmed || f.cancelled {
		return ""
	}

	parts := []string{
		formTitleStyle.Render("Add Project"),
		"",
		formLabelStyle.Render("Folder:"),
		f.inputs[fieldPath].View(),
		"",
		formLabelStyle.Render("Name:"),
		f.inputs[fieldName].View(),
		"",
	}
	if f.err != nil {
		parts = append(parts, formErrorStyle.Render(f.err.Error()), "")
	}
	parts = append(parts, formHintStyle.Render("Enter next/save  |  Tab next field  |  Esc cancel"))
	return strings.Join(parts, "\n") + "\n"
}

// Result returns the validated input once the user confirmed.
func (f *Form) Result() (path, name string, ok bool) {
	return f.path, f.name, f.confirmed
}

// RunForm shows the form on the given terminal streams and returns the
// validated input.
func RunForm(ctx context.Context, in io.Reader, out io.Writer, path, name string) (string, string, error) {
	p := tea.NewProgram(NewForm(path, name),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := p.Run()
	if err != nil {
		return "", "", fmt.Errorf("failed to run form: %w", err)
	}

	form, ok := final.(*Form)
	if !ok {
		return "", "", ErrCancelled
	}
	if path, name, ok := form.Result(); ok {
		return path, name, nil
	}
	return "", "", ErrCancelled
}

// Terminal is a Dialog that runs the form on stdin/stdout.
type Terminal struct {
	Path string
	Name string
}

// Prompt implements Dialog.
func (t Terminal) Prompt(ctx context.Context, onConfirm func(path, name string)) error {
	path, name, err := RunForm(ctx, os.Stdin, os.Stdout, t.Path, t.Name)
	if err != nil {
		return err
	}
	onConfirm(path, name)
	return nil
}
