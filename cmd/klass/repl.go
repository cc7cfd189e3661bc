package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"goklass/klass"
	"goklass/schema"
)

var (
	accentColor    = lipgloss.Color("#3B82F6")
	successColor   = lipgloss.Color("#10B981")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")
	highlightColor = lipgloss.Color("#F59E0B")

	promptStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	memberStyle = lipgloss.NewStyle().
			Foreground(highlightColor)

	staticStyle = lipgloss.NewStyle().
			Foreground(successColor)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(highlightColor)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

var replCommands = []string{"load", "classes", "show", "new", "call", "get", "set", "objects"}

type historyEntry struct {
	input  string
	output string
	isErr  bool
}

type replModel struct {
	textInput   textinput.Model
	registry    schema.Registry
	classes     map[string]*klass.Class
	classOrder  []string
	objects     map[string]klass.Value
	objOrder    []string
	history     []historyEntry
	cmdHistory  []string
	historyIdx  int
	width       int
	height      int
	showHelp    bool
	showObjects bool
	quitting    bool
	initialized bool
}

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	CtrlC key.Binding
	CtrlD key.Binding
	CtrlL key.Binding
	Tab   key.Binding
	CtrlV key.Binding
	CtrlH key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous command"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next command"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "execute"),
	),
	CtrlC: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	CtrlD: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "quit"),
	),
	CtrlL: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "autocomplete"),
	),
	CtrlV: key.NewBinding(
		key.WithKeys("ctrl+v"),
		key.WithHelp("ctrl+v", "toggle objects"),
	),
	CtrlH: key.NewBinding(
		key.WithKeys("ctrl+k"),
		key.WithHelp("ctrl+k", "toggle help"),
	),
}

func newREPLModel() replModel {
	ti := textinput.New()
	ti.Placeholder = "type a command..."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60
	ti.PromptStyle = promptStyle
	ti.Prompt = "klass> "

	return replModel{
		textInput:  ti,
		registry:   defaultRegistry(),
		classes:    make(map[string]*klass.Class),
		objects:    make(map[string]klass.Value),
		history:    make([]historyEntry, 0),
		cmdHistory: make([]string, 0),
		historyIdx: -1,
	}
}

func replCommand(args []string) error {
	m := newREPLModel()
	if len(args) > 0 {
		if _, err := m.loadSchema(args[0]); err != nil {
			return err
		}
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m replModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.EnterAltScreen)
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 10
		m.initialized = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.CtrlC), key.Matches(msg, keys.CtrlD):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.CtrlL):
			m.history = make([]historyEntry, 0)
			return m, nil

		case key.Matches(msg, keys.CtrlV):
			m.showObjects = !m.showObjects
			return m, nil

		case key.Matches(msg, keys.CtrlH):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, keys.Up):
			if len(m.cmdHistory) > 0 {
				if m.historyIdx == -1 {
					m.historyIdx = len(m.cmdHistory) - 1
				} else if m.historyIdx > 0 {
					m.historyIdx--
				}
				m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Down):
			if m.historyIdx != -1 {
				if m.historyIdx < len(m.cmdHistory)-1 {
					m.historyIdx++
					m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				} else {
					m.historyIdx = -1
					m.textInput.SetValue("")
				}
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Tab):
			m = m.handleAutocomplete()
			return m, nil

		case key.Matches(msg, keys.Enter):
			input := strings.TrimSpace(m.textInput.Value())
			if input == "" {
				return m, nil
			}

			if strings.HasPrefix(input, ":") {
				var cmd tea.Cmd
				m, cmd = m.handleCommand(input)
				m.textInput.SetValue("")
				m.historyIdx = -1
				return m, cmd
			}

			output, isErr := m.evaluate(input)
			m.history = append(m.history, historyEntry{
				input:  input,
				output: output,
				isErr:  isErr,
			})
			m.cmdHistory = append(m.cmdHistory, input)
			m.textInput.SetValue("")
			m.historyIdx = -1
			return m, nil
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m replModel) handleCommand(input string) (replModel, tea.Cmd) {
	parts := strings.Fields(input)
	cmd := parts[0]

	switch cmd {
	case ":help", ":h":
		m.showHelp = !m.showHelp
	case ":clear", ":c":
		m.history = make([]historyEntry, 0)
	case ":objects", ":o":
		m.showObjects = !m.showObjects
	case ":reset", ":r":
		m.classes = make(map[string]*klass.Class)
		m.classOrder = nil
		m.objects = make(map[string]klass.Value)
		m.objOrder = nil
		m.history = append(m.history, historyEntry{
			input:  input,
			output: "Session reset",
			isErr:  false,
		})
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	default:
		m.history = append(m.history, historyEntry{
			input:  input,
			output: fmt.Sprintf("Unknown command: %s", cmd),
			isErr:  true,
		})
	}
	return m, nil
}

func (m replModel) handleAutocomplete() replModel {
	input := m.textInput.Value()
	if input == "" {
		return m
	}

	words := strings.Fields(input)
	if len(words) == 0 {
		return m
	}
	lastWord := words[len(words)-1]

	var completions []string
	for _, c := range replCommands {
		if strings.HasPrefix(c, lastWord) {
			completions = append(completions, c)
		}
	}
	for _, name := range m.classOrder {
		if strings.HasPrefix(name, lastWord) {
			completions = append(completions, name)
		}
	}
	for _, name := range m.objOrder {
		if strings.HasPrefix(name, lastWord) {
			completions = append(completions, name)
		}
	}

	if len(completions) == 1 {
		prefix := strings.TrimSuffix(input, lastWord)
		m.textInput.SetValue(prefix + completions[0])
		m.textInput.CursorEnd()
	} else if len(completions) > 1 {
		m.history = append(m.history, historyEntry{
			input:  "",
			output: "Completions: " + strings.Join(completions, ", "),
			isErr:  false,
		})
	}

	return m
}

func (m *replModel) evaluate(input string) (string, bool) {
	fields := strings.Fields(input)
	cmd, rest := fields[0], fields[1:]

	switch cmd {
	case "load":
		if len(rest) != 1 {
			return "usage: load <schema.yaml>", true
		}
		count, err := m.loadSchema(rest[0])
		if err != nil {
			return err.Error(), true
		}
		return fmt.Sprintf("loaded %d classes", count), false

	case "classes":
		if len(m.classOrder) == 0 {
			return "no classes loaded", false
		}
		return strings.Join(m.classOrder, ", "), false

	case "show":
		if len(rest) != 1 {
			return "usage: show <Class>", true
		}
		cls, ok := m.classes[rest[0]]
		if !ok {
			return fmt.Sprintf("unknown class %s", rest[0]), true
		}
		return strings.TrimRight(renderClass(cls), "\n"), false

	case "new":
		if len(rest) < 2 {
			return "usage: new <var> <Class> [args...]", true
		}
		varName, clsName := rest[0], rest[1]
		cls, ok := m.classes[clsName]
		if !ok {
			return fmt.Sprintf("unknown class %s", clsName), true
		}
		inst, err := cls.New(parseLiterals(rest[2:])...)
		if err != nil {
			return err.Error(), true
		}
		if _, exists := m.objects[varName]; !exists {
			m.objOrder = append(m.objOrder, varName)
		}
		m.objects[varName] = inst
		return fmt.Sprintf("%s = %s", varName, inst.String()), false

	case "call":
		if len(rest) < 1 {
			return "usage: call <var|Class>.<method> [args...]", true
		}
		target, method, ok := splitRef(rest[0])
		if !ok {
			return "usage: call <var|Class>.<method> [args...]", true
		}
		args := parseLiterals(rest[1:])
		if obj, found := m.objects[target]; found {
			result, err := obj.Instance().CallMethod(method, args...)
			if err != nil {
				return err.Error(), true
			}
			return formatResult(result), false
		}
		if cls, found := m.classes[target]; found {
			result, err := cls.CallStatic(method, args...)
			if err != nil {
				return err.Error(), true
			}
			return formatResult(result), false
		}
		return fmt.Sprintf("unknown object or class %s", target), true

	case "get":
		if len(rest) != 1 {
			return "usage: get <var>.<member>", true
		}
		target, field, ok := splitRef(rest[0])
		if !ok {
			return "usage: get <var>.<member>", true
		}
		obj, found := m.objects[target]
		if !found {
			return fmt.Sprintf("unknown object %s", target), true
		}
		result, err := obj.Instance().Get(field)
		if err != nil {
			return err.Error(), true
		}
		return formatResult(result), false

	case "set":
		if len(rest) != 2 {
			return "usage: set <var>.<member> <value>", true
		}
		target, field, ok := splitRef(rest[0])
		if !ok {
			return "usage: set <var>.<member> <value>", true
		}
		obj, found := m.objects[target]
		if !found {
			return fmt.Sprintf("unknown object %s", target), true
		}
		if err := obj.Instance().Set(field, parseLiteral(rest[1])); err != nil {
			return err.Error(), true
		}
		return "ok", false

	case "objects":
		if len(m.objOrder) == 0 {
			return "no objects", false
		}
		lines := make([]string, len(m.objOrder))
		for i, name := range m.objOrder {
			lines[i] = fmt.Sprintf("%s = %s", name, m.objects[name].String())
		}
		return strings.Join(lines, "\n"), false
	}

	return fmt.Sprintf("unknown command %q (try :help)", cmd), true
}

func (m *replModel) loadSchema(path string) (int, error) {
	h, err := schema.Load(path, m.registry)
	if err != nil {
		return 0, err
	}
	for _, name := range h.Order {
		if _, exists := m.classes[name]; exists {
			return 0, fmt.Errorf("class %s already loaded", name)
		}
	}
	for _, name := range h.Order {
		m.classes[name] = h.Classes[name]
		m.classOrder = append(m.classOrder, name)
	}
	return len(h.Order), nil
}

func splitRef(ref string) (target, member string, ok bool) {
	target, member, found := strings.Cut(ref, ".")
	if !found || target == "" || member == "" {
		return "", "", false
	}
	return target, member, true
}

func parseLiterals(tokens []string) []klass.Value {
	values := make([]klass.Value, len(tokens))
	for i, tok := range tokens {
		values[i] = parseLiteral(tok)
	}
	return values
}

func parseLiteral(tok string) klass.Value {
	switch tok {
	case "nil":
		return klass.NewNil()
	case "true":
		return klass.NewBool(true)
	case "false":
		return klass.NewBool(false)
	}
	if i, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return klass.NewInt(i)
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil {
		return klass.NewFloat(f)
	}
	return klass.NewString(strings.Trim(tok, `"'`))
}

func formatResult(v klass.Value) string {
	if v.IsNil() {
		return "nil"
	}
	return v.String()
}

func (m replModel) View() string {
	if !m.initialized {
		return "Loading..."
	}

	if m.quitting {
		return mutedStyle.Render("Goodbye!\n")
	}

	var b strings.Builder

	header := headerStyle.Render("klass REPL")
	hint := mutedStyle.Render(fmt.Sprintf("%d classes, %d objects", len(m.classOrder), len(m.objOrder)))
	b.WriteString(header + " " + hint + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", min(m.width-2, 60))) + "\n\n")

	reservedLines := 8
	if m.showHelp {
		reservedLines += 13
	}
	if m.showObjects {
		reservedLines += len(m.objOrder) + 3
	}
	availableHeight := m.height - reservedLines

	historyStart := 0
	if len(m.history) > availableHeight {
		historyStart = len(m.history) - availableHeight
	}

	for i := historyStart; i < len(m.history); i++ {
		entry := m.history[i]
		if entry.input != "" {
			b.WriteString(mutedStyle.Render("  › ") + entry.input + "\n")
		}
		if entry.isErr {
			b.WriteString("  " + errorStyle.Render("✗ "+entry.output) + "\n")
		} else {
			b.WriteString("  " + resultStyle.Render("→ "+entry.output) + "\n")
		}
		b.WriteString("\n")
	}

	if m.showObjects {
		b.WriteString(renderObjectsPanel(m.objOrder, m.objects))
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString(renderHelpPanel())
		b.WriteString("\n")
	}

	b.WriteString(m.textInput.View() + "\n\n")

	footer := helpKeyStyle.Render("ctrl+k") + helpDescStyle.Render(" help  ") +
		helpKeyStyle.Render("ctrl+v") + helpDescStyle.Render(" objects  ") +
		helpKeyStyle.Render("ctrl+l") + helpDescStyle.Render(" clear  ") +
		helpKeyStyle.Render("ctrl+c") + helpDescStyle.Render(" quit")
	b.WriteString(footer)

	return b.String()
}

func renderObjectsPanel(order []string, objects map[string]klass.Value) string {
	if len(order) == 0 {
		return borderStyle.Render(mutedStyle.Render("No objects created"))
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Objects"))
	nameStyle := lipgloss.NewStyle().Foreground(highlightColor)
	for _, name := range order {
		lines = append(lines, fmt.Sprintf("  %s = %s", nameStyle.Render(name), objects[name].String()))
	}
	return borderStyle.Render(strings.Join(lines, "\n"))
}

func renderHelpPanel() string {
	help := []struct {
		key  string
		desc string
	}{
		{"load", "load <schema.yaml> into the session"},
		{"classes", "list loaded classes"},
		{"show", "show <Class> member table"},
		{"new", "new <var> <Class> [args...]"},
		{"call", "call <var|Class>.<method> [args...]"},
		{"get", "get <var>.<member>"},
		{"set", "set <var>.<member> <value>"},
		{"objects", "list session objects"},
		{":clear", "clear history"},
		{":reset", "reset session"},
		{":quit", "exit REPL"},
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Help"))
	for _, h := range help {
		line := fmt.Sprintf("  %s  %s",
			helpKeyStyle.Render(fmt.Sprintf("%-8s", h.key)),
			helpDescStyle.Render(h.desc))
		lines = append(lines, line)
	}

	return borderStyle.Render(strings.Join(lines, "\n"))
}
