package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"enhancements/internal/adapters/filesystem"
	"enhancements/internal/adapters/tui/styles"
	"enhancements/internal/adapters/tui/views"
	"enhancements/internal/application"
	"enhancements/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewRibbon ViewState = iota
	ViewCodeBlocks
	ViewHelp
)

// StatusChangedMsg tells the app to redraw the status bar
type StatusChangedMsg struct{}

// App is the main TUI application model
type App struct {
	views.ViewState
	statusBar *filesystem.StatusBar
	editor    ports.EditorOpener
	obsidian  ports.ObsidianOpener

	state      ViewState
	previous   ViewState
	ribbon     *views.RibbonModel
	codeBlocks *views.CodeBlocksModel
	help       *views.HelpModel
}

// NewApp creates a new TUI application. note may be empty; the code-block
// view then asks for one.
func NewApp(plugin *application.Plugin, scanner ports.NoteScanner, statusBar *filesystem.StatusBar, editor ports.EditorOpener, obsidian ports.ObsidianOpener, note string) *App {
	state := ViewRibbon
	if note != "" {
		state = ViewCodeBlocks
	}
	return &App{
		statusBar:  statusBar,
		editor:     editor,
		obsidian:   obsidian,
		state:      state,
		ribbon:     views.NewRibbonModel(plugin),
		codeBlocks: views.NewCodeBlocksModel(plugin, scanner, note),
		help:       views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.codeBlocks.Init()
}

// State returns the current view
func (a *App) State() ViewState {
	return a.state
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetSize(msg.Width, msg.Height)
		a.ribbon.SetSize(msg.Width, msg.Height)
		a.codeBlocks.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case StatusChangedMsg:
		return a, nil

	case views.ActionsDoneMsg:
		text, isErr := views.DoneMessage(msg)
		a.SetMessage(text, isErr)
		return a, nil

	case views.NoteLoadedMsg:
		if msg.Err == nil {
			a.ribbon.ActiveFile = msg.Result.Path
		}

	case views.SwitchToHelpMsg:
		a.previous = a.state
		a.state = ViewHelp
		return a, nil

	case views.SwitchBackMsg:
		a.state = a.previous
		return a, nil

	case views.OpenEditorMsg:
		return a, a.openEditor(msg.Path)

	case views.OpenObsidianMsg:
		return a, a.openObsidian(msg.Path)

	case openedMsg:
		if msg.err != nil {
			a.SetMessage(msg.err.Error(), true)
		} else {
			a.ClearMessage()
		}
		if msg.rescan {
			return a, a.codeBlocks.Load(a.codeBlocks.Note())
		}
		return a, nil

	case tea.KeyMsg:
		if a.state != ViewHelp && !a.codeBlocks.Prompting() {
			switch {
			case key.Matches(msg, views.QuitKey):
				return a, tea.Quit
			case key.Matches(msg, views.HelpKey):
				return a.Update(views.SwitchToHelpMsg{})
			case key.Matches(msg, views.TabKey):
				if a.state == ViewRibbon {
					a.state = ViewCodeBlocks
				} else {
					a.state = ViewRibbon
				}
				return a, nil
			}
		}
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewRibbon:
		_, cmd = a.ribbon.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	default:
		_, cmd = a.codeBlocks.Update(msg)
	}
	// Scan results belong to the code-block view whichever tab is showing.
	if _, ok := msg.(views.NoteLoadedMsg); ok && a.state != ViewCodeBlocks {
		_, cmd = a.codeBlocks.Update(msg)
	}

	return a, cmd
}

type openedMsg struct {
	err    error
	rescan bool
}

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		return nil
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return openedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return openedMsg{err: err, rescan: true}
	})
}

func (a *App) openObsidian(path string) tea.Cmd {
	if a.obsidian == nil {
		return nil
	}
	obsidian := a.obsidian
	return func() tea.Msg {
		return openedMsg{err: obsidian.OpenFile(path)}
	}
}

// View renders the current view
func (a *App) View() string {
	if a.state == ViewHelp {
		return a.help.View()
	}

	var b strings.Builder
	b.WriteString(a.renderTabs())
	b.WriteString("\n\n")

	switch a.state {
	case ViewRibbon:
		b.WriteString(a.ribbon.View())
	default:
		b.WriteString(a.codeBlocks.View())
	}
	b.WriteString("\n")

	if a.Message != "" {
		b.WriteString(views.RenderMessage(a.Message, a.MessageErr))
		b.WriteString("\n")
	}

	b.WriteString(a.renderStatusBar())
	b.WriteString("\n")

	help := []key.Binding{views.UpKey, views.DownKey, views.TabKey}
	if a.state == ViewCodeBlocks {
		help = append(help, views.CodeBlocksHelp()...)
	} else {
		help = append(help, views.RunKey)
	}
	help = append(help, views.HelpKey, views.QuitKey)
	b.WriteString(views.RenderHelpLine(help...))

	return styles.App.Render(b.String())
}

func (a *App) renderTabs() string {
	tab := func(label string, active bool) string {
		if active {
			return styles.TabActive.Render(label)
		}
		return styles.TabInactive.Render(label)
	}
	return tab("Ribbon", a.state == ViewRibbon) + " " + tab("Code blocks", a.state == ViewCodeBlocks)
}

func (a *App) renderStatusBar() string {
	texts := a.statusBar.Texts()
	if len(texts) == 0 {
		return ""
	}
	return styles.StatusKey.Render("status") + styles.StatusBar.Render(strings.Join(texts, "  |  "))
}
