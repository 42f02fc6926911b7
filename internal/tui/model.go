// Package tui is the terminal front-end of tagsort. It shows the current
// file, lets the user compose a tag name with suggestions, and moves the
// file into a category with a single key.
package tui

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"tagsort/internal/collection"
	"tagsort/internal/config"
	"tagsort/internal/errors"
	"tagsort/internal/history"
	"tagsort/internal/log"
	"tagsort/internal/segment"
	"tagsort/internal/tui/common"
	"tagsort/internal/tui/messages"
	"tagsort/internal/tui/styles"
	"tagsort/internal/tui/views"
	"tagsort/pkg/types"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// pageSize is how far pgup and pgdown jump
const pageSize = 10

// statusTimeout is how long a status message stays on screen
const statusTimeout = 4 * time.Second

// Suggester returns ranked tags for the segment being typed
type Suggester interface {
	Suggest(query string) []string
}

// TagStore receives tags the user saves from the composition buffer
type TagStore interface {
	Add(tag string) (bool, error)
}

// Deps are the core components the model drives
type Deps struct {
	Config     *config.Config
	Collection *collection.Collection
	Suggester  Suggester
	Store      TagStore
	Journal    history.Journal
	Logger     log.Logging
}

type Model struct {
	cfg        *config.Config
	collection *collection.Collection
	suggester  Suggester
	store      TagStore
	journal    history.Journal
	logger     log.Logging

	keys     types.KeyMap
	theme    styles.Theme
	name     textinput.Model
	gotoPos  textinput.Model
	help     help.Model
	progress progress.Model

	mode        types.Mode
	suggestions []string
	selected    int
	status      common.Status
	statusID    int
}

// New creates the model. The collection must hold at least one file.
func New(d Deps) *Model {
	if d.Journal == nil {
		d.Journal = history.NopJournal{}
	}
	if d.Logger == nil {
		d.Logger = log.Default()
	}

	name := textinput.New()
	name.Prompt = "name › "
	name.Placeholder = "tag" + segment.Separator + "tag" + segment.Separator
	name.CharLimit = 200
	name.Focus()

	gotoPos := textinput.New()
	gotoPos.Prompt = "go to › "
	gotoPos.Placeholder = "file number"
	gotoPos.CharLimit = 9

	m := &Model{
		cfg:        d.Config,
		collection: d.Collection,
		suggester:  d.Suggester,
		store:      d.Store,
		journal:    d.Journal,
		logger:     d.Logger,
		keys:       types.DefaultKeyMap(),
		theme:      styles.NewTheme(d.Config),
		name:       name,
		gotoPos:    gotoPos,
		help:       help.New(),
		progress:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		mode:       types.Compose,
		selected:   -1,
	}
	if m.collection.Empty() {
		m.mode = types.Done
	}
	return m
}

// Run starts the program on the alternate screen and blocks until it exits
func Run(m *Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// View implements tea.Model
func (m *Model) View() string {
	return views.RenderMainView(m, m.theme)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.progress.Width = min(40, max(10, msg.Width/3))
		return m, nil
	case messages.StatusTimeoutMsg:
		if msg.ID == m.statusID {
			m.status = common.Status{}
		}
		return m, nil
	case messages.ErrorMsg:
		return m, m.setStatus(common.StatusError, msg.Err.Error())
	}

	var cmd tea.Cmd
	if m.mode == types.Goto {
		m.gotoPos, cmd = m.gotoPos.Update(msg)
	} else {
		m.name, cmd = m.name.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.mode {
	case types.Goto:
		return m.handleGotoKeys(msg)
	case types.Done:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	default:
		return m.handleComposeKeys(msg)
	}
}

func (m *Model) handleComposeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Next):
		m.collection.Next()
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.collection.Prev()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.collection.Seek(m.collection.Cursor() + pageSize)
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		m.collection.Seek(m.collection.Cursor() - pageSize)
		return m, nil
	case key.Matches(msg, m.keys.Goto):
		m.mode = types.Goto
		m.name.Blur()
		m.gotoPos.SetValue("")
		return m, m.gotoPos.Focus()
	case key.Matches(msg, m.keys.CycleSuggestion):
		if n := m.visibleSuggestions(); n > 0 {
			m.selected = (m.selected + 1) % n
		}
		return m, nil
	case key.Matches(msg, m.keys.AcceptSuggestion):
		m.acceptSuggestion()
		return m, nil
	case key.Matches(msg, m.keys.AddTag):
		return m, m.addTag()
	case key.Matches(msg, m.keys.ClearName):
		m.setName("")
		return m, nil
	case key.Matches(msg, m.keys.MoveDefault):
		return m, m.moveTo(m.cfg.DefaultFolder)
	}

	if msg.Type == tea.KeyRunes && msg.Alt && len(msg.Runes) == 1 {
		if button, ok := m.cfg.ButtonFor(string(msg.Runes)); ok {
			return m, m.moveTo(button.Path)
		}
		return m, m.setStatus(common.StatusWarning, fmt.Sprintf("no category bound to alt+%s", string(msg.Runes)))
	}

	before := m.name.Value()
	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	if m.name.Value() != before {
		m.refreshSuggestions()
	}
	return m, cmd
}

func (m *Model) handleGotoKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.leaveGoto()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		input := strings.TrimSpace(m.gotoPos.Value())
		m.leaveGoto()
		n, err := strconv.Atoi(input)
		if err != nil {
			return m, m.setStatus(common.StatusError, fmt.Sprintf("not a file number: %q", input))
		}
		// Positions are shown one-based
		m.collection.Seek(n - 1)
		return m, nil
	}

	var cmd tea.Cmd
	m.gotoPos, cmd = m.gotoPos.Update(msg)
	return m, cmd
}

func (m *Model) leaveGoto() {
	m.mode = types.Compose
	m.gotoPos.Blur()
	m.gotoPos.SetValue("")
	m.name.Focus()
}

// setName replaces the composition buffer and recomputes suggestions
func (m *Model) setName(value string) {
	m.name.SetValue(value)
	m.name.CursorEnd()
	m.refreshSuggestions()
}

func (m *Model) refreshSuggestions() {
	m.selected = -1
	active := segment.Active(m.name.Value())
	if active == "" || m.suggester == nil {
		m.suggestions = nil
		return
	}
	m.suggestions = m.suggester.Suggest(active)
}

// acceptSuggestion splices the highlighted suggestion, or the best one when
// none is highlighted, into the buffer in place of the active segment
func (m *Model) acceptSuggestion() {
	if len(m.suggestions) == 0 {
		return
	}
	choice := m.suggestions[0]
	if m.selected >= 0 && m.selected < len(m.suggestions) {
		choice = m.suggestions[m.selected]
	}
	m.setName(segment.Accept(m.name.Value(), choice))
}

// addTag saves the active segment, or the last completed one, to the corpus
func (m *Model) addTag() tea.Cmd {
	tag := segment.Active(m.name.Value())
	if tag == "" {
		segments := segment.Segments(m.name.Value())
		if len(segments) == 0 {
			return m.setStatus(common.StatusWarning, "nothing to save, type a tag first")
		}
		tag = segments[len(segments)-1]
	}
	if m.store == nil {
		return m.setStatus(common.StatusWarning, "tag corpus is not available")
	}

	added, err := m.store.Add(tag)
	switch {
	case err != nil:
		m.logger.With(log.ErrorFields(err)...).Error("failed to save tag")
		return m.setStatus(common.StatusError, err.Error())
	case !added:
		return m.setStatus(common.StatusInfo, fmt.Sprintf("%q is already known", tag))
	}
	m.refreshSuggestions()
	return m.setStatus(common.StatusSuccess, fmt.Sprintf("saved tag %q", tag))
}

// moveTo moves the current file into category using the composed name
func (m *Model) moveTo(category string) tea.Cmd {
	entry, ok := m.collection.Current()
	if !ok {
		return nil
	}
	newName := m.name.Value()
	size := fileSize(entry.Path)

	result, err := m.collection.MoveCurrent(category, newName)
	var moveErr *errors.MoveError
	if err == nil || errors.As(err, &moveErr) {
		m.record(history.NewRecord(m.collection.Root(), newName, size, result, err))
	}

	var cmd tea.Cmd
	switch {
	case err == nil:
		m.setName("")
		cmd = m.setStatus(common.StatusSuccess, "moved to "+result.DestinationPath)
	case errors.IsSourceNotRemoved(err):
		m.setName("")
		cmd = m.setStatus(common.StatusWarning, "copied to "+result.DestinationPath+" but the original could not be removed")
	case errors.IsDestinationExists(err):
		cmd = m.setStatus(common.StatusWarning, "skipped: "+result.DestinationPath+" already exists")
	case moveErr != nil && moveErr.Retryable():
		cmd = m.setStatus(common.StatusError, err.Error()+" (nothing changed, try again)")
	default:
		cmd = m.setStatus(common.StatusError, err.Error())
	}

	if m.collection.Empty() {
		m.mode = types.Done
		m.name.Blur()
	}
	return cmd
}

func (m *Model) record(rec *types.MoveRecord) {
	if err := m.journal.Record(rec); err != nil {
		m.logger.With(log.ErrorFields(err)...).Warn("failed to journal move")
	}
}

// setStatus shows text and schedules it to be cleared
func (m *Model) setStatus(kind common.StatusKind, text string) tea.Cmd {
	m.statusID++
	id := m.statusID
	m.status = common.Status{Text: text, Kind: kind}
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return messages.StatusTimeoutMsg{ID: id}
	})
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

// ModelReader implementation

func (m *Model) Mode() types.Mode {
	return m.mode
}

func (m *Model) Current() (types.Entry, bool) {
	return m.collection.Current()
}

func (m *Model) CurrentSize() int64 {
	entry, ok := m.collection.Current()
	if !ok {
		return 0
	}
	return fileSize(entry.Path)
}

func (m *Model) Position() common.Position {
	return common.Position{
		Cursor:    m.collection.Cursor(),
		Remaining: m.collection.Len(),
		Total:     m.collection.Total(),
	}
}

func (m *Model) NameInput() string {
	return m.name.View()
}

func (m *Model) GotoInput() string {
	return m.gotoPos.View()
}

// Name returns the raw composition buffer
func (m *Model) Name() string {
	return m.name.Value()
}

// Preview returns the file name the current file would get
func (m *Model) Preview() string {
	entry, ok := m.collection.Current()
	if !ok || m.name.Value() == "" {
		return ""
	}
	return collection.DestinationName(m.name.Value(), entry.Name)
}

func (m *Model) Suggestions() []string {
	return m.suggestions
}

// SuggestionDisplay is how many suggestions the screen shows, 0 for all
func (m *Model) SuggestionDisplay() int {
	return m.cfg.Suggest.Display
}

// visibleSuggestions is how many suggestions tab cycles through
func (m *Model) visibleSuggestions() int {
	n := len(m.suggestions)
	if d := m.SuggestionDisplay(); d > 0 && n > d {
		return d
	}
	return n
}

func (m *Model) SelectedSuggestion() int {
	return m.selected
}

func (m *Model) Buttons() []types.Button {
	return m.cfg.Buttons
}

func (m *Model) DefaultFolder() string {
	return m.cfg.DefaultFolder
}

func (m *Model) Status() common.Status {
	return m.status
}

func (m *Model) ShowHelp() bool {
	return m.help.ShowAll
}

func (m *Model) HelpView() string {
	return m.help.View(m.keys)
}

func (m *Model) ProgressView() string {
	pos := m.Position()
	if pos.Total == 0 {
		return ""
	}
	return m.progress.ViewAs(float64(pos.Sorted()) / float64(pos.Total))
}

var _ common.ModelReader = (*Model)(nil)
