package ui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"furnedit/internal/furni"
	"furnedit/internal/history"
	"furnedit/internal/layers"
	"furnedit/internal/store"
	"furnedit/internal/trace"
)

var errNoStore = errors.New("no store configured")

// Options configures NewAppModel.
type Options struct {
	File         string // name passed to Store.Save
	Store        *store.Store
	HistoryLimit int
	Autosave     bool
	Logger       *zap.Logger
	Recorder     *trace.Recorder // nil disables tracing
}

// AppModel is the root model. It owns the document: the editor emits every
// edit to accept, which records undo history and hands the document back.
type AppModel struct {
	File     string
	Doc      *furni.Document
	Editor   *layers.Editor
	Layers   *LayersView
	History  *history.History
	Store    *store.Store
	Recorder *trace.Recorder
	Log      *zap.Logger
	Autosave bool

	Leader     *Leader
	Overlays   OverlayStack

	saved         *furni.Document // last document written to disk
	saving        bool            // a save command is in flight
	saveQueued    bool            // another save was requested while saving
	saveSeq       int             // sequence number of the newest save started
	status        string
	statusErr     bool
	showHelp      bool
	pendingSave   bool
	width, height int
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel creates the root application model over doc, as loaded from disk.
func NewAppModel(doc *furni.Document, opts Options) *AppModel {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	a := &AppModel{
		File:     opts.File,
		Doc:      doc,
		History:  history.New(opts.HistoryLimit),
		Store:    opts.Store,
		Recorder: opts.Recorder,
		Log:      log.Named("ui"),
		Autosave: opts.Autosave,
		saved:    doc,
		width:    defaultWidth,
		height:   defaultHeight,
	}

	observers := []layers.Observer{layers.NewLogObserver(log)}
	if opts.Recorder != nil {
		observers = append(observers, opts.Recorder)
	}
	a.Editor = layers.New(doc, a.accept, layers.WithObserver(layers.NewMultiObserver(observers...)))
	a.Layers = NewLayersView(a.Editor)
	a.Leader = NewLeader(newKeymap())
	return a
}

func newKeymap() *Keymap {
	km := NewKeymap()
	km.Bind("q", QuitMsg{}, "Quit")
	km.Bind("ctrl+c", tea.QuitMsg{}, "Force quit")
	km.Bind("a", AddLayerMsg{}, "Add layer")
	km.Bind("d", ShowDeleteLayerMsg{}, "Delete layer")
	km.Bind("[", CycleVizMsg{Delta: -1}, "Previous visualization")
	km.Bind("]", CycleVizMsg{Delta: 1}, "Next visualization")
	km.Bind("v", ShowVizPickerMsg{}, "Pick visualization")
	km.Bind("u", UndoMsg{}, "Undo")
	km.Bind("ctrl+r", RedoMsg{}, "Redo")
	km.Bind("ctrl+s", SaveMsg{}, "Save")
	km.Bind("?", ToggleHelpMsg{}, "Toggle help")

	km.Group("SPC l", "Layer")
	km.Bind("SPC l a", AddLayerMsg{}, "Add layer", PaneLayers)
	km.Bind("SPC l d", ShowDeleteLayerMsg{}, "Delete layer", PaneLayers)
	km.Group("SPC v", "Visualization")
	km.Bind("SPC v n", CycleVizMsg{Delta: 1}, "Next visualization")
	km.Bind("SPC v p", CycleVizMsg{Delta: -1}, "Previous visualization")
	km.Bind("SPC v v", ShowVizPickerMsg{}, "Pick visualization")
	km.Bind("SPC w", SaveMsg{}, "Save")
	km.Bind("SPC q", QuitMsg{}, "Quit")
	return km
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (a *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: a}
}

// Dirty reports whether the document differs from the last saved one.
func (a *AppModel) Dirty() bool {
	return a.Doc != a.saved
}

// Status returns the status line text.
func (a *AppModel) Status() string {
	return a.status
}

// accept is the editor's update callback. Every emitted document is accepted.
func (a *AppModel) accept(doc *furni.Document) {
	prev := a.Doc
	a.History.Record(prev)
	a.Doc = doc
	a.Editor.SetDocument(doc)
	a.setPatchStatus("", prev, doc)
	if a.Autosave {
		a.pendingSave = true
	}
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return a.Layers.Init()
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.Layers.SetSize(msg.Width, msg.Height)
		return a, nil
	case DismissModalMsg:
		a.Overlays.Pop()
		return a, nil
	case AddLayerMsg:
		return a.handleAddLayer()
	case ShowDeleteLayerMsg:
		return a.handleShowDeleteLayer()
	case DeleteLayerMsg:
		return a.handleDeleteLayer(msg)
	case EditFieldMsg:
		return a.handleEditField()
	case SetLayerFieldMsg:
		return a.handleSetLayerField(msg)
	case SetVizFieldMsg:
		return a.handleSetVizField(msg)
	case CycleVizMsg:
		return a.handleCycleViz(msg)
	case ShowVizPickerMsg:
		return a.handleShowVizPicker()
	case SelectVizMsg:
		return a.handleSelectViz(msg)
	case UndoMsg:
		return a.handleUndo()
	case RedoMsg:
		return a.handleRedo()
	case SaveMsg:
		return a.handleSave()
	case SavedMsg:
		return a.handleSaved(msg)
	case QuitMsg:
		return a.handleQuit()
	case ToggleHelpMsg:
		a.showHelp = !a.showHelp
		return a, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.Overlays.Len() > 0 {
			if top, _ := a.Overlays.Peek(); top.IsDismissKey(msg.String()) {
				a.Overlays.Pop()
				return a, nil
			}
			cmd, _ := a.Overlays.UpdateTop(msg)
			return a, cmd
		}
		if consumed, keyCmd := a.Leader.Handle(msg, a.Layers.Focus.Current); consumed {
			return a, keyCmd
		}
		if a.showHelp && msg.String() == "esc" {
			a.showHelp = false
			return a, nil
		}
	default:
		if cmd, ok := a.Overlays.UpdateTop(msg); ok {
			return a, cmd
		}
	}

	v, cmd := a.Layers.Update(msg)
	if lv, ok := v.(*LayersView); ok {
		a.Layers = lv
	}
	return a, cmd
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	header := Styles.Title.Render("furnedit") + "  " + Styles.Muted.Render(a.File)
	if a.Dirty() {
		header += " " + Styles.Dirty.Render("●")
	}

	body := a.Layers.View()
	if a.Overlays.Len() > 0 {
		body = lipgloss.Place(a.width, lipgloss.Height(body),
			lipgloss.Center, lipgloss.Center, a.Overlays.View())
	}

	status := Styles.Status.Render(a.status)
	if a.statusErr {
		status = Styles.Error.Render(a.status)
	}

	out := header + "\n" + body + "\n" + status
	if a.Leader.Active() {
		out += "\n" + RenderLeaderHelp(a.Leader, a.Layers.Focus.Current)
	} else if a.showHelp {
		out += "\n" + RenderFullHelp(a.Leader.Keymap, a.Layers.Focus.Current, a.width)
	}
	return out
}
