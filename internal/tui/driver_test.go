package tui_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja-he/proppanel/internal/activation"
	"github.com/ja-he/proppanel/internal/bus"
	"github.com/ja-he/proppanel/internal/command"
	"github.com/ja-he/proppanel/internal/command/handlers"
	"github.com/ja-he/proppanel/internal/config"
	"github.com/ja-he/proppanel/internal/editor"
	"github.com/ja-he/proppanel/internal/input"
	"github.com/ja-he/proppanel/internal/logbuf"
	"github.com/ja-he/proppanel/internal/model"
	"github.com/ja-he/proppanel/internal/panel"
	"github.com/ja-he/proppanel/internal/provider"
	"github.com/ja-he/proppanel/internal/styling"
	"github.com/ja-he/proppanel/internal/tui"
)

type fixture struct {
	doc      *model.Document
	registry *model.ElementRegistry
	stack    *command.Stack
	panel    *panel.Panel
	screen   tcell.SimulationScreen
	driver   *tui.Driver
	saved    int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	doc := model.NewDocument()
	doc.DeclareType("bpmn:Task", "bpmn:Activity")
	doc.DeclareType("bpmn:ReceiveTask", "bpmn:Task")
	for _, o := range []*model.Object{
		model.NewObject("Definitions_1", "bpmn:Definitions", "", map[string]any{"rootElements": []model.ID{"Process_1", "Message_1"}}),
		model.NewObject("Process_1", "bpmn:Process", "Definitions_1", map[string]any{"name": "Order"}),
		model.NewObject("Message_1", "bpmn:Message", "Definitions_1", map[string]any{"name": "Order received"}),
		model.NewObject("Receive_1", "bpmn:ReceiveTask", "Process_1", map[string]any{"name": "Wait"}),
		model.NewObject("Task_1", "bpmn:Task", "Process_1", map[string]any{"name": "Ship"}),
	} {
		require.NoError(t, doc.Add(o))
	}
	registry := model.NewElementRegistry(doc)
	for _, el := range []*model.Element{
		{ID: "Process_1", BusinessObject: "Process_1"},
		{ID: "Receive_1", BusinessObject: "Receive_1", Parent: "Process_1"},
		{ID: "Task_1", BusinessObject: "Task_1", Parent: "Process_1"},
	} {
		require.NoError(t, registry.Add(el))
	}

	b := bus.New()
	stack := command.NewStack(b)
	require.NoError(t, handlers.Register(stack, registry))
	cfg := panel.DefaultConfig()
	p := panel.New(b, stack, provider.New(registry), registry, activation.NewActivator(b), cfg)

	defaults := config.Default(config.Dark)
	styles, err := styling.NewStylesheetFromConfig(defaults.Stylesheet)
	require.NoError(t, err)

	screen := tcell.NewSimulationScreen("UTF-8")
	handler, err := tui.NewScreenHandler(screen)
	require.NoError(t, err)
	screen.SetSize(80, 30)
	t.Cleanup(handler.Fini)

	f := &fixture{doc: doc, registry: registry, stack: stack, panel: p, screen: screen}
	d, err := tui.New(handler, p, stack, b, registry, tui.Options{
		Keys:        defaults.Keys,
		Styles:      styles,
		PanelConfig: cfg,
		Save:        func() error { f.saved++; return nil },
		Logs:        logbuf.New(10),
	})
	require.NoError(t, err)
	t.Cleanup(d.Close)
	f.driver = d

	el, ok := registry.Get("Process_1")
	require.True(t, ok)
	require.NoError(t, p.Update(el))
	return f
}

// press feeds keyspecs (e.g. "jj<cr>") to the driver.
func (f *fixture) press(t *testing.T, keyspec input.Keyspec) {
	t.Helper()
	keys, err := keyspec.Parse()
	require.NoError(t, err)
	for _, k := range keys {
		f.driver.HandleKey(k)
	}
}

func (f *fixture) prop(id model.ID, name string) any {
	o, _ := f.doc.Get(id)
	return o.Get(name)
}

func (f *fixture) focusedName() string {
	if n := f.driver.Focused(); n != nil {
		return n.GetAttr("name")
	}
	return ""
}

func (f *fixture) screenText() string {
	f.driver.Draw()
	cells, w, _ := f.screen.GetContents()
	var sb strings.Builder
	for i, c := range cells {
		if len(c.Runes) > 0 {
			sb.WriteRune(c.Runes[0])
		} else {
			sb.WriteRune(' ')
		}
		if (i+1)%w == 0 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

func TestNavigation(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, "id", f.focusedName())
	f.press(t, "jj")
	assert.Equal(t, "name", f.focusedName(), "clear button of id is focusable in between")
	f.press(t, "k<up>")
	assert.Equal(t, "id", f.focusedName())
	f.press(t, "k")
	assert.Equal(t, "documentation", f.focusedName(), "focus wraps around")

	f.press(t, "<tab>")
	assert.Equal(t, "propertyName", f.focusedName(), "extensions tab")
	f.press(t, "<s-tab>")
	assert.Equal(t, "id", f.focusedName())
}

func TestEditText(t *testing.T) {
	f := newFixture(t)

	f.press(t, "jji")
	mode, open := f.driver.EditorMode()
	require.True(t, open)
	assert.Equal(t, editor.ModeNormal, mode)

	f.press(t, "As<esc><cr>")
	_, open = f.driver.EditorMode()
	assert.False(t, open, "editor closes after a valid write")
	assert.Equal(t, "Orders", f.prop("Process_1", "name"))

	f.press(t, "u")
	assert.Equal(t, "Order", f.prop("Process_1", "name"))
	f.press(t, "<c-r>")
	assert.Equal(t, "Orders", f.prop("Process_1", "name"))
}

func TestInvalidEditKeepsEditorOpen(t *testing.T) {
	f := newFixture(t)

	f.press(t, "iA x<esc><cr>")
	_, open := f.driver.EditorMode()
	assert.True(t, open)
	assert.Contains(t, f.screenText(), provider.IDWhitespaceMessage)
	_, stillThere := f.doc.Get("Process_1")
	assert.True(t, stillThere, "nothing was committed")
	assert.False(t, f.stack.CanUndo())

	f.press(t, "<esc>")
	_, open = f.driver.EditorMode()
	assert.False(t, open)
}

func TestToggleAndClear(t *testing.T) {
	f := newFixture(t)

	f.press(t, "jjjj")
	assert.Equal(t, "isExecutable", f.focusedName())
	f.press(t, "<space>")
	assert.Equal(t, true, f.prop("Process_1", "isExecutable"))
	f.press(t, "<cr>")
	assert.Equal(t, false, f.prop("Process_1", "isExecutable"), "unchecked checkbox writes false")

	f.press(t, "kk")
	assert.Equal(t, "name", f.focusedName())
	f.press(t, "c")
	assert.Nil(t, f.prop("Process_1", "name"))
}

func TestUndoWithoutHistoryReportsStatus(t *testing.T) {
	f := newFixture(t)
	f.press(t, "u")
	assert.Equal(t, command.ErrNothingToUndo.Error(), f.driver.Status())
}

func TestSave(t *testing.T) {
	f := newFixture(t)
	f.press(t, "<c-s>")
	assert.Equal(t, 1, f.saved)
	assert.Equal(t, "saved", f.driver.Status())
}

func TestPickElement(t *testing.T) {
	f := newFixture(t)

	f.press(t, "jj/ship<cr>")
	require.NotNil(t, f.panel.Current())
	assert.Equal(t, model.ID("Task_1"), f.panel.Current().ID)
	assert.Equal(t, "id", f.focusedName(), "focus resets for a new element")

	f.press(t, "/Rec")
	assert.Equal(t, "pick", f.driver.Layer())
	assert.Contains(t, f.screenText(), "-- PICK --")

	f.press(t, "<bs><bs><bs>Receive<esc>")
	assert.Equal(t, model.ID("Task_1"), f.panel.Current().ID, "quitting the picker keeps the selection")
	assert.Equal(t, "", f.driver.Layer())
}

func TestSelectCyclesOptions(t *testing.T) {
	f := newFixture(t)
	f.press(t, "/Receive_1<cr>")
	require.Equal(t, model.ID("Receive_1"), f.panel.Current().ID)

	for i := 0; i < 10 && f.focusedName() != "messageRef"; i++ {
		f.press(t, "j")
	}
	require.Equal(t, "messageRef", f.focusedName())
	f.press(t, "<space>")
	assert.Equal(t, model.ID("Message_1"), f.prop("Receive_1", "messageRef"))
}

func TestDrawAndOverlays(t *testing.T) {
	f := newFixture(t)

	text := f.screenText()
	assert.Contains(t, text, "Process_1 bpmn:Process Order")
	assert.Contains(t, text, "General")
	assert.Contains(t, text, "Extensions")
	assert.Contains(t, text, "[Order]")

	f.press(t, "?")
	assert.Contains(t, f.screenText(), "pick element")
	f.press(t, "?L")
	assert.Contains(t, f.screenText(), "LOG")
}

func TestRunStopsOnQuitAndContext(t *testing.T) {
	t.Run("quit key", func(t *testing.T) {
		f := newFixture(t)
		f.screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
		require.NoError(t, f.driver.Run(context.Background()))
		assert.True(t, f.driver.Quit())
	})

	t.Run("context", func(t *testing.T) {
		f := newFixture(t)
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, f.driver.Run(ctx), context.DeadlineExceeded)
	})
}
