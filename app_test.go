package honeycomb

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResource1 struct {
	name  string
	calls int
}
type MockResource2 struct {
	name string
}

func NewMockResource1(name string) *MockResource1 {
	return &MockResource1{name: name}
}
func NewMockResource2(name string) *MockResource2 {
	return &MockResource2{name: name}
}

func TestApp_addResources(t *testing.T) {
	app := NewApp()

	resource1 := NewMockResource1("Resource1")
	app.addResources(resource1)
	assert.Contains(t, app.resources, reflect.TypeOf(resource1).Elem(), "Resource1 should be in resources map.")

	require.PanicsWithValue(t, fmt.Sprintf("%s is already in resources", reflect.TypeOf(resource1)), func() {
		app.addResources(resource1)
	})

	resource2 := NewMockResource2("Resource2")
	app.addResources(resource2)
	assert.Contains(t, app.resources, reflect.TypeOf(resource2).Elem(), "Resource2 should be in resources map.")

	assert.Panics(t, func() { app.addResources(MockResource2{}) }, "non-pointer resources are rejected")
}

func TestResource(t *testing.T) {
	app := NewApp()
	_, ok := Resource[MockResource1](app)
	assert.False(t, ok)

	want := NewMockResource1("r")
	app.addResources(want)
	got, ok := Resource[MockResource1](app)
	require.True(t, ok)
	assert.Same(t, want, got)
}

func TestApp_SystemInjection(t *testing.T) {
	app := NewApp()
	res := NewMockResource1("r")
	app.addResources(res)

	var gotCmd *Commands
	app.UseSystem(System(func(cmd *Commands, r *MockResource1) {
		gotCmd = cmd
		r.calls++
	}))

	app.Step()
	app.Step()

	assert.Equal(t, 2, res.calls)
	require.NotNil(t, gotCmd)
	assert.Equal(t, 2, app.Frame())
}

func TestApp_UnresolvedDependencyPanics(t *testing.T) {
	app := NewApp()
	app.UseSystem(System(func(r *MockResource2) {}))

	assert.Panics(t, func() { app.Step() })
}

func TestApp_StageOrder(t *testing.T) {
	app := NewApp()
	var order []string
	record := func(name string) func() {
		return func() { order = append(order, name) }
	}

	app.UseSystem(System(record("render")).InStage(Render))
	app.UseSystem(System(record("update")))
	app.UseSystem(System(record("prelude")).InStage(Prelude))
	app.UseStage(Stage{Name: "Late"}, AfterStage(Finale))
	app.UseSystem(System(record("late")).InStage(Stage{Name: "Late"}))
	app.UseStage(Stage{Name: "Early"}, BeforeStage(Prelude))
	app.UseSystem(System(record("early")).InStage(Stage{Name: "Early"}))

	app.Step()

	assert.Equal(t, []string{"early", "prelude", "update", "render", "late"}, order)
}

func TestApp_UnknownStagePanics(t *testing.T) {
	app := NewApp()
	assert.PanicsWithValue(t, "Stage Nowhere doesn't exist", func() {
		app.UseSystem(System(func() {}).InStage(Stage{Name: "Nowhere"}))
	})
	assert.PanicsWithValue(t, "Stage Nowhere not found", func() {
		app.UseStage(Stage{Name: "X"}, AfterStage(Stage{Name: "Nowhere"}))
	})
	assert.PanicsWithValue(t, "Stage Update already exists", func() {
		app.UseStage(Update, AfterStage(Render))
	})
}

func TestApp_RunUntilExit(t *testing.T) {
	app := NewApp()
	app.UseSystem(System(func(cmd *Commands) {
		if cmd.Frame() == 4 {
			cmd.Exit()
		}
	}))

	app.Run()

	assert.Equal(t, 5, app.Frame())
	assert.True(t, app.Exiting())
}

func TestApp_RunMaxFrames(t *testing.T) {
	app := NewApp()
	app.MaxFrames = 3

	var shutdown []int
	app.onShutdown(func() { shutdown = append(shutdown, 1) })
	app.onShutdown(func() { shutdown = append(shutdown, 2) })

	app.Run()

	assert.Equal(t, 3, app.Frame())
	assert.Equal(t, []int{2, 1}, shutdown, "shutdown hooks run in reverse order")

	app.Close()
	assert.Len(t, shutdown, 2, "hooks run once")
}
