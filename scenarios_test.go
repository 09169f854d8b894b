package cabsl_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bhuman/cabsl"
	"github.com/stretchr/testify/require"
)

// Scenario 1: hello-state.

type helloBehavior struct {
	cabsl.Engine
	output int
}

const optHello = "HelloR"

func init() {
	cabsl.Register(optHello, func(b *helloBehavior, s *cabsl.Scope) {
		if s.StateID() == 0 {
			b.output = 1
		}
	})
}

func TestHelloState(t *testing.T) {
	b := &helloBehavior{}
	require.NoError(t, cabsl.BeginFrame(b, 10))
	cabsl.Execute(b, optHello)
	require.NoError(t, cabsl.EndFrame(b))

	require.Equal(t, 1, b.output)
	graph := b.Graph()
	require.Len(t, graph, 1)
	require.Equal(t, optHello, graph[0].Option)
	require.Equal(t, 1, graph[0].Depth)
	require.Equal(t, 0, graph[0].OptionTime)
	require.Equal(t, 0, graph[0].StateTime)
}

func TestDoubleExecuteSameFrame(t *testing.T) {
	b := &helloBehavior{}
	require.NoError(t, cabsl.BeginFrame(b, 1))
	cabsl.Execute(b, optHello)
	cabsl.Execute(b, optHello)
	require.NoError(t, cabsl.EndFrame(b))
	require.Len(t, b.Graph(), 2)
}

func TestRoundTripEmptyFrame(t *testing.T) {
	b := &helloBehavior{}
	require.NoError(t, cabsl.BeginFrame(b, 5))
	require.NoError(t, cabsl.EndFrame(b))
	require.Empty(t, b.Graph())
}

// Scenario 2: re-entry after skip.

type reentryBehavior struct {
	cabsl.Engine
	lastState      int
	lastOptionTime int
}

const (
	optReentry = "ReentryR"
	stateS1    = 1
)

func init() {
	cabsl.Register(optReentry, func(b *reentryBehavior, s *cabsl.Scope) {
		if s.StateID() == 0 {
			s.Goto(stateS1, "s1", cabsl.Normal)
		}
		b.lastState = s.StateID()
		b.lastOptionTime = s.OptionTime()
	})
}

func TestReentryAfterSkip(t *testing.T) {
	b := &reentryBehavior{}
	step := func(cycle cabsl.Cycle, invoke bool) {
		require.NoError(t, cabsl.BeginFrame(b, cycle))
		if invoke {
			cabsl.Execute(b, optReentry)
		}
		require.NoError(t, cabsl.EndFrame(b))
	}

	step(1, true)
	require.Equal(t, stateS1, b.lastState)
	require.Equal(t, 0, b.lastOptionTime)

	step(2, true)
	require.Equal(t, stateS1, b.lastState)
	require.Equal(t, 1, b.lastOptionTime)

	step(3, false) // R not executed this cycle

	step(4, true)
	require.Equal(t, stateS1, b.lastState)
	require.Equal(t, 0, b.lastOptionTime, "option_start_cycle must reset to 4")
}

// Scenario 3: target signaling.

type signalBehavior struct {
	cabsl.Engine
	actionDoneAtP bool
}

const (
	optP      = "SignalP"
	optC      = "SignalC"
	stateDone = 1
)

func init() {
	cabsl.Register(optC, func(b *signalBehavior, s *cabsl.Scope) {
		if s.StateID() == 0 {
			s.Goto(stateDone, "done", cabsl.Target)
		}
	})
	cabsl.Register(optP, func(b *signalBehavior, s *cabsl.Scope) {
		s.Action()
		b.actionDoneAtP = s.ActionDone()
		cabsl.Invoke(b, optC, false)
	})
}

func TestTargetSignaling(t *testing.T) {
	b := &signalBehavior{}

	require.NoError(t, cabsl.BeginFrame(b, 1))
	cabsl.Execute(b, optP)
	require.NoError(t, cabsl.EndFrame(b))
	require.False(t, b.actionDoneAtP, "no sub-option ran before cycle 1")

	graph := b.Graph()
	require.Len(t, graph, 2)
	require.Equal(t, optP, graph[0].Option, "P's node is recorded pre-order, before its sub-option C")
	require.Equal(t, optC, graph[1].Option)

	require.NoError(t, cabsl.BeginFrame(b, 2))
	cabsl.Execute(b, optP)
	require.NoError(t, cabsl.EndFrame(b))
	require.True(t, b.actionDoneAtP, "C reached Target in cycle 1")
}

// Scenario 4: select-option skip.

type selectBehavior struct {
	cabsl.Engine
}

const (
	optSelA   = "SelA"
	optSelB   = "SelB"
	optSelC   = "SelC"
	stateLeft = 1
)

func init() {
	cabsl.Register(optSelA, func(b *selectBehavior, s *cabsl.Scope) {
		// stays in initial forever
	})
	cabsl.Register(optSelB, func(b *selectBehavior, s *cabsl.Scope) {
		if s.StateID() == 0 {
			s.Goto(stateLeft, "left", cabsl.Normal)
		}
	})
	cabsl.Register(optSelC, func(b *selectBehavior, s *cabsl.Scope) {
		if s.StateID() == 0 {
			s.Goto(stateLeft, "left", cabsl.Normal)
		}
	})
}

func TestSelectOptionSkip(t *testing.T) {
	b := &selectBehavior{}
	require.NoError(t, cabsl.BeginFrame(b, 1))
	selected := cabsl.SelectOption(b, []string{optSelA, optSelB, optSelC})
	require.NoError(t, cabsl.EndFrame(b))

	require.True(t, selected)
	graph := b.Graph()
	require.Len(t, graph, 1)
	require.Equal(t, optSelB, graph[0].Option)
}

// Scenario 5: common transition wins.

type commonBehavior struct {
	cabsl.Engine
}

const (
	optCommon = "CommonWins"
	stateCS2  = 1
	stateCS3  = 2
)

func init() {
	cabsl.Register(optCommon, func(b *commonBehavior, s *cabsl.Scope) {
		s.SetCommonTransition()

		commonTransition := func() bool {
			s.Goto(stateCS2, "s2", cabsl.Normal)
			return true
		}
		if !commonTransition() {
			// per-state transition, only reached when the common
			// transition did not change state.
			if s.StateID() == 0 {
				s.Goto(stateCS3, "s3", cabsl.Normal)
			}
		}
	})
}

func TestCommonTransitionWins(t *testing.T) {
	b := &commonBehavior{}
	require.NoError(t, cabsl.BeginFrame(b, 1))
	cabsl.Execute(b, optCommon)
	require.NoError(t, cabsl.EndFrame(b))

	graph := b.Graph()
	require.Len(t, graph, 1)
	require.Equal(t, "s2", graph[0].State)
}

// Scenario 6: definitions load.

type defsValues struct {
	A int     `yaml:"a"`
	B float64 `yaml:"b"`
}

type defsBehavior struct {
	cabsl.Engine
	a int
	b float64
}

const optDefs = "DefsOpt"

func init() {
	cabsl.RegisterDefinitions[defsValues](optDefs, true)
	cabsl.Register(optDefs, func(b *defsBehavior, s *cabsl.Scope) {
		d := cabsl.Defs[defsValues](s)
		b.a, b.b = d.A, d.B
	})
}

// TestMain runs the package's tests from a scratch working directory that
// holds a valid DefsOpt.cfg. The RegisterDefinitions call above applies to
// every Engine, so each test's first BeginFrame loads that file whichever
// option the test goes on to execute.
func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "cabsl-test-")
	if err != nil {
		panic(err)
	}
	if err := os.WriteFile(filepath.Join(dir, optDefs+".cfg"), []byte("a: 7\nb: 2.5\n"), 0o644); err != nil {
		panic(err)
	}
	if err := os.Chdir(dir); err != nil {
		panic(err)
	}
	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func TestDefinitionsLoad(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, os.WriteFile("DefsOpt.cfg", []byte("a: 7\nb: 2.5\n"), 0o644))
		b := &defsBehavior{}
		require.NoError(t, cabsl.BeginFrame(b, 1))
		cabsl.Execute(b, optDefs)
		require.NoError(t, cabsl.EndFrame(b))
		require.Equal(t, 7, b.a)
		require.InDelta(t, 2.5, b.b, 0.0001)
	})

	t.Run("malformed", func(t *testing.T) {
		require.NoError(t, os.WriteFile("DefsOpt.cfg", []byte("a: not-a-number\nb: 2.5\n"), 0o644))
		b := &defsBehavior{}
		err := cabsl.BeginFrame(b, 1)
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		require.NoError(t, os.Remove("DefsOpt.cfg"))
		b := &defsBehavior{}
		err := cabsl.BeginFrame(b, 1)
		require.Error(t, err)
	})
}
