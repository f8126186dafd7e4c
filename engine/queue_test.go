package engine_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aknorr/inputbridge/engine"
	"github.com/aknorr/inputbridge/internal/inputtest"
)

func TestQueuePreservesFIFOOrder(t *testing.T) {
	q := engine.NewQueue()
	q.Enqueue(engine.JoyButton{Device: 0, Button: 1, Pressed: true})
	q.Enqueue(engine.JoyAxis{Device: 0, Axis: 0, Value: 0.5})
	q.Enqueue(engine.JoyButton{Device: 0, Button: 1, Pressed: false})

	rec := &inputtest.Recorder{}
	assert.Equal(t, 3, q.Drain(rec))
	assert.Equal(t, []string{
		"joybutton(0,1,true)",
		"joyaxis(0,0,0.50)",
		"joybutton(0,1,false)",
	}, rec.Calls)
}

func TestQueueDeliversExactlyOnce(t *testing.T) {
	q := engine.NewQueue()
	q.Enqueue(engine.JoyHat{Device: 0, HatX: 1, HatY: -1})

	rec := &inputtest.Recorder{}
	assert.Equal(t, 1, q.Drain(rec))
	assert.Equal(t, 0, q.Drain(rec))
	assert.Len(t, rec.Calls, 1)
}

func TestQueueLen(t *testing.T) {
	q := engine.NewQueue()
	assert.Equal(t, 0, q.Len())
	q.Enqueue(engine.Key{Unicode: 'x', Pressed: true})
	assert.Equal(t, 1, q.Len())
}

func TestQueueDispatchDeliversUntilClose(t *testing.T) {
	q := engine.NewQueue()
	rec := &inputtest.Recorder{}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		q.Dispatch(rec)
	}()

	q.Enqueue(engine.Key{Unicode: 'a', Pressed: true})
	q.Enqueue(engine.Key{Unicode: 'a', Pressed: false})
	q.Close()
	wg.Wait()

	assert.Equal(t, []string{
		"key(0,0,97,true)",
		"key(0,0,97,false)",
	}, rec.Calls)
}

func TestQueueDropsAfterClose(t *testing.T) {
	q := engine.NewQueue()
	q.Close()
	q.Enqueue(engine.Key{Unicode: 'a', Pressed: true})
	assert.Equal(t, 0, q.Len())
}

func TestEmissionKindNames(t *testing.T) {
	type testCase struct {
		emission engine.Emission
		want     string
	}

	cases := []testCase{
		{engine.JoyButton{}, "joybutton"},
		{engine.JoyAxis{}, "joyaxis"},
		{engine.JoyHat{}, "joyhat"},
		{engine.JoyConnectionChanged{}, "joyconnectionchanged"},
		{engine.Key{}, "key"},
		{engine.Hover{}, "hover"},
		{engine.Scroll{}, "scroll"},
		{engine.Touch{}, "touch"},
		{engine.MousePressed{}, "mousepressed"},
		{engine.MouseDragged{}, "mousedragged"},
	}

	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.emission.Kind().String())
		})
	}
}
