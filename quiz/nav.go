package quiz

import (
	"errors"
	"fmt"

	"github.com/phanxgames/mist"
)

// ErrNoQuestion is returned when an operation needs a current question and
// there is none, or when a topic title is unknown.
var ErrNoQuestion = errors.New("quiz: no such question")

// NavState is the navigation snapshot the fog density follows.
type NavState struct {
	Screen mist.Screen
	// Index is the current question, 0-based. Zero outside the quiz.
	Index int
	// Total is the number of questions.
	Total int
	// Topic is the current topic title, empty outside the quiz.
	Topic string
}

// NavSink receives every navigation change. Attach one with
// Navigator.SetSink.
type NavSink interface {
	EmitNav(NavState)
}

type navListener struct {
	id uint32
	fn func(NavState)
}

// ListenerHandle removes a listener registered with OnChange.
type ListenerHandle struct {
	id  uint32
	nav *Navigator
}

// Remove unregisters the listener.
func (h ListenerHandle) Remove() {
	if h.nav == nil {
		return
	}
	ls := h.nav.listeners
	for i := range ls {
		if ls[i].id == h.id {
			copy(ls[i:], ls[i+1:])
			ls[len(ls)-1] = navListener{}
			h.nav.listeners = ls[:len(ls)-1]
			return
		}
	}
}

// Navigator is the landing -> quiz(0..N-1) -> final state machine. Exit
// from any question and Restart from the final screen return to landing.
// Every transition notifies listeners and the sink, in that order.
type Navigator struct {
	topics    []Topic
	state     NavState
	listeners []navListener
	nextID    uint32
	sink      NavSink
}

// NewNavigator starts on the landing screen. A nil topics slice uses
// DefaultTopics.
func NewNavigator(topics []Topic) *Navigator {
	if topics == nil {
		topics = DefaultTopics()
	}
	return &Navigator{
		topics: topics,
		state:  NavState{Screen: mist.ScreenLanding, Total: len(topics)},
	}
}

// Topics returns the quiz topics. The returned slice MUST NOT be mutated.
func (n *Navigator) Topics() []Topic { return n.topics }

// State returns the current navigation snapshot.
func (n *Navigator) State() NavState { return n.state }

// Current returns the topic on screen, or ErrNoQuestion outside the quiz.
func (n *Navigator) Current() (Topic, error) {
	if n.state.Screen != mist.ScreenQuiz {
		return Topic{}, ErrNoQuestion
	}
	t, ok := n.topicByTitle(n.state.Topic)
	if !ok {
		return Topic{}, fmt.Errorf("%w: %q", ErrNoQuestion, n.state.Topic)
	}
	return t, nil
}

// SetSink attaches a sink that receives every change. Nil detaches.
func (n *Navigator) SetSink(s NavSink) { n.sink = s }

// OnChange registers fn for every transition.
func (n *Navigator) OnChange(fn func(NavState)) ListenerHandle {
	n.nextID++
	n.listeners = append(n.listeners, navListener{id: n.nextID, fn: fn})
	return ListenerHandle{id: n.nextID, nav: n}
}

// SelectTopic starts the quiz on the named topic at question index 0.
// Later questions follow the topic order regardless of which topic was
// picked.
func (n *Navigator) SelectTopic(title string) error {
	if _, ok := n.topicByTitle(title); !ok {
		return fmt.Errorf("%w: unknown topic %q", ErrNoQuestion, title)
	}
	n.set(NavState{Screen: mist.ScreenQuiz, Index: 0, Total: len(n.topics), Topic: title})
	return nil
}

// Next advances to the following topic, or to the final screen after the
// last one. It returns ErrNoQuestion outside the quiz.
func (n *Navigator) Next() error {
	if n.state.Screen != mist.ScreenQuiz {
		return ErrNoQuestion
	}
	next := n.state.Index + 1
	if next >= len(n.topics) {
		n.set(NavState{Screen: mist.ScreenFinal, Index: n.state.Index, Total: len(n.topics)})
		return nil
	}
	n.set(NavState{Screen: mist.ScreenQuiz, Index: next, Total: len(n.topics), Topic: n.topics[next].Title})
	return nil
}

// Exit leaves the quiz for the landing screen.
func (n *Navigator) Exit() {
	n.set(NavState{Screen: mist.ScreenLanding, Total: len(n.topics)})
}

// Restart returns from the final screen to landing.
func (n *Navigator) Restart() {
	n.set(NavState{Screen: mist.ScreenLanding, Total: len(n.topics)})
}

func (n *Navigator) set(s NavState) {
	n.state = s
	for _, l := range n.listeners {
		l.fn(s)
	}
	if n.sink != nil {
		n.sink.EmitNav(s)
	}
}

func (n *Navigator) topicByTitle(title string) (Topic, bool) {
	for _, t := range n.topics {
		if t.Title == title {
			return t, true
		}
	}
	return Topic{}, false
}
