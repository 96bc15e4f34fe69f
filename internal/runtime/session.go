package runtime

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/aretw0/seqline/pkg/domain"
	"github.com/aretw0/seqline/pkg/lifeline"
)

// session holds the state of one render.
type session struct {
	engine   *Engine
	name     string
	canvas   *Canvas
	stacks   map[int][]frame
	messages []domain.MessageLayout
	alive    map[string]bool
}

// frame is one open activation of a thread, together with whoever started it.
type frame struct {
	callee *lifeline.Lifeline
	caller *lifeline.Lifeline
	from   string
}

func (e *Engine) newSession(sc *domain.Scenario) (*session, error) {
	cfg := sc.Config.Apply(e.config)
	s := &session{
		engine: e,
		name:   sc.Name,
		canvas: NewCanvas(cfg),
		stacks: make(map[int][]frame),
	}
	headHeight := 0
	for _, p := range sc.Participants {
		l, err := s.canvas.Declare(p)
		if err != nil {
			return nil, err
		}
		if head, ok := l.Head(); ok {
			headHeight = max(headHeight, head.Height)
		}
	}
	s.canvas.Advance(headHeight + cfg.MessageSpacing)
	return s, nil
}

func (s *session) process(ctx context.Context, msg domain.Message) error {
	if msg.Thread < 0 {
		return fmt.Errorf("thread %d: thread numbers must not be negative", msg.Thread)
	}
	var err error
	switch msg.Kind {
	case domain.MessageCall, "":
		err = s.call(ctx, msg)
	case domain.MessageCreate:
		err = s.create(ctx, msg)
	case domain.MessageReturn:
		err = s.ret(ctx, msg)
	case domain.MessageDestroy:
		err = s.destroy(ctx, msg)
	default:
		err = fmt.Errorf("unknown message kind %q", msg.Kind)
	}
	if err != nil {
		return err
	}
	if hook := s.engine.hooks.OnMessage; hook != nil {
		hook(ctx, &domain.MessageEvent{
			Timestamp: time.Now(),
			Diagram:   s.name,
			Message:   msg,
			Y:         s.canvas.VerticalPosition(),
		})
	}
	s.canvas.Advance(s.canvas.Config().MessageSpacing)
	return nil
}

// caller resolves the lifeline the message is sent from. A message without sender comes from
// outside the diagram and has no caller.
func (s *session) caller(msg domain.Message) (*lifeline.Lifeline, error) {
	if msg.From == "" {
		return nil, nil
	}
	root, err := s.canvas.Lookup(msg.From)
	if err != nil {
		return nil, err
	}
	if !root.IsAlive() {
		return nil, fmt.Errorf("%q: %w", msg.From, domain.ErrNotAlive)
	}
	if stack := s.stacks[msg.Thread]; len(stack) > 0 && stack[len(stack)-1].callee.Root() == root {
		return stack[len(stack)-1].callee, nil
	}
	if l := root.LastInThread(msg.Thread); l != nil && l.IsActive() {
		return l, nil
	}
	if root.IsActive() {
		return root, nil
	}
	return nil, fmt.Errorf("%q in thread %d: %w", msg.From, msg.Thread, domain.ErrInactiveCaller)
}

func (s *session) call(ctx context.Context, msg domain.Message) error {
	caller, err := s.caller(msg)
	if err != nil {
		return err
	}
	root, err := s.canvas.Lookup(msg.To)
	if err != nil {
		return err
	}
	if !root.IsAlive() {
		return fmt.Errorf("%q: %w", msg.To, domain.ErrNotAlive)
	}
	callee := s.activate(ctx, root, caller, msg)
	s.arrow(msg, caller, callee)
	return nil
}

func (s *session) create(ctx context.Context, msg domain.Message) error {
	caller, err := s.caller(msg)
	if err != nil {
		return err
	}
	root, err := s.canvas.Lookup(msg.To)
	if err != nil {
		return err
	}
	if root.IsAlive() {
		return fmt.Errorf("%q: %w", msg.To, domain.ErrAlreadyAlive)
	}
	if head, ok := root.Head(); ok {
		root.Place(s.canvas.VerticalPosition() - head.Height/2)
	}
	root.GiveBirth()
	s.emit(ctx, domain.EventBirth, root)
	callee := s.activate(ctx, root, caller, msg)
	s.arrow(msg, caller, callee)
	return nil
}

// activate starts an activity of the participant. An idle root becomes active itself; a busy
// participant gets a nested activation branching away from the caller.
func (s *session) activate(ctx context.Context, root, caller *lifeline.Lifeline, msg domain.Message) *lifeline.Lifeline {
	thread := msg.Thread
	callee := root
	if root.IsActive() {
		target := root.LastInThread(thread)
		if target == nil {
			target = root
		}
		callee = target.AddActivity(s.canvas, caller, thread)
		s.emit(ctx, domain.EventSpawn, callee)
	} else {
		root.SetThread(thread)
	}
	callee.SetActive(s.canvas, true)
	s.emit(ctx, domain.EventActivate, callee)
	s.stacks[thread] = append(s.stacks[thread], frame{callee: callee, caller: caller, from: msg.From})
	return callee
}

func (s *session) ret(ctx context.Context, msg domain.Message) error {
	stack := s.stacks[msg.Thread]
	if len(stack) == 0 {
		return fmt.Errorf("thread %d: %w", msg.Thread, domain.ErrEmptyStack)
	}
	f := stack[len(stack)-1]
	l := f.callee
	if msg.From != "" && msg.From != l.Name() {
		return fmt.Errorf("return from %q but the innermost activation of thread %d belongs to %q: %w",
			msg.From, msg.Thread, l.Name(), domain.ErrInactiveCaller)
	}
	s.stacks[msg.Thread] = stack[:len(stack)-1]

	ret := msg
	ret.From, ret.To = l.Name(), f.from
	receiver := f.caller
	if msg.To != "" && msg.To != f.from {
		ret.To, receiver = msg.To, nil
	}
	s.arrow(ret, l, receiver)
	return s.end(ctx, l)
}

// end closes the activity of l. Sub lifelines are taken out of their chain.
func (s *session) end(ctx context.Context, l *lifeline.Lifeline) error {
	if l.IsRoot() {
		if l.IsAlwaysActive() {
			return nil
		}
		l.Finish(s.canvas)
		s.emit(ctx, domain.EventDeactivate, l)
		return nil
	}
	l.Finish(s.canvas)
	s.emit(ctx, domain.EventDeactivate, l)
	if err := l.Dispose(s.canvas); err != nil {
		return err
	}
	s.emit(ctx, domain.EventDispose, l)
	return nil
}

func (s *session) destroy(ctx context.Context, msg domain.Message) error {
	caller, err := s.caller(msg)
	if err != nil {
		return err
	}
	root, err := s.canvas.Lookup(msg.To)
	if err != nil {
		return err
	}
	for _, l := range root.AllLifelines() {
		if l.IsActive() && !(l.IsRoot() && l.IsAlwaysActive()) {
			return fmt.Errorf("%q: %w", msg.To, domain.ErrBusy)
		}
	}
	s.arrow(msg, caller, root)
	if root.IsAlive() {
		if err := root.Terminate(s.canvas); err != nil {
			return err
		}
		s.emit(ctx, domain.EventTerminate, root)
	}
	if _, ok := root.Cross(); ok {
		s.canvas.RemoveLifeline(root.Name())
	} else {
		root.Destroy(s.canvas)
	}
	root.SetDestroyed(true)
	s.emit(ctx, domain.EventDestroy, root)
	return nil
}

// finish closes every activation still open, then ends the life of the remaining participants.
func (s *session) finish(ctx context.Context) error {
	for _, thread := range slices.Sorted(maps.Keys(s.stacks)) {
		stack := s.stacks[thread]
		for i := len(stack) - 1; i >= 0; i-- {
			l := stack[i].callee
			s.engine.logger.Warn("Unwinding unreturned activation",
				"diagram", s.name, "participant", l.Name(), "thread", thread)
			if err := s.end(ctx, l); err != nil {
				return err
			}
		}
		delete(s.stacks, thread)
	}

	s.alive = make(map[string]bool)
	for _, name := range s.canvas.Participants() {
		root, _ := s.canvas.Root(name)
		s.alive[name] = root.IsAlive() && !root.IsDestroyed()
	}
	for _, name := range s.canvas.Participants() {
		root, _ := s.canvas.Root(name)
		if !root.IsAlive() || root.IsDestroyed() {
			continue
		}
		if err := root.Terminate(s.canvas); err != nil {
			return err
		}
		s.emit(ctx, domain.EventTerminate, root)
	}
	return nil
}

// arrow records a message arrow at the current cursor. Either end may be nil for messages
// that enter or leave the diagram.
func (s *session) arrow(msg domain.Message, from, to *lifeline.Lifeline) {
	kind := msg.Kind
	if kind == "" {
		kind = domain.MessageCall
	}
	m := domain.MessageLayout{
		From:    msg.From,
		To:      msg.To,
		FromPos: s.canvas.PositionOf(msg.From),
		ToPos:   s.canvas.PositionOf(msg.To),
		Text:    msg.Text,
		Kind:    kind,
		Thread:  msg.Thread,
		Y:       s.canvas.VerticalPosition(),
	}
	if from != nil {
		m.FromSide, m.FromLvl = from.Direction(), from.SideLevel()
	}
	if to != nil {
		m.ToSide, m.ToLvl = to.Direction(), to.SideLevel()
	}
	s.messages = append(s.messages, m)
}

func (s *session) emit(ctx context.Context, typ domain.EventType, l *lifeline.Lifeline) {
	y := s.canvas.VerticalPosition()
	s.engine.logger.Debug("Lifeline event",
		"diagram", s.name,
		"type", typ,
		"participant", l.Name(),
		"direction", l.Direction(),
		"side_level", l.SideLevel(),
		"thread", l.Thread(),
		"y", y)
	if hook := s.engine.hooks.OnLifeline; hook != nil {
		hook(ctx, &domain.LifelineEvent{
			Timestamp:   time.Now(),
			Type:        typ,
			Diagram:     s.name,
			Participant: l.Name(),
			Direction:   l.Direction(),
			Level:       l.Level(),
			SideLevel:   l.SideLevel(),
			Thread:      l.Thread(),
			Y:           y,
		})
	}
}

func (s *session) layout() *domain.Layout {
	cfg := s.canvas.Config()
	out := &domain.Layout{
		Name:     s.name,
		Config:   cfg,
		Messages: s.messages,
		Extras:   s.canvas.Extras(),
		Height:   s.canvas.VerticalPosition() + cfg.Margin,
	}
	for pos, name := range s.canvas.Participants() {
		root, _ := s.canvas.Root(name)
		head, _ := root.Head()
		p := domain.ParticipantLayout{
			Name:      name,
			Type:      root.Type(),
			Label:     head.Label,
			Position:  pos,
			Flags:     root.Flags().Names(),
			Head:      head,
			Views:     root.AllViews(),
			Alive:     s.alive[name],
			Destroyed: root.IsDestroyed(),
			Region:    root.NameRegion(),
		}
		if cross, ok := root.Cross(); ok {
			p.Cross = &cross
		}
		out.Participants = append(out.Participants, p)
		if bottom := maxBottom(p); bottom+cfg.Margin > out.Height {
			out.Height = bottom + cfg.Margin
		}
	}
	return out
}

func maxBottom(p domain.ParticipantLayout) int {
	bottom := p.Head.Bottom()
	for _, v := range p.Views {
		bottom = max(bottom, v.Bottom())
	}
	if p.Cross != nil {
		bottom = max(bottom, p.Cross.Bottom())
	}
	return bottom
}
