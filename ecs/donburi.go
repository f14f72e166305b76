package ecs

import (
	"sort"

	"github.com/phanxgames/redraw"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// Layer places an actor entity in a draw group. Lower indices draw first.
// Entities without a Layer draw in group 0.
type Layer struct {
	Index int
}

var (
	// ActorComponent holds the drawable actor of an entity.
	ActorComponent = donburi.NewComponentType[redraw.Actor]()
	// LayerComponent holds the draw group of an entity.
	LayerComponent = donburi.NewComponentType[Layer]()
)

// FrameEventType is published after every drawn frame with that frame's
// stats. Subscribe to it in your ECS systems and process it like any other
// donburi event.
var FrameEventType = events.NewEventType[redraw.FrameStats]()

// SpawnActor creates an entity holding a copy of a in the given layer.
func SpawnActor(world donburi.World, a redraw.Actor, layer int) donburi.Entity {
	e := world.Create(ActorComponent, LayerComponent)
	entry := world.Entry(e)
	ActorComponent.SetValue(entry, a)
	LayerComponent.SetValue(entry, Layer{Index: layer})
	return e
}

// ActorSource collects actor groups from a donburi world.
type ActorSource struct {
	world  donburi.World
	query  *donburi.Query
	byIdx  map[int][]*redraw.Actor
	order  []int
	groups [][]*redraw.Actor
}

// NewActorSource creates a source over every entity with an ActorComponent.
func NewActorSource(world donburi.World) *ActorSource {
	return &ActorSource{
		world: world,
		query: donburi.NewQuery(filter.Contains(ActorComponent)),
		byIdx: make(map[int][]*redraw.Actor),
	}
}

// Collect returns the current actors grouped by layer, lowest layer first.
// Within a layer actors keep query order. The returned actors point into
// component storage, so they are only valid until the world's entities or
// archetypes change; call Collect again each frame.
func (s *ActorSource) Collect() [][]*redraw.Actor {
	for idx := range s.byIdx {
		s.byIdx[idx] = s.byIdx[idx][:0]
	}
	s.query.Each(s.world, func(entry *donburi.Entry) {
		idx := 0
		if entry.HasComponent(LayerComponent) {
			idx = LayerComponent.Get(entry).Index
		}
		s.byIdx[idx] = append(s.byIdx[idx], ActorComponent.Get(entry))
	})

	s.order = s.order[:0]
	for idx, actors := range s.byIdx {
		if len(actors) > 0 {
			s.order = append(s.order, idx)
		}
	}
	sort.Ints(s.order)

	s.groups = s.groups[:0]
	for _, idx := range s.order {
		s.groups = append(s.groups, s.byIdx[idx])
	}
	return s.groups
}

// Redraw collects the current actors into e and calls RedrawFrame. When a
// frame is drawn its stats are published as a FrameEventType event.
func (s *ActorSource) Redraw(e *redraw.Engine) (bool, error) {
	e.SetLayers(s.Collect()...)
	drawn, err := e.RedrawFrame()
	if err != nil || !drawn {
		return drawn, err
	}
	FrameEventType.Publish(s.world, e.Stats())
	return true, nil
}
