// Package ecs feeds redraw engines from a [Donburi] world.
//
// Entities carrying [ActorComponent] are collected into actor groups ordered
// by [LayerComponent], handed to the engine, and every drawn frame publishes
// its stats as a [FrameEventType] event.
//
// Usage:
//
//	src := ecs.NewActorSource(world)
//	ecs.SpawnActor(world, *redraw.NewActor("hero", 10, 10, 32, 32), 1)
//	drawn, err := src.Redraw(engine)
//	ecs.FrameEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
