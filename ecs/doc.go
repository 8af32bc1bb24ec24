// Package ecs publishes eggmatch game events into a Donburi world.
//
// The primary adapter is [NewDonburiStore], which forwards every outcome the
// controller reports (pick-up, match, mismatch, completion, cancel, reset)
// into a [Donburi] world as typed events. Subscribe to [GameEventType] in
// your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	ctrl := eggmatch.NewController(board, eggmatch.Options{Events: store})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
