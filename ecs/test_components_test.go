package ecs_test

import "github.com/plus3/puppet/ecs"

// Common test component types
type Position struct {
	X, Y, Z float32
}

type Velocity struct {
	DX, DY, DZ float32
}

type Name string

type Spin struct {
	Rate float32
}

type Tag struct{}

type Link struct {
	Target *ecs.EntityRef
}

type Clock struct {
	Frames  int
	Elapsed float64
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Spin](registry)
	ecs.RegisterComponent[Tag](registry)
	ecs.RegisterComponent[Link](registry)
	return registry
}
