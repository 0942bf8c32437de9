// Package statemachine holds the booking and order status machines.
//
// Each machine is a list of allowed (from, to, actor) transitions, indexed once
// into a lookup map.
package statemachine

import (
	"fmt"
	"strings"
)

// Actor is who requests a transition.
type Actor string

const (
	ActorStaff    Actor = "staff"
	ActorCustomer Actor = "customer"
	ActorSystem   Actor = "system"
)

// TransitionError is returned when a transition is not allowed. ValidNext lists
// the statuses reachable from From by anyone.
type TransitionError struct {
	From      string
	To        string
	Actor     Actor
	ValidNext []string
}

func (e *TransitionError) Error() string {
	valid := "none (terminal state)"
	if len(e.ValidNext) > 0 {
		valid = strings.Join(e.ValidNext, ", ")
	}
	return fmt.Sprintf("invalid transition: %s -> %s is not allowed for actor '%s'. valid transitions from %s are: %s",
		e.From, e.To, e.Actor, e.From, valid)
}

type transition[S ~string] struct {
	From  S
	To    S
	Actor Actor
}

type machine[S ~string] struct {
	transitions []transition[S]
	index       map[transition[S]]bool
}

func newMachine[S ~string](ts []transition[S]) *machine[S] {
	m := &machine[S]{transitions: ts, index: make(map[transition[S]]bool, len(ts))}
	for _, t := range ts {
		m.index[t] = true
	}
	return m
}

func (m *machine[S]) validFrom(from S) []S {
	var out []S
	seen := map[S]bool{}
	for _, t := range m.transitions {
		if t.From == from && !seen[t.To] {
			out = append(out, t.To)
			seen[t.To] = true
		}
	}
	return out
}

func (m *machine[S]) check(from, to S, actor Actor) error {
	if m.index[transition[S]{From: from, To: to, Actor: actor}] {
		return nil
	}
	next := m.validFrom(from)
	names := make([]string, len(next))
	for i, s := range next {
		names[i] = string(s)
	}
	return &TransitionError{From: string(from), To: string(to), Actor: actor, ValidNext: names}
}
