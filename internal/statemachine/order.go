package statemachine

import "restoapi/internal/model"

var orderMachine = newMachine([]transition[model.OrderStatus]{
	{From: model.OrderPending, To: model.OrderPreparing, Actor: ActorStaff},
	{From: model.OrderPending, To: model.OrderCompleted, Actor: ActorStaff},
	{From: model.OrderPreparing, To: model.OrderServed, Actor: ActorStaff},
	{From: model.OrderServed, To: model.OrderCompleted, Actor: ActorStaff},
})

// CanTransitionOrder returns a *TransitionError when actor may not move an order from -> to.
func CanTransitionOrder(from, to model.OrderStatus, actor Actor) error {
	return orderMachine.check(from, to, actor)
}

func ValidOrderTransitionsFrom(status model.OrderStatus) []model.OrderStatus {
	return orderMachine.validFrom(status)
}
