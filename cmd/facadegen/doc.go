// Command facadegen generates builder facades for explicit injection.
//
// A small *.inject.yaml file next to a service names the service type, its
// zero-argument constructor and the dependencies the builder must collect:
//
//	package: order
//	facadeName: OrderServiceBuilder
//	implType: OrderService
//	constructor: NewOrderService
//	imports:
//	  - path: go.uber.org/zap
//	required:
//	  - name: ShoppingCart
//	    field: shoppingCart
//	    type: "*ShoppingCart"
//	optional:
//	  - name: Logger
//	    field: logger
//	    type: "*zap.Logger"
//
// The owner file carries the directive:
//
//	//go:generate go run ../../cmd/facadegen --spec order_service.inject.yaml --out order_service.gen.go
//
// The generated builder has:
//
//   - Inject<Name>(dep) for each required dependency, tracked until Build
//   - With<Name>(dep) for each optional dependency
//   - Inject(fn) for custom wiring
//   - Build(), which names the first missing required dependency, and MustBuild()
//
// There is no container and no reflection. The builder only assigns fields.
package main
