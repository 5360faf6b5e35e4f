package hashroute

import (
	"time"
)

// RouteInfo is a filter giving basic dispatch stats via the router's logger.
func RouteInfo(ctx Context) error {
	start := time.Now()

	err := ctx.Next()

	ctx.Logger().Info("route dispatched",
		"fragment", ctx.Fragment(),
		"route", ctx.RouteName(),
		"elapsed", time.Since(start))

	return err
}
