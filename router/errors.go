package router

import "errors"

// ErrRouteNotFound indicates a route name nothing was registered under.
var ErrRouteNotFound = errors.New("route not found")
