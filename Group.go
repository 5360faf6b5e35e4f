package hashroute

// Group registers routes under a common fragment prefix.
// Groups can be nested; prefixes concatenate in order.
type Group struct {
	// prefix is prepended to every template registered through the group
	prefix string
	// router is the owning router; groups only prefix, the table lives there
	router *Router
}

// Group creates a route group. Fragment prefixes have no leading slash;
// "admin/" + "users/:id" registers "admin/users/:id".
func (r *Router) Group(prefix string) *Group {
	return &Group{
		prefix: prefix,
		router: r,
	}
}

// Group creates a nested sub-group with an additional prefix.
func (g *Group) Group(prefix string) *Group {
	return &Group{
		prefix: g.prefix + prefix,
		router: g.router,
	}
}

// Route registers a template with the group prefix applied.
func (g *Group) Route(template string, handler Handler) {
	g.router.Route(g.prefix+template, handler)
}

// RouteNamed registers a named template with the group prefix applied.
// As with Router.RouteNamed, a nil handler is resolved by name at dispatch.
func (g *Group) RouteNamed(name, template string, handler Handler) {
	g.router.RouteNamed(name, g.prefix+template, handler)
}
