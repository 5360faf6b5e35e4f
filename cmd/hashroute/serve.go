package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rohanthewiz/element"
	"github.com/rohanthewiz/hashroute"
	"github.com/rohanthewiz/serr"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var addr string
	var routesFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the websocket navigation demo server",
		Long: `Serve a demo page whose location changes are bridged to the router over
a websocket. Route events are pushed back to every connected client and
dispatch metrics are exported at /metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(addr, routesFile)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&routesFile, "routes", "", "JSON route table (required)")
	_ = cmd.MarkFlagRequired("routes")

	return cmd
}

func serve(addr, routesFile string) error {
	data, err := os.ReadFile(routesFile)
	if err != nil {
		return serr.Wrap(err, "could not read route table")
	}

	logger := slog.Default().With("component", "hashroute.demo")
	hub := hashroute.NewHub()

	router := hashroute.NewRouter(hashroute.RouterOptions{
		Resolver: logResolver{log: logger},
		Events:   hub,
		Metrics:  hashroute.NewMetrics(),
		Logger:   logger,
		Verbose:  true,
	})

	if err = router.LoadRoutes(data); err != nil {
		return serr.Wrap(err, "could not load route table")
	}

	history := hashroute.NewHistory(router, nil)
	if err = history.Start(); err != nil {
		return err
	}

	bridge := hashroute.NewBridge(history, hub)

	mux := chi.NewRouter()
	mux.Handle("/ws", bridge)
	mux.Handle("/metrics", promhttp.Handler())
	mux.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(demoPage(router.List())))
	})

	fmt.Printf("Demo server on http://localhost%s (routes from %s)\n", addr, routesFile)
	return http.ListenAndServe(addr, mux)
}

// logResolver resolves every route name to a handler that just logs the
// dispatch; real applications supply their own HandlerResolver.
type logResolver struct {
	log *slog.Logger
}

func (lr logResolver) HandlerByName(name string) (hashroute.Handler, bool) {
	return func(ctx hashroute.Context) error {
		lr.log.Info("route handled",
			"route", name, "fragment", ctx.Fragment(), "query", ctx.Query().Or(""))
		return nil
	}, true
}

// demoPage renders the demo shell: the registered templates and a script
// forwarding hash changes over the websocket.
func demoPage(templates []string) string {
	b := element.NewBuilder()

	b.Html().R(
		b.Head().R(
			b.Title().T("hashroute demo"),
			b.Style().T(`
				body { font-family: sans-serif; max-width: 720px; margin: 0 auto; padding: 20px; }
				code { background: #eee; padding: 2px 5px; border-radius: 3px; }
			`),
		),
		b.Body().R(
			b.H1().T("hashroute demo"),
			b.P().T("Change the location hash; events appear in the console."),
			b.P().R(
				b.Strong().T("Registered templates (last registered wins):"),
			),
			routeList(b, templates),
			b.Script().T(`
				const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
				ws.onmessage = (e) => console.log("route event", JSON.parse(e.data));
				ws.onopen = () => ws.send(JSON.stringify({fragment: location.hash}));
				addEventListener("hashchange", () => ws.send(JSON.stringify({fragment: location.hash})));
			`),
		),
	)

	return b.String()
}

func routeList(b *element.Builder, templates []string) any {
	for _, template := range templates {
		b.P().R(
			b.Code().T(template),
		)
	}
	return nil
}
