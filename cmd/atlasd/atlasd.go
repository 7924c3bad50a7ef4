// atlasd serves the atlas composition API: multipart sprite uploads in,
// packed PNG atlases plus an X-Atlas-Report diagnostic header out.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"runtime"

	"badc0de.net/pkg/flagutil/v1"

	"github.com/common-nighthawk/go-figure"
	"github.com/golang/glog"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	_ "golang.org/x/net/trace"

	"github.com/ozx/atlasd/web"
)

var (
	listenAddress  = flag.String("listen_address", ":8080", "http listen address for atlasd")
	corsOrigin     = flag.String("cors_origin", "http://localhost:3000", "origin allowed to call the API from a browser")
	debugWebServer = flag.String("debug_web_server_listen_address", "", "where the debug server will listen")
)

func main() {
	flagutil.Parse()

	figure.NewFigure("atlasd", "", true).Print()
	glog.Infoln("starting atlasd")

	if *debugWebServer != "" {
		http.HandleFunc("/debug/minimetrics", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "runtime.NumGoroutine(): %d\n", runtime.NumGoroutine())
		})
		go http.ListenAndServe(*debugWebServer, nil)
	}

	r := mux.NewRouter()
	web.NewHandler().RegisterRoutes(r)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{*corsOrigin}),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
		handlers.ExposedHeaders([]string{web.ReportHeader}),
	)

	glog.Infof("atlasd now listening on %s", *listenAddress)
	glog.Fatal(http.ListenAndServe(*listenAddress, handlers.LoggingHandler(os.Stderr, cors(r))))
}
