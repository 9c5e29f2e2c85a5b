package main

import (
	"flag"
	"log"
	"net/http"
	"path/filepath"
)

// httpConn web server connection parameters
type httpConn struct {
	address    string
	port       string
	root       string
	samplesDir string
}

func main() {
	conn := &httpConn{}
	flag.StringVar(&conn.address, "a", "localhost", "Address to serve")
	flag.StringVar(&conn.port, "p", "5000", "Port to serve")
	flag.StringVar(&conn.root, "r", "./", "Root directory holding index.html and lib.wasm")
	flag.StringVar(&conn.samplesDir, "s", "./samples/", "Directory of the sample files")
	flag.Parse()

	c := NewConn(conn)
	if err := c.Init(); err != nil {
		log.Fatalln(err)
	}
}

// NewConn establish a new http connection
func NewConn(conn *httpConn) *httpConn {
	return conn
}

// handler returns the file server of the demo: the static files and the
// sample sets under /samples/.
func (c *httpConn) handler() (http.Handler, error) {
	root, err := filepath.Abs(c.root)
	if err != nil {
		return nil, err
	}
	samples, err := filepath.Abs(c.samplesDir)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(root)))
	mux.Handle("/samples/", http.StripPrefix("/samples/", http.FileServer(http.Dir(samples))))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if filepath.Ext(r.URL.Path) == ".wasm" {
			w.Header().Set("Content-Type", "application/wasm")
		}
		log.Print(r.RemoteAddr + " " + r.Method + " " + r.URL.String())
		mux.ServeHTTP(w, r)
	}), nil
}

// Init listen and serves the connection endpoints
func (c *httpConn) Init() error {
	handler, err := c.handler()
	if err != nil {
		return err
	}

	log.Printf("serving %s on %s:%s", c.root, c.address, c.port)
	httpServer := http.Server{
		Addr:    c.address + ":" + c.port,
		Handler: handler,
	}
	return httpServer.ListenAndServe()
}
