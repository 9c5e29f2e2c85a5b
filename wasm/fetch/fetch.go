//go:build js && wasm

package fetch

import (
	"errors"
	"fmt"
	"syscall/js"
)

// Fetcher retrieves remote files through the browser fetch API.
type Fetcher struct {
	window js.Value
}

// NewFetcher initializes a new fetcher bound to the global window.
func NewFetcher() *Fetcher {
	return &Fetcher{window: js.Global()}
}

// Fetch retrieves url through a JS http connection and returns its body.
// It blocks until the promise settles, so it must not run on the JS event
// loop goroutine.
func (f *Fetcher) Fetch(url string) ([]byte, error) {
	respChan := make(chan []byte, 1)
	errChan := make(chan error, 1)

	var success, failure, read js.Func
	defer func() {
		success.Release()
		failure.Release()
		read.Release()
	}()

	read = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		uint8Array := js.Global().Get("Uint8Array").New(args[0])
		buf := make([]byte, uint8Array.Get("length").Int())
		js.CopyBytesToGo(buf, uint8Array)
		respChan <- buf
		return nil
	})
	success = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		response := args[0]
		if !response.Get("ok").Bool() {
			errChan <- errors.New(response.Get("statusText").String())
			return nil
		}
		response.Call("arrayBuffer").Call("then", read)
		return nil
	})
	failure = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		errChan <- fmt.Errorf("unable to fetch %s: %s", url, args[0].String())
		return nil
	})

	f.window.Call("fetch", url).Call("then", success, failure)

	select {
	case resp := <-respChan:
		return resp, nil
	case err := <-errChan:
		return nil, err
	}
}

// Log calls the `console.log` Javascript function
func (f *Fetcher) Log(args ...interface{}) {
	f.window.Get("console").Call("log", args...)
}
