package execute

import (
	"io"
	"os"
)

// cwdGuard restores the working directory saved at construction.
type cwdGuard struct {
	prev string
}

func pushCwd(dir string) (*cwdGuard, error) {
	prev, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	if err := os.Chdir(dir); err != nil {
		return nil, err
	}
	return &cwdGuard{prev: prev}, nil
}

func (g *cwdGuard) Restore() {
	_ = os.Chdir(g.prev)
}

// envGuard restores environment variables overwritten by pushEnv. A
// nil entry means the variable did not exist before the call.
type envGuard struct {
	saved map[string]*string
}

func pushEnv(overrides map[string]string) *envGuard {
	g := &envGuard{saved: make(map[string]*string, len(overrides))}
	for k, v := range overrides {
		if prev, ok := os.LookupEnv(k); ok {
			p := prev
			g.saved[k] = &p
		} else {
			g.saved[k] = nil
		}
		os.Setenv(k, v)
	}
	return g
}

func (g *envGuard) Restore() {
	for k, prev := range g.saved {
		if prev == nil {
			os.Unsetenv(k)
		} else {
			os.Setenv(k, *prev)
		}
	}
}

// streamCapture redirects the process stdout/stderr into pipes so
// callable output can be collected without leaking to the real
// streams.
type streamCapture struct {
	origOut, origErr *os.File
	wOut, wErr       *os.File
	outCh, errCh     chan string
}

func captureStreams() (*streamCapture, error) {
	rOut, wOut, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	rErr, wErr, err := os.Pipe()
	if err != nil {
		rOut.Close()
		wOut.Close()
		return nil, err
	}

	c := &streamCapture{
		origOut: os.Stdout,
		origErr: os.Stderr,
		wOut:    wOut,
		wErr:    wErr,
		outCh:   make(chan string, 1),
		errCh:   make(chan string, 1),
	}

	go drain(rOut, c.outCh)
	go drain(rErr, c.errCh)

	os.Stdout = wOut
	os.Stderr = wErr
	return c, nil
}

func drain(r *os.File, ch chan<- string) {
	data, _ := io.ReadAll(r)
	r.Close()
	ch <- string(data)
}

// Restore reattaches the real streams and returns what was captured.
func (c *streamCapture) Restore() (stdout, stderr string) {
	os.Stdout = c.origOut
	os.Stderr = c.origErr
	c.wOut.Close()
	c.wErr.Close()
	return <-c.outCh, <-c.errCh
}
