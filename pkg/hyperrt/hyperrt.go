// Package hyperrt is the runtime surface imported by generated stub code:
// the opaque addressing value, the send-result wrapper and the asynchronous
// send primitive with its fixed timeout budget. The actual message fabric is
// pluggable; the package only fixes the call shape the generator emits.
package hyperrt

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Address is an opaque addressing value for a remote process.
type Address struct {
	Node    string `json:"node"`
	Process string `json:"process"`
}

// SendStatus discriminates the outcome of a generated invocation.
type SendStatus int

const (
	SendSuccess SendStatus = iota
	SendTimeout
	SendError
)

// SendResult wraps the outcome of a generated invocation. A timed-out
// invocation surfaces as a result, never as a panic.
type SendResult[T any] struct {
	Status SendStatus
	Value  T
	Err    error
}

// Success wraps a successful value.
func Success[T any](v T) SendResult[T] {
	return SendResult[T]{Status: SendSuccess, Value: v}
}

// Failure wraps a transport or decoding error.
func Failure[T any](err error) SendResult[T] {
	return SendResult[T]{Status: SendError, Err: err}
}

// TimedOut reports an expired timeout budget.
func TimedOut[T any]() SendResult[T] {
	return SendResult[T]{Status: SendTimeout, Err: context.DeadlineExceeded}
}

// Transport delivers a request payload to a target and returns the raw
// response. The process host installs it at startup.
var Transport func(ctx context.Context, target Address, payload []byte) ([]byte, error)

// ErrNoTransport reports a Send before a Transport was installed.
var ErrNoTransport = errors.New("hyperrt: no transport installed")

// Send issues one asynchronous invocation: it marshals the tagged request,
// suspends until a response or the timeout budget (in seconds) arrives, and
// decodes the response into T.
func Send[T any](ctx context.Context, target Address, request any, timeoutSecs int) SendResult[T] {
	if Transport == nil {
		return Failure[T](ErrNoTransport)
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return Failure[T](err)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutSecs)*time.Second)
	defer cancel()

	type reply struct {
		body []byte
		err  error
	}
	ch := make(chan reply, 1)
	go func() {
		body, err := Transport(ctx, target, payload)
		ch <- reply{body: body, err: err}
	}()

	select {
	case <-ctx.Done():
		return TimedOut[T]()
	case r := <-ch:
		if r.err != nil {
			return Failure[T](r.err)
		}
		var v T
		if len(r.body) > 0 {
			if err := json.Unmarshal(r.body, &v); err != nil {
				return Failure[T](err)
			}
		}
		return Success(v)
	}
}

// Result mirrors the WIT result<OK, Err> shape in generated type positions.
type Result[A, B any] struct {
	OK    A    `json:"ok"`
	Err   B    `json:"err"`
	IsErr bool `json:"is_err"`
}

// Tuple2 mirrors a two-element WIT tuple.
type Tuple2[A, B any] struct {
	A A `json:"0"`
	B B `json:"1"`
}

// Tuple3 mirrors a three-element WIT tuple.
type Tuple3[A, B, C any] struct {
	A A `json:"0"`
	B B `json:"1"`
	C C `json:"2"`
}

// Tuple4 mirrors a four-element WIT tuple.
type Tuple4[A, B, C, D any] struct {
	A A `json:"0"`
	B B `json:"1"`
	C C `json:"2"`
	D D `json:"3"`
}
