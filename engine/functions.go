package engine

import (
	"database/sql/driver"
	"fmt"
	"sync"

	"github.com/viant/proximity/geometry"
	sqlite "modernc.org/sqlite"
)

var registerOnce sync.Once
var registerErr error

// RegisterPointFunctions registers pt_distance and pt_distance2 with the
// driver so they are available on connections opened after this call.
// Existing open connections will not see new functions.
func RegisterPointFunctions() error {
	registerOnce.Do(func() {
		if err := sqlite.RegisterDeterministicScalarFunction("pt_distance", 2, ptDistanceImpl); err != nil {
			registerErr = fmt.Errorf("engine: register pt_distance: %w", err)
			return
		}
		if err := sqlite.RegisterDeterministicScalarFunction("pt_distance2", 2, ptDistance2Impl); err != nil {
			registerErr = fmt.Errorf("engine: register pt_distance2: %w", err)
		}
	})
	return registerErr
}

func asPoint(arg driver.Value) (geometry.Point, bool, error) {
	switch v := arg.(type) {
	case nil:
		return geometry.Point{}, false, nil
	case []byte:
		p, err := geometry.DecodePoint(v)
		if err != nil {
			return geometry.Point{}, false, err
		}
		return p, true, nil
	default:
		return geometry.Point{}, false, fmt.Errorf("engine: unsupported argument type %T for point; want BLOB", arg)
	}
}

func pointArgs(name string, args []driver.Value) (a, b geometry.Point, ok bool, err error) {
	if len(args) != 2 {
		return a, b, false, fmt.Errorf("%s: expected 2 arguments, got %d", name, len(args))
	}
	a, okA, err := asPoint(args[0])
	if err != nil {
		return a, b, false, err
	}
	b, okB, err := asPoint(args[1])
	if err != nil {
		return a, b, false, err
	}
	return a, b, okA && okB, nil
}

func ptDistanceImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	a, b, ok, err := pointArgs("pt_distance", args)
	if err != nil || !ok {
		return nil, err
	}
	return geometry.Distance(a, b), nil
}

func ptDistance2Impl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	a, b, ok, err := pointArgs("pt_distance2", args)
	if err != nil || !ok {
		return nil, err
	}
	return geometry.SquaredDistance(a, b), nil
}
