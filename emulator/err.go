package emulator

import (
	"errors"

	"github.com/ezrec/intcode/intcode"
	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var cell = translate.Cell

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Ip     int
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	// Machine faults already carry the ip.
	var exec *intcode.ErrExecute
	if errors.As(err.Err, &exec) {
		if err.LineNo == 0 {
			return err.Err.Error()
		}
		return f("line %v %v", cell(int64(err.LineNo)), err.Err)
	}

	if err.LineNo == 0 {
		return f("ip %v %v", cell(int64(err.Ip)), err.Err)
	}
	return f("line %v ip %v %v", cell(int64(err.LineNo)), cell(int64(err.Ip)), err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
