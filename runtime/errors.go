package runtime

import "errors"

var (
	ErrNoProgram       = errors.New("no program compiled")
	ErrUnknownRegister = errors.New("unknown register")
	ErrRegisterType    = errors.New("wrong register type")
)
