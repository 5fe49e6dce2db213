package rest

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/rocketscienceinc/tictactoe-solver/internal/engine"
)

var registerOnce sync.Once

// registerValidators adds the "board" tag to gin's validator. The tag
// accepts any string engine.ParseBoard can read.
func registerValidators() error {
	var err error

	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}

		err = v.RegisterValidation("board", validateBoard)
	})

	return err
}

func validateBoard(fl validator.FieldLevel) bool {
	_, err := engine.ParseBoard(fl.Field().String())
	return err == nil
}
