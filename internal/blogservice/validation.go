package blogservice

import (
	"blogsite/internal/common"
)

func validateNotBlank(v *common.Validator, field, value string) {
	v.Check(v.CheckNotBlank(value), field, "must not contain only whitespace")
}
