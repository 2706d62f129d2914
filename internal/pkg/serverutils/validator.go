package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks struct validate tags and returns a 400 AppError
// listing the failing fields.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewBadRequest(err.Error())
	}

	messages := make([]string, len(verrs))
	for i, fe := range verrs {
		messages[i] = fmt.Sprintf("field %s failed on %s", fe.Field(), fe.Tag())
	}
	return NewBadRequest(strings.Join(messages, "; "))
}
