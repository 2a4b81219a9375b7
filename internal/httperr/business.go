package httperr

import "errors"

// BusinessError é um erro de regra de negócio vindo dos use cases.
// O código viaja até o handler, que decide o status HTTP.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// IsBusiness informa se err é um BusinessError com o código dado.
func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
