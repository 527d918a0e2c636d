package errors

import "fmt"

type Code string

const (
	CodeChainRPC      Code = "CHAIN_RPC_ERROR"
	CodeDialChain     Code = "DIAL_CHAIN_ERROR"
	CodeChainID       Code = "GET_CHAIN_ID_ERROR"
	CodeInvalidArgs   Code = "INVALID_ARGUMENTS_ERROR"
	CodeUnknownMethod Code = "UNKNOWN_METHOD_ERROR"
	CodeSigner        Code = "SIGNER_ERROR"
	CodeSendTx        Code = "SEND_TX_ERROR"
	CodeReceipt       Code = "RECEIPT_ERROR"
)

// AppError annotates a lower level error with the operation that produced it.
type AppError struct {
	Code Code
	Op   string
	Err  error
}

func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Op, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func WrapWithCode(code Code, op string, err error) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Code: code,
		Op:   op,
		Err:  err,
	}
}
