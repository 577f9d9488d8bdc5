package errs

import (
	"errors"
	"fmt"
)

var (
	NilServiceError        = errors.New("simplerpc: service must not be nil")
	NilInterfaceError      = errors.New("simplerpc: interface must not be nil")
	NoMethodsError         = errors.New("simplerpc: interface declares no methods")
	EmptyHostError         = errors.New("simplerpc: host must not be empty")
	InvalidPortError       = errors.New("simplerpc: port must be between 1 and 65535")
	BindFailError          = errors.New("simplerpc: unable to listen on port")
	ConnectFailError       = errors.New("simplerpc: unable to connect to provider")
	SendReqFailError       = errors.New("simplerpc: unable to send request")
	ReadLenDataError       = errors.New("simplerpc: could not read the length data")
	ReadRespFailError      = errors.New("simplerpc: unable to read response")
	MalformedMessageError  = errors.New("simplerpc: malformed message")
	VersionMismatchError   = errors.New("simplerpc: unsupported protocol version")
	OversizeMessageError   = errors.New("simplerpc: message exceeds size limit")
	StrayResponseError     = errors.New("simplerpc: response does not match request message id")
	MethodNotDeclaredError = errors.New("simplerpc: method is not declared on the interface")
	ResultTypeError        = errors.New("simplerpc: declared result type does not match")
	UnknownSerializerError = errors.New("simplerpc: no serializer registered for code")
	UnknownCompressorError = errors.New("simplerpc: no compressor registered for code")
	ArgumentCountError     = errors.New("simplerpc: argument count does not match the parameter list")
	MethodNotFoundError    = errors.New("simplerpc: no method matches the requested signature")
)

var (
	ProtoSerializeTypError   = errors.New("serialize: serialization must be proto Message Type")
	ProtoDeserializeTypError = errors.New("serialize: deserialization must be proto.Message type")
)

func InvalidPort(port int) error {
	return fmt.Errorf("%w, got %d", InvalidPortError, port)
}

func BindFailed(port int, cause error) error {
	return fmt.Errorf("%w %d: %v", BindFailError, port, cause)
}

func ConnectFailed(addr string, cause error) error {
	return fmt.Errorf("%w %s: %v", ConnectFailError, addr, cause)
}

func SendReqFailed(cause error) error {
	return fmt.Errorf("%w: %v", SendReqFailError, cause)
}

func ReadRespFailed(cause error) error {
	return fmt.Errorf("%w: %v", ReadRespFailError, cause)
}

func MethodNotDeclared(iface string, sig string) error {
	return fmt.Errorf("%w: %s has no %s", MethodNotDeclaredError, iface, sig)
}

func ResultTypeMismatch(sig string, want string, got string) error {
	return fmt.Errorf("%w: %s returns %s, caller wants %s", ResultTypeError, sig, want, got)
}

func UnknownSerializer(code byte) error {
	return fmt.Errorf("%w %d", UnknownSerializerError, code)
}

func UnknownCompressor(code byte) error {
	return fmt.Errorf("%w %d", UnknownCompressorError, code)
}

func BadArgumentCount(sig string, got int) error {
	return fmt.Errorf("%w: %s got %d", ArgumentCountError, sig, got)
}

func MethodNotFound(sig string) error {
	return fmt.Errorf("%w: %s", MethodNotFoundError, sig)
}
