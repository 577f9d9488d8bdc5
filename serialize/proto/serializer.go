package proto

import (
	"google.golang.org/protobuf/proto"
	"reflect"
	"simplerpc/internal/errs"
)

// Serializer -> Protobuf serialization protocol
type Serializer struct{}

func (s Serializer) Code() byte {
	return 2
}

func (s Serializer) Encode(val any) ([]byte, error) {
	msg, ok := val.(proto.Message)
	if !ok {
		return nil, errs.ProtoSerializeTypError
	}
	return proto.Marshal(msg)
}

// Decode accepts a proto.Message or a pointer to one. Handlers hold
// only the message pointer type, so they pass **T and the inner
// pointer is allocated here when nil.
func (s Serializer) Decode(data []byte, val any) error {
	msg, ok := val.(proto.Message)
	if !ok {
		rv := reflect.ValueOf(val)
		if rv.Kind() == reflect.Ptr && !rv.IsNil() && rv.Elem().Kind() == reflect.Ptr {
			elem := rv.Elem()
			if elem.IsNil() {
				elem.Set(reflect.New(elem.Type().Elem()))
			}
			msg, ok = elem.Interface().(proto.Message)
		}
	}
	if !ok {
		return errs.ProtoDeserializeTypError
	}
	return proto.Unmarshal(data, msg)
}
