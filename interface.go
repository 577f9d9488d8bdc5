package simplerpc

// MethodSpec is one declared method: its name, the ordered parameter
// descriptors and the result descriptor. Only the name and the
// parameter descriptors travel on the wire.
type MethodSpec struct {
	Name       string
	ParamTypes []string
	ResultType string
}

// Signature returns the dispatch key for the method.
func (m MethodSpec) Signature() string {
	return signature(m.Name, m.ParamTypes)
}

// Interface is a pure capability set: method signatures, no code. Both
// ends build it from the same shared declaration, which is what makes
// the descriptor strings comparable.
type Interface struct {
	name    string
	methods map[string]MethodSpec
}

func NewInterface(name string) *Interface {
	return &Interface{
		name:    name,
		methods: make(map[string]MethodSpec, 8),
	}
}

func (i *Interface) Name() string {
	return i.name
}

func (i *Interface) NumMethods() int {
	return len(i.methods)
}

func (i *Interface) lookup(sig string) (MethodSpec, bool) {
	spec, ok := i.methods[sig]
	return spec, ok
}

func (i *Interface) declare(spec MethodSpec) {
	i.methods[spec.Signature()] = spec
}

// Declare0 declares a method taking no parameters.
func Declare0[R any](i *Interface, name string) {
	i.declare(MethodSpec{
		Name:       name,
		ResultType: descriptorFor[R](),
	})
}

func Declare1[A, R any](i *Interface, name string) {
	i.declare(MethodSpec{
		Name:       name,
		ParamTypes: []string{descriptorFor[A]()},
		ResultType: descriptorFor[R](),
	})
}

func Declare2[A, B, R any](i *Interface, name string) {
	i.declare(MethodSpec{
		Name:       name,
		ParamTypes: []string{descriptorFor[A](), descriptorFor[B]()},
		ResultType: descriptorFor[R](),
	})
}

func Declare3[A, B, C, R any](i *Interface, name string) {
	i.declare(MethodSpec{
		Name:       name,
		ParamTypes: []string{descriptorFor[A](), descriptorFor[B](), descriptorFor[C]()},
		ResultType: descriptorFor[R](),
	})
}
